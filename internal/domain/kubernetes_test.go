package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func deployment(name string, container map[string]any) Resource {
	return Resource{Raw: map[string]any{
		"kind":     "Deployment",
		"metadata": map[string]any{"name": name},
		"spec": map[string]any{
			"template": map[string]any{
				"spec": map[string]any{
					"containers": []any{container},
				},
			},
		},
	}}
}

func TestResourceName_Default(t *testing.T) {
	res := Resource{Raw: map[string]any{"kind": "Pod"}}
	assert.Equal(t, "unknown", res.Name())
}

func TestResourceNamespace_Default(t *testing.T) {
	res := Resource{Raw: map[string]any{"kind": "Pod"}}
	assert.Equal(t, "default", res.Namespace())
}

func TestResourceNamespace_Explicit(t *testing.T) {
	res := Resource{Raw: map[string]any{
		"metadata": map[string]any{"name": "api", "namespace": "prod"},
	}}
	assert.Equal(t, "prod", res.Namespace())
}

func TestContainers_Pod(t *testing.T) {
	res := Resource{Raw: map[string]any{
		"kind": "Pod",
		"spec": map[string]any{
			"containers": []any{map[string]any{"name": "app"}},
		},
	}}
	containers := res.Containers()
	assert.Len(t, containers, 1)
	assert.Equal(t, "app", containers[0]["name"])
}

func TestContainers_Deployment(t *testing.T) {
	res := deployment("api", map[string]any{"name": "api"})
	containers := res.Containers()
	assert.Len(t, containers, 1)
	assert.Equal(t, "api", containers[0]["name"])
}

func TestContainers_NoTemplate(t *testing.T) {
	res := Resource{Raw: map[string]any{"kind": "Deployment", "spec": map[string]any{}}}
	assert.Empty(t, res.Containers())
}

func TestIsWorkload(t *testing.T) {
	assert.True(t, Resource{Raw: map[string]any{"kind": "Pod"}}.IsWorkload())
	assert.True(t, Resource{Raw: map[string]any{"kind": "DaemonSet"}}.IsWorkload())
	assert.False(t, Resource{Raw: map[string]any{"kind": "Service"}}.IsWorkload())
	assert.False(t, Resource{Raw: map[string]any{"kind": "ConfigMap"}}.IsWorkload())
}

func TestSelectorMatchLabels_NeverNil(t *testing.T) {
	res := Resource{Raw: map[string]any{"kind": "Deployment"}}
	assert.NotNil(t, res.SelectorMatchLabels())
	assert.NotNil(t, res.TemplateLabels())
}
