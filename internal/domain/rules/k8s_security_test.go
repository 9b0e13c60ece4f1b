package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkdk/checkdk/internal/domain"
)

func workload(kind, name string, containers ...map[string]any) domain.Resource {
	list := make([]any, len(containers))
	for i, c := range containers {
		list[i] = c
	}
	podSpec := map[string]any{"containers": list}

	spec := map[string]any{
		"template": map[string]any{"spec": podSpec},
	}
	if kind == "Pod" {
		spec = podSpec
	}
	return domain.Resource{Raw: map[string]any{
		"kind":     kind,
		"metadata": map[string]any{"name": name},
		"spec":     spec,
	}}
}

func TestSecurityRule_PrivilegedContainer(t *testing.T) {
	res := workload("Deployment", "api", map[string]any{
		"name":            "api",
		"securityContext": map[string]any{"privileged": true, "runAsNonRoot": true},
	})

	issues := (&SecurityRule{}).Validate([]domain.Resource{res})
	require.Len(t, issues, 1)
	assert.Equal(t, domain.KindSecurityIssue, issues[0].Kind)
	assert.Equal(t, domain.SeverityCritical, issues[0].Severity)
	assert.Equal(t, "Deployment 'api' container 'api' runs in privileged mode", issues[0].Message)
}

func TestSecurityRule_MayRunAsRoot_NoContext(t *testing.T) {
	res := workload("Pod", "debug", map[string]any{"name": "shell"})

	issues := (&SecurityRule{}).Validate([]domain.Resource{res})
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "may run as root")
}

func TestSecurityRule_ExplicitRootUID(t *testing.T) {
	res := workload("Deployment", "api", map[string]any{
		"name":            "api",
		"securityContext": map[string]any{"runAsUser": 0},
	})

	issues := (&SecurityRule{}).Validate([]domain.Resource{res})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "may run as root")
}

func TestSecurityRule_NonRootUID(t *testing.T) {
	res := workload("Deployment", "api", map[string]any{
		"name":            "api",
		"securityContext": map[string]any{"runAsUser": 1000},
	})
	assert.Empty(t, (&SecurityRule{}).Validate([]domain.Resource{res}))
}

func TestSecurityRule_RunAsNonRoot(t *testing.T) {
	res := workload("StatefulSet", "db", map[string]any{
		"name":            "db",
		"securityContext": map[string]any{"runAsNonRoot": true},
	})
	assert.Empty(t, (&SecurityRule{}).Validate([]domain.Resource{res}))
}

func TestSecurityRule_NonWorkloadIgnored(t *testing.T) {
	res := domain.Resource{Raw: map[string]any{
		"kind":     "ConfigMap",
		"metadata": map[string]any{"name": "settings"},
	}}
	assert.Empty(t, (&SecurityRule{}).Validate([]domain.Resource{res}))
}
