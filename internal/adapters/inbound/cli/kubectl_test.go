package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManifestArg_ApplyShortFlag(t *testing.T) {
	path, ok := manifestArg([]string{"apply", "-f", "deployment.yaml"})
	assert.True(t, ok)
	assert.Equal(t, "deployment.yaml", path)
}

func TestManifestArg_CreateLongFlag(t *testing.T) {
	path, ok := manifestArg([]string{"create", "--filename", "svc.yaml"})
	assert.True(t, ok)
	assert.Equal(t, "svc.yaml", path)
}

func TestManifestArg_EqualsForms(t *testing.T) {
	path, ok := manifestArg([]string{"apply", "-f=deploy.yaml"})
	assert.True(t, ok)
	assert.Equal(t, "deploy.yaml", path)

	path, ok = manifestArg([]string{"replace", "--filename=deploy.yaml"})
	assert.True(t, ok)
	assert.Equal(t, "deploy.yaml", path)
}

func TestManifestArg_NonMutatingVerb(t *testing.T) {
	_, ok := manifestArg([]string{"get", "pods", "-f", "x.yaml"})
	assert.False(t, ok)
}

func TestManifestArg_NoFileFlag(t *testing.T) {
	_, ok := manifestArg([]string{"apply", "--recursive"})
	assert.False(t, ok)
}

func TestManifestArg_DanglingFlag(t *testing.T) {
	_, ok := manifestArg([]string{"apply", "-f"})
	assert.False(t, ok)
}

func TestManifestArg_Empty(t *testing.T) {
	_, ok := manifestArg(nil)
	assert.False(t, ok)
}
