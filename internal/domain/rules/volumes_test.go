package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkdk/checkdk/internal/domain"
)

func TestVolumeRule_UndefinedNamedVolume(t *testing.T) {
	cfg := singleService("db", map[string]any{
		"image":   "postgres:16",
		"volumes": []any{"pgdata:/var/lib/postgresql/data"},
	})

	issues := (&VolumeRule{}).Validate(cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.KindVolumeMount, issues[0].Kind)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "pgdata", issues[0].Details["volume"])
}

func TestVolumeRule_DeclaredNamedVolume(t *testing.T) {
	cfg := singleService("db", map[string]any{
		"image":   "postgres:16",
		"volumes": []any{"pgdata:/var/lib/postgresql/data"},
	})
	cfg.Volumes = map[string]any{"pgdata": nil}
	assert.Empty(t, (&VolumeRule{}).Validate(cfg))
}

func TestVolumeRule_BindMountsIgnored(t *testing.T) {
	cfg := singleService("db", map[string]any{
		"image": "postgres:16",
		"volumes": []any{
			"/data:/var/lib/postgresql/data",
			"./conf:/etc/postgresql",
			"~/backups:/backups",
		},
	})
	assert.Empty(t, (&VolumeRule{}).Validate(cfg))
}

func TestVolumeRule_AnonymousVolumeIgnored(t *testing.T) {
	cfg := singleService("db", map[string]any{
		"image":   "postgres:16",
		"volumes": []any{"/var/lib/postgresql/data"},
	})
	assert.Empty(t, (&VolumeRule{}).Validate(cfg))
}
