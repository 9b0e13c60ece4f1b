package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkdk/checkdk/internal/domain"
)

func TestEnvironmentRule_UndefinedVariable(t *testing.T) {
	cfg := singleService("api", map[string]any{
		"image":       "api:1.0",
		"environment": []any{"DATABASE_URL=${CHECKDK_TEST_UNSET_DB}"},
	})

	issues := (&EnvironmentRule{}).Validate(cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.KindMissingEnvVar, issues[0].Kind)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "CHECKDK_TEST_UNSET_DB", issues[0].Details["variable"])
}

func TestEnvironmentRule_DefinedVariable(t *testing.T) {
	t.Setenv("CHECKDK_TEST_SET_DB", "postgres://localhost")
	cfg := singleService("api", map[string]any{
		"image":       "api:1.0",
		"environment": []any{"DATABASE_URL=${CHECKDK_TEST_SET_DB}"},
	})
	assert.Empty(t, (&EnvironmentRule{}).Validate(cfg))
}

func TestEnvironmentRule_DefaultValueSkipped(t *testing.T) {
	cfg := singleService("api", map[string]any{
		"image":       "api:1.0",
		"environment": []any{"PORT=${CHECKDK_TEST_UNSET_PORT:-8080}"},
	})
	assert.Empty(t, (&EnvironmentRule{}).Validate(cfg))
}

func TestEnvironmentRule_BareDollarReference(t *testing.T) {
	cfg := singleService("api", map[string]any{
		"image":       "api:1.0",
		"environment": []any{"TOKEN=$CHECKDK_TEST_UNSET_TOKEN"},
	})

	issues := (&EnvironmentRule{}).Validate(cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "CHECKDK_TEST_UNSET_TOKEN", issues[0].Details["variable"])
}

func TestEnvironmentRule_MappingFormEmbeddedReference(t *testing.T) {
	cfg := singleService("api", map[string]any{
		"image": "api:1.0",
		"environment": map[string]any{
			"DATABASE_URL": "postgres://db:5432/${CHECKDK_TEST_UNSET_DBNAME}",
		},
	})

	issues := (&EnvironmentRule{}).Validate(cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "CHECKDK_TEST_UNSET_DBNAME", issues[0].Details["variable"])
}

func TestEnvironmentRule_WholeTokenLeftToLoader(t *testing.T) {
	cfg := singleService("api", map[string]any{
		"image": "api:1.0",
		"environment": map[string]any{
			"SECRET": "${CHECKDK_TEST_UNSET_SECRET}",
		},
	})
	assert.Empty(t, (&EnvironmentRule{}).Validate(cfg))
}

func TestEnvironmentRule_WholeTokenListEntryLeftToLoader(t *testing.T) {
	cfg := singleService("api", map[string]any{
		"image":       "api:1.0",
		"environment": []any{"${CHECKDK_TEST_UNSET_BLOCK}"},
	})
	assert.Empty(t, (&EnvironmentRule{}).Validate(cfg))
}

func TestEnvironmentRule_LiteralValuesIgnored(t *testing.T) {
	cfg := singleService("api", map[string]any{
		"image":       "api:1.0",
		"environment": []any{"DEBUG=true", "LEVEL=info"},
	})
	assert.Empty(t, (&EnvironmentRule{}).Validate(cfg))
}
