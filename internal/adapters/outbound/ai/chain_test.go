package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkdk/checkdk/internal/domain"
)

func chainNames(providers []domain.Provider) []string {
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	return names
}

func TestChain_DefaultOrder(t *testing.T) {
	providers := Chain(domain.DefaultSettings())
	assert.Equal(t, []string{"groq", "gemini"}, chainNames(providers))
}

func TestChain_PreferredFirst(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.AI.Provider = domain.ProviderGemini
	settings.AI.FallbackProvider = domain.ProviderGroq

	providers := Chain(settings)
	assert.Equal(t, []string{"gemini", "groq"}, chainNames(providers))
}

func TestChain_DuplicateCollapsed(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.AI.Provider = domain.ProviderGroq
	settings.AI.FallbackProvider = domain.ProviderGroq

	providers := Chain(settings)
	assert.Equal(t, []string{"groq"}, chainNames(providers))
}

func TestChain_UnknownNameSkipped(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.AI.Provider = "mystery"
	settings.AI.FallbackProvider = domain.ProviderGemini

	providers := Chain(settings)
	assert.Equal(t, []string{"gemini"}, chainNames(providers))
}

func TestChain_EmptyProviderUsesDefaults(t *testing.T) {
	settings := domain.Settings{}
	providers := Chain(settings)
	require.Len(t, providers, 2)
	assert.Equal(t, "groq", providers[0].Name())
}
