package ai

import "github.com/checkdk/checkdk/internal/domain"

// Chain builds the ordered provider list from settings. The preferred
// provider comes first, the fallback second; unrecognized names are skipped
// so a typo degrades to the template path instead of failing the run.
func Chain(settings domain.Settings) []domain.Provider {
	order := []string{settings.AI.Provider, settings.AI.FallbackProvider}
	if settings.AI.Provider == "" {
		order = []string{domain.ProviderGroq, domain.ProviderGemini}
	}

	var providers []domain.Provider
	seen := make(map[string]struct{})
	for _, name := range order {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		switch name {
		case domain.ProviderGroq:
			providers = append(providers, NewGroqProvider(settings.AI))
		case domain.ProviderGemini:
			providers = append(providers, NewGeminiProvider())
		}
	}
	return providers
}
