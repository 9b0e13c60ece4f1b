package domain

import "fmt"

// ProviderGroq and ProviderGemini are the recognized AI backend identifiers,
// tried in that preference order.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// AISettings configures the fix-synthesis provider chain.
type AISettings struct {
	Enabled          bool   `yaml:"enabled"           json:"enabled"`
	Provider         string `yaml:"provider"          json:"provider"`
	FallbackProvider string `yaml:"fallback_provider" json:"fallback_provider,omitempty"`
	Model            string `yaml:"model"             json:"model,omitempty"`
	APIKey           string `yaml:"api_key"           json:"api_key,omitempty"`
}

// Settings holds the persisted user configuration read from
// ~/.checkdk/config.yaml. The analysis core branches only on these fields.
type Settings struct {
	AI             AISettings `yaml:"ai"      json:"ai"`
	TimeoutSeconds int        `yaml:"timeout" json:"timeout"`
}

// DefaultSettings returns the configuration used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		AI: AISettings{
			Enabled:          true,
			Provider:         ProviderGroq,
			Model:            "llama-3.3-70b-versatile",
			FallbackProvider: ProviderGemini,
		},
		TimeoutSeconds: 30,
	}
}

// Validate catches typos in user-supplied provider names before they are
// silently treated as "unavailable".
func (s Settings) Validate() error {
	for _, p := range []string{s.AI.Provider, s.AI.FallbackProvider} {
		switch p {
		case "", ProviderGroq, ProviderGemini:
		default:
			return fmt.Errorf("unknown ai provider %q (expected %q or %q)", p, ProviderGroq, ProviderGemini)
		}
	}
	if s.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be non-negative, got %d", s.TimeoutSeconds)
	}
	return nil
}
