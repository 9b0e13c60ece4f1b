package ai

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/checkdk/checkdk/internal/domain"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	groqDefaultModel = "llama-3.3-70b-versatile"
	systemPrompt     = "You are a Docker and Kubernetes expert. Provide concise, actionable advice."
)

// GroqProvider talks to Groq's OpenAI-compatible chat completion API.
type GroqProvider struct {
	apiKey string
	model  string
}

// NewGroqProvider builds the provider from settings, falling back to the
// GROQ_API_KEY environment variable for the credential.
func NewGroqProvider(settings domain.AISettings) *GroqProvider {
	apiKey := settings.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	model := settings.Model
	if model == "" {
		model = groqDefaultModel
	}
	return &GroqProvider{apiKey: apiKey, model: model}
}

func (p *GroqProvider) Name() string { return domain.ProviderGroq }

// Available reports whether a credential is present. No network probe.
func (p *GroqProvider) Available() bool { return p.apiKey != "" }

func (p *GroqProvider) Analyze(ctx context.Context, errorMessage, configSnippet string, pctx domain.ProviderContext) domain.ProviderOutcome {
	if !p.Available() {
		return domain.ProviderOutcome{Err: fmt.Errorf("groq: api key not configured")}
	}

	cfg := openai.DefaultConfig(p.apiKey)
	cfg.BaseURL = groqBaseURL
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(errorMessage, configSnippet, pctx)},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		slog.Debug("groq request failed", "error", err)
		return domain.ProviderOutcome{Err: fmt.Errorf("groq: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return domain.ProviderOutcome{Err: fmt.Errorf("groq: response contained no choices")}
	}
	return domain.ProviderOutcome{Material: ParseResponse(resp.Choices[0].Message.Content)}
}
