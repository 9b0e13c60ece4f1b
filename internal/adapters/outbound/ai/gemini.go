package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/checkdk/checkdk/internal/domain"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiDefaultModel = "gemini-1.5-flash"
)

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GeminiProvider is the fallback backend, spoken to over its raw JSON API.
type GeminiProvider struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewGeminiProvider builds the provider. The credential comes from
// GEMINI_API_KEY, or GOOGLE_API_KEY as a second choice.
func NewGeminiProvider() *GeminiProvider {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	return &GeminiProvider{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		model:      geminiDefaultModel,
		baseURL:    geminiBaseURL,
	}
}

func (p *GeminiProvider) Name() string { return domain.ProviderGemini }

// Available reports whether a credential is present. No network probe.
func (p *GeminiProvider) Available() bool { return p.apiKey != "" }

func (p *GeminiProvider) Analyze(ctx context.Context, errorMessage, configSnippet string, pctx domain.ProviderContext) domain.ProviderOutcome {
	if !p.Available() {
		return domain.ProviderOutcome{Err: fmt.Errorf("gemini: api key not configured")}
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: buildPrompt(errorMessage, configSnippet, pctx)}},
		}},
	})
	if err != nil {
		return domain.ProviderOutcome{Err: fmt.Errorf("gemini: encoding request: %w", err)}
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.ProviderOutcome{Err: fmt.Errorf("gemini: building request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		slog.Debug("gemini request failed", "error", err)
		return domain.ProviderOutcome{Err: fmt.Errorf("gemini: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ProviderOutcome{Err: fmt.Errorf("gemini: reading response: %w", err)}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return domain.ProviderOutcome{Err: fmt.Errorf("gemini: decoding response: %w", err)}
	}
	if parsed.Error != nil {
		return domain.ProviderOutcome{Err: fmt.Errorf("gemini: api error %d: %s", parsed.Error.Code, parsed.Error.Message)}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return domain.ProviderOutcome{Err: fmt.Errorf("gemini: response contained no candidates")}
	}
	return domain.ProviderOutcome{Material: ParseResponse(parsed.Candidates[0].Content.Parts[0].Text)}
}
