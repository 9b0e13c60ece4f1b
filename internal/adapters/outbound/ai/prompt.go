// Package ai holds the fix-synthesis provider chain: Groq first (OpenAI
// compatible API), Gemini as fallback. Availability is purely a credential
// check; every transport, auth or parse failure collapses to "no AI result"
// so the deterministic templates stay authoritative.
package ai

import (
	"fmt"

	"github.com/checkdk/checkdk/internal/domain"
)

// snippetCap bounds the config excerpt embedded in a prompt so a huge
// compose file cannot blow up the request.
const snippetCap = 2000

// buildPrompt assembles the bounded natural-language prompt shared by all
// providers.
func buildPrompt(errorMessage, configSnippet string, pctx domain.ProviderContext) string {
	if len(configSnippet) > snippetCap {
		configSnippet = configSnippet[:snippetCap]
	}
	service := pctx.ServiceName
	if service == "" {
		service = "unknown"
	}
	platform := pctx.Platform
	if platform == "" {
		platform = "docker-compose"
	}
	return fmt.Sprintf(`Analyze this %s configuration error:

**Error**: %s
**Service**: %s
**Issue kind**: %s
**Configuration**:
`+"```yaml\n%s\n```"+`

Provide:
1. **Explanation**: What's wrong in plain English (1-2 sentences)
2. **Root Cause**: Why this happens (1 sentence)
3. **Fix**: Exact steps to resolve (2-3 actionable steps)

Keep it concise and practical.`, platform, errorMessage, service, pctx.IssueKind, configSnippet)
}
