package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkdk/checkdk/internal/domain"
)

// stubProvider is a canned AI provider recording whether it was consulted.
type stubProvider struct {
	name      string
	available bool
	outcome   domain.ProviderOutcome
	calls     int
}

func (p *stubProvider) Name() string    { return p.name }
func (p *stubProvider) Available() bool { return p.available }

func (p *stubProvider) Analyze(ctx context.Context, errorMessage, configSnippet string, pctx domain.ProviderContext) domain.ProviderOutcome {
	p.calls++
	return p.outcome
}

func aiSettings(enabled bool) domain.Settings {
	s := domain.DefaultSettings()
	s.AI.Enabled = enabled
	return s
}

func criticalIssue() domain.Issue {
	return domain.Issue{
		Kind:        domain.KindPortConflict,
		Severity:    domain.SeverityCritical,
		Message:     "Port 8080 is used by multiple services: 'web' and 'api'",
		ServiceName: "api",
		Details:     map[string]any{"port": 8080},
	}
}

func TestFixFor_AIFixAccepted(t *testing.T) {
	provider := &stubProvider{
		name:      "groq",
		available: true,
		outcome: domain.ProviderOutcome{Material: &domain.FixMaterial{
			Explanation: "two services publish the same port",
			RootCause:   "duplicate mapping",
			Steps:       []string{"change one of the two mappings"},
		}},
	}
	svc := NewFixService([]domain.Provider{provider}, aiSettings(true), "docker-compose")

	fix := svc.FixFor(context.Background(), criticalIssue(), "")
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "AI-suggested fix for port_conflict", fix.Description)
	assert.Equal(t, "two services publish the same port", fix.Explanation)
	assert.Equal(t, "duplicate mapping", fix.RootCause)
	assert.Equal(t, []string{"change one of the two mappings"}, fix.Steps)
}

func TestFixFor_WarningNeverConsultsAI(t *testing.T) {
	provider := &stubProvider{name: "groq", available: true}
	svc := NewFixService([]domain.Provider{provider}, aiSettings(true), "docker-compose")

	issue := domain.Issue{Kind: domain.KindImageVersion, Severity: domain.SeverityWarning, ServiceName: "web"}
	fix := svc.FixFor(context.Background(), issue, "")
	assert.Equal(t, 0, provider.calls)
	assert.NotEmpty(t, fix.Steps)
}

func TestFixFor_AIDisabledUsesTemplate(t *testing.T) {
	provider := &stubProvider{name: "groq", available: true}
	svc := NewFixService([]domain.Provider{provider}, aiSettings(false), "docker-compose")

	svc.FixFor(context.Background(), criticalIssue(), "")
	assert.Equal(t, 0, provider.calls)
}

func TestFixFor_ProviderErrorFallsBackToTemplate(t *testing.T) {
	provider := &stubProvider{
		name:      "groq",
		available: true,
		outcome:   domain.ProviderOutcome{Err: errors.New("rate limited")},
	}
	svc := NewFixService([]domain.Provider{provider}, aiSettings(true), "docker-compose")

	fix := svc.FixFor(context.Background(), criticalIssue(), "")
	assert.Equal(t, "Fix port 8080 conflict", fix.Description)
	assert.NotEmpty(t, fix.Steps)
}

func TestFixFor_MaterialWithoutStepsRejected(t *testing.T) {
	provider := &stubProvider{
		name:      "groq",
		available: true,
		outcome: domain.ProviderOutcome{Material: &domain.FixMaterial{
			Explanation: "words but no actionable steps",
		}},
	}
	svc := NewFixService([]domain.Provider{provider}, aiSettings(true), "docker-compose")

	fix := svc.FixFor(context.Background(), criticalIssue(), "")
	assert.Equal(t, "Fix port 8080 conflict", fix.Description)
}

func TestFixFor_UnavailableProviderSkipped(t *testing.T) {
	dead := &stubProvider{name: "groq", available: false}
	live := &stubProvider{
		name:      "gemini",
		available: true,
		outcome: domain.ProviderOutcome{Material: &domain.FixMaterial{
			Steps: []string{"do the thing"},
		}},
	}
	svc := NewFixService([]domain.Provider{dead, live}, aiSettings(true), "docker-compose")

	fix := svc.FixFor(context.Background(), criticalIssue(), "")
	assert.Equal(t, 0, dead.calls)
	assert.Equal(t, 1, live.calls)
	assert.Equal(t, []string{"do the thing"}, fix.Steps)
}

func TestTemplateFix_CoversEveryKind(t *testing.T) {
	kinds := []domain.IssueKind{
		domain.KindPortConflict,
		domain.KindMissingImage,
		domain.KindImageVersion,
		domain.KindInvalidManifest,
		domain.KindMissingEnvVar,
		domain.KindVolumeMount,
		domain.KindNetworkConfig,
		domain.KindServiceDependency,
		domain.KindSecurityIssue,
		domain.KindHealthCheck,
		domain.KindLabelMismatch,
		domain.KindLabelFormat,
		domain.KindResourceLimit,
	}
	for _, kind := range kinds {
		fix := TemplateFix(domain.Issue{Kind: kind, ServiceName: "svc", Details: map[string]any{}})
		assert.NotEmpty(t, fix.Description, "kind %s", kind)
		assert.NotEmpty(t, fix.Steps, "kind %s", kind)
	}
}

func TestTemplateFix_MissingImageMentionsBothDirectives(t *testing.T) {
	fix := TemplateFix(domain.Issue{Kind: domain.KindMissingImage, ServiceName: "worker"})
	joined := strings.Join(fix.Steps, "\n")
	assert.Contains(t, joined, "image:")
	assert.Contains(t, joined, "build:")
}

func TestTemplateFix_PortConflictWithProcess(t *testing.T) {
	fix := TemplateFix(domain.Issue{
		Kind:        domain.KindPortConflict,
		ServiceName: "web",
		Details: map[string]any{
			"port":    8080,
			"process": domain.ProcessInfo{PID: 4242, Name: "nginx"},
		},
	})
	joined := strings.Join(fix.Steps, "\n")
	assert.Contains(t, joined, "sudo kill 4242")
	assert.Contains(t, joined, "8081")
}

func TestTemplateFix_PortConflictWithoutProcess(t *testing.T) {
	fix := TemplateFix(domain.Issue{
		Kind:        domain.KindPortConflict,
		ServiceName: "web",
		Details:     map[string]any{"port": 8080},
	})
	joined := strings.Join(fix.Steps, "\n")
	assert.NotContains(t, joined, "sudo kill")
	assert.Contains(t, joined, "Change the port mapping")
}

func TestTemplateFix_ImageVersionPinsBase(t *testing.T) {
	fix := TemplateFix(domain.Issue{
		Kind:        domain.KindImageVersion,
		ServiceName: "web",
		Details:     map[string]any{"image": "nginx:latest"},
	})
	joined := strings.Join(fix.Steps, "\n")
	assert.Contains(t, joined, "nginx:1.21.0")
}

func TestTemplateFix_MissingEnvVarNamesVariable(t *testing.T) {
	fix := TemplateFix(domain.Issue{
		Kind:    domain.KindMissingEnvVar,
		Details: map[string]any{"variable": "DATABASE_URL"},
	})
	assert.Contains(t, fix.Description, "DATABASE_URL")
	joined := strings.Join(fix.Steps, "\n")
	assert.Contains(t, joined, "export DATABASE_URL=")
}

func TestTemplateFix_ResourceLimitKubernetesShape(t *testing.T) {
	fix := TemplateFix(domain.Issue{
		Kind:        domain.KindResourceLimit,
		ServiceName: "api",
		Details:     map[string]any{"container": "api"},
	})
	joined := strings.Join(fix.Steps, "\n")
	assert.Contains(t, joined, "containers:")
}

func TestTemplateFix_ResourceLimitComposeShape(t *testing.T) {
	fix := TemplateFix(domain.Issue{
		Kind:        domain.KindResourceLimit,
		ServiceName: "api",
		Details:     map[string]any{},
	})
	joined := strings.Join(fix.Steps, "\n")
	assert.Contains(t, joined, "deploy:")
}

func TestTemplateFix_SecuritySeverityBranches(t *testing.T) {
	critical := TemplateFix(domain.Issue{
		Kind:     domain.KindSecurityIssue,
		Severity: domain.SeverityCritical,
		Details:  map[string]any{"container": "api"},
	})
	assert.Contains(t, critical.Description, "privileged")

	warning := TemplateFix(domain.Issue{
		Kind:     domain.KindSecurityIssue,
		Severity: domain.SeverityWarning,
		Details:  map[string]any{"container": "api"},
	})
	assert.Contains(t, warning.Description, "non-root")
}

func TestTemplateFix_InvalidManifestIsManualReview(t *testing.T) {
	fix := TemplateFix(domain.Issue{Kind: domain.KindInvalidManifest})
	require.Equal(t, "Manual review required", fix.Description)
	assert.Equal(t, []string{"Review the configuration manually"}, fix.Steps)
}
