package application

import (
	"context"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/checkdk/checkdk/internal/domain"
	"github.com/checkdk/checkdk/internal/domain/rules"
)

// AnalyzeService is the single entry point for an analysis run: load the
// file, run every rule in registry order, synthesize one fix per issue, and
// decide pass/fail. Each call is independent; nothing is kept between runs.
type AnalyzeService struct {
	composeLoader domain.ComposeLoader
	k8sLoader     domain.KubernetesLoader
	composeRules  []rules.ComposeRule
	k8sRules      []rules.KubernetesRule
	composeFixes  *FixService
	k8sFixes      *FixService
	git           domain.GitInfo
}

// NewAnalyzeService wires the pipeline. git may be nil to skip the commit
// stamp.
func NewAnalyzeService(
	composeLoader domain.ComposeLoader,
	k8sLoader domain.KubernetesLoader,
	prober domain.PortProber,
	providers []domain.Provider,
	settings domain.Settings,
	git domain.GitInfo,
) *AnalyzeService {
	return &AnalyzeService{
		composeLoader: composeLoader,
		k8sLoader:     k8sLoader,
		composeRules:  rules.ComposeRules(prober),
		k8sRules:      rules.KubernetesRules(),
		composeFixes:  NewFixService(providers, settings, "docker-compose"),
		k8sFixes:      NewFixService(providers, settings, "kubernetes"),
		git:           git,
	}
}

// AnalyzeCompose runs the full compose pipeline over the file at path.
// The returned result is always complete: issues and fixes stay 1:1 even on
// unreadable input.
func (s *AnalyzeService) AnalyzeCompose(ctx context.Context, path string) *domain.AnalysisResult {
	cfg, issues := s.composeLoader.Load(path)

	for _, rule := range s.composeRules {
		issues = append(issues, rule.Validate(cfg)...)
	}

	fixes := make([]domain.Fix, 0, len(issues))
	for _, issue := range issues {
		fixes = append(fixes, s.composeFixes.FixFor(ctx, issue, composeSnippet(cfg, issue)))
	}

	result := &domain.AnalysisResult{
		Success: !hasCritical(issues),
		Issues:  issues,
		Fixes:   fixes,
	}
	s.stampCommit(result, filepath.Dir(path))
	return result
}

// AnalyzeKubernetes runs the manifest pipeline over the file at path.
func (s *AnalyzeService) AnalyzeKubernetes(ctx context.Context, path string) *domain.AnalysisResult {
	resources, issues := s.k8sLoader.Load(path)

	for _, rule := range s.k8sRules {
		issues = append(issues, rule.Validate(resources)...)
	}

	fixes := make([]domain.Fix, 0, len(issues))
	for _, issue := range issues {
		fixes = append(fixes, s.k8sFixes.FixFor(ctx, issue, resourceSnippet(resources, issue)))
	}

	result := &domain.AnalysisResult{
		Success: !hasCritical(issues),
		Issues:  issues,
		Fixes:   fixes,
	}
	s.stampCommit(result, filepath.Dir(path))
	return result
}

func (s *AnalyzeService) stampCommit(result *domain.AnalysisResult, dir string) {
	if s.git == nil || !s.git.IsGitRepo(dir) {
		return
	}
	if hash, err := s.git.CommitHash(dir); err == nil {
		result.CommitHash = hash
	}
}

func hasCritical(issues []domain.Issue) bool {
	for _, i := range issues {
		if i.Severity == domain.SeverityCritical {
			return true
		}
	}
	return false
}

// composeSnippet renders the owning service definition for AI prompts, or
// nothing when the issue has no service context.
func composeSnippet(cfg *domain.ComposeConfig, issue domain.Issue) string {
	if issue.ServiceName == "" {
		return ""
	}
	svc, ok := cfg.Service(issue.ServiceName)
	if !ok {
		return ""
	}
	out, err := yaml.Marshal(map[string]any{issue.ServiceName: svc})
	if err != nil {
		return ""
	}
	return string(out)
}

// resourceSnippet renders the owning resource for AI prompts. The rules
// report under metadata.name and record the resource kind in details, so
// same-named resources of different kinds resolve to the right document.
func resourceSnippet(resources []domain.Resource, issue domain.Issue) string {
	kind, _ := issue.Details["kind"].(string)
	for _, res := range resources {
		if res.Name() != issue.ServiceName {
			continue
		}
		if kind != "" && res.Kind() != kind {
			continue
		}
		out, err := yaml.Marshal(res.Raw)
		if err != nil {
			return ""
		}
		return string(out)
	}
	return ""
}
