package rules

import (
	"fmt"

	"github.com/checkdk/checkdk/internal/domain"
)

// ResourceLimitRule flags production-shaped services (restart policy or
// multiple replicas) that run without deploy.resources.limits.
type ResourceLimitRule struct{}

func (r *ResourceLimitRule) Name() string { return "resource-limits" }

func (r *ResourceLimitRule) Validate(cfg *domain.ComposeConfig) []domain.Issue {
	var issues []domain.Issue
	for _, name := range cfg.OrderedServiceNames() {
		svc, ok := cfg.Service(name)
		if !ok {
			continue
		}

		deploy, _ := svc["deploy"].(map[string]any)
		resources, _ := deploy["resources"].(map[string]any)
		limits, _ := resources["limits"].(map[string]any)

		restart, _ := svc["restart"].(string)
		replicas := 1
		if n, ok := deploy["replicas"].(int); ok {
			replicas = n
		}

		productionLike := restart == "always" || restart == "unless-stopped" || replicas > 1
		if !productionLike || len(limits) > 0 {
			continue
		}
		issues = append(issues, domain.Issue{
			Kind:        domain.KindResourceLimit,
			Severity:    domain.SeverityWarning,
			Message:     fmt.Sprintf("Production service '%s' has no resource limits", name),
			ServiceName: name,
			Details: map[string]any{
				"reason":   "Services without limits can consume all available resources",
				"restart":  restart,
				"replicas": replicas,
			},
		})
	}
	return issues
}
