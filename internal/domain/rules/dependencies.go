package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/checkdk/checkdk/internal/domain"
)

// DependencyRule checks that every depends_on entry and every legacy links
// reference names a declared service.
type DependencyRule struct{}

func (r *DependencyRule) Name() string { return "dependencies" }

func (r *DependencyRule) Validate(cfg *domain.ComposeConfig) []domain.Issue {
	declared := cfg.ServiceNames()
	available := make([]string, 0, len(declared))
	for name := range declared {
		available = append(available, name)
	}
	sort.Strings(available)

	var issues []domain.Issue
	for _, name := range cfg.OrderedServiceNames() {
		svc, ok := cfg.Service(name)
		if !ok {
			continue
		}

		for _, dep := range domain.StringList(svc["depends_on"]) {
			if _, ok := declared[dep]; ok {
				continue
			}
			issues = append(issues, domain.Issue{
				Kind:        domain.KindServiceDependency,
				Severity:    domain.SeverityCritical,
				Message:     fmt.Sprintf("Service '%s' depends on non-existent service '%s'", name, dep),
				ServiceName: name,
				Details: map[string]any{
					"missing_dependency": dep,
					"available_services": available,
				},
			})
		}

		// links entries are "service" or "service:alias".
		for _, link := range domain.StringList(svc["links"]) {
			target := link
			if i := strings.Index(link, ":"); i >= 0 {
				target = link[:i]
			}
			if _, ok := declared[target]; ok {
				continue
			}
			issues = append(issues, domain.Issue{
				Kind:        domain.KindServiceDependency,
				Severity:    domain.SeverityCritical,
				Message:     fmt.Sprintf("Service '%s' links to non-existent service '%s'", name, target),
				ServiceName: name,
				Details: map[string]any{
					"missing_link":       target,
					"available_services": available,
				},
			})
		}
	}
	return issues
}
