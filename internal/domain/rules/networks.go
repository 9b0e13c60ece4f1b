package rules

import (
	"fmt"
	"sort"

	"github.com/checkdk/checkdk/internal/domain"
)

// NetworkRule checks that service network attachments reference a top-level
// declared network. Compose always provides "default".
type NetworkRule struct{}

func (r *NetworkRule) Name() string { return "networks" }

func (r *NetworkRule) Validate(cfg *domain.ComposeConfig) []domain.Issue {
	declared := map[string]struct{}{"default": {}}
	declaredNames := []string{"default"}
	for name := range cfg.Networks {
		declared[name] = struct{}{}
		declaredNames = append(declaredNames, name)
	}
	sort.Strings(declaredNames)

	var issues []domain.Issue
	for _, name := range cfg.OrderedServiceNames() {
		svc, ok := cfg.Service(name)
		if !ok {
			continue
		}
		for _, network := range domain.StringList(svc["networks"]) {
			if _, ok := declared[network]; ok {
				continue
			}
			issues = append(issues, domain.Issue{
				Kind:        domain.KindNetworkConfig,
				Severity:    domain.SeverityWarning,
				Message:     fmt.Sprintf("Service '%s' uses undefined network '%s'", name, network),
				ServiceName: name,
				Details: map[string]any{
					"network":          network,
					"defined_networks": declaredNames,
				},
			})
		}
	}
	return issues
}
