package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/checkdk/checkdk/internal/domain"
)

// VolumeRule checks that named volume mounts reference a top-level declared
// volume. Path-style sources (absolute, relative, home-relative) are bind
// mounts and need no declaration.
type VolumeRule struct{}

func (r *VolumeRule) Name() string { return "volumes" }

func (r *VolumeRule) Validate(cfg *domain.ComposeConfig) []domain.Issue {
	declared := make(map[string]struct{}, len(cfg.Volumes))
	declaredNames := make([]string, 0, len(cfg.Volumes))
	for name := range cfg.Volumes {
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
		raw, _ := svc["volumes"].([]any)
		for _, entry := range raw {
			mount, ok := entry.(string)
			if !ok || !strings.Contains(mount, ":") {
				continue
			}
			source := mount[:strings.Index(mount, ":")]
			if isPathSource(source) {
				continue
			}
			if _, ok := declared[source]; ok {
				continue
			}
			issues = append(issues, domain.Issue{
				Kind:        domain.KindVolumeMount,
				Severity:    domain.SeverityWarning,
				Message:     fmt.Sprintf("Service '%s' uses undefined volume '%s'", name, source),
				ServiceName: name,
				Details: map[string]any{
					"volume":          source,
					"defined_volumes": declaredNames,
					"suggestion":      "Define the volume in the top-level volumes section",
				},
			})
		}
	}
	return issues
}

func isPathSource(source string) bool {
	return strings.HasPrefix(source, "/") ||
		strings.HasPrefix(source, "./") ||
		strings.HasPrefix(source, "~")
}
