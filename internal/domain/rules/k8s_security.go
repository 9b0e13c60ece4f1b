package rules

import (
	"fmt"

	"github.com/checkdk/checkdk/internal/domain"
)

// SecurityRule inspects container security contexts across all workload
// resources: privileged containers are critical, containers that may run as
// root are warnings.
type SecurityRule struct{}

func (r *SecurityRule) Name() string { return "security" }

func (r *SecurityRule) Validate(resources []domain.Resource) []domain.Issue {
	var issues []domain.Issue
	for _, res := range resources {
		if !res.IsWorkload() {
			continue
		}
		name := res.Name()
		namespace := res.Namespace()
		kind := res.Kind()

		for _, container := range res.Containers() {
			containerName := containerName(container)
			sc, _ := container["securityContext"].(map[string]any)

			if privileged, _ := sc["privileged"].(bool); privileged {
				issues = append(issues, domain.Issue{
					Kind:        domain.KindSecurityIssue,
					Severity:    domain.SeverityCritical,
					Message:     fmt.Sprintf("%s '%s' container '%s' runs in privileged mode", kind, name, containerName),
					ServiceName: name,
					Details: map[string]any{
						"kind":      kind,
						"container": containerName,
						"namespace": namespace,
						"reason":    "Privileged containers have access to all devices and can compromise security",
					},
				})
			}

			if nonRoot, _ := sc["runAsNonRoot"].(bool); nonRoot {
				continue
			}
			if uid, ok := sc["runAsUser"].(int); ok && uid != 0 {
				continue
			}
			issues = append(issues, domain.Issue{
				Kind:        domain.KindSecurityIssue,
				Severity:    domain.SeverityWarning,
				Message:     fmt.Sprintf("%s '%s' container '%s' may run as root", kind, name, containerName),
				ServiceName: name,
				Details: map[string]any{
					"kind":      kind,
					"container": containerName,
					"namespace": namespace,
					"reason":    "Running as root increases security risk",
				},
			})
		}
	}
	return issues
}

func containerName(container map[string]any) string {
	if name, ok := container["name"].(string); ok && name != "" {
		return name
	}
	return "unknown"
}
