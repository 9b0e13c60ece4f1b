package rules

import (
	"fmt"
	"strings"

	"github.com/checkdk/checkdk/internal/domain"
)

// DeploymentRule covers per-container Deployment hygiene: floating image
// tags and missing resource limits.
type DeploymentRule struct{}

func (r *DeploymentRule) Name() string { return "deployments" }

func (r *DeploymentRule) Validate(resources []domain.Resource) []domain.Issue {
	var issues []domain.Issue
	for _, res := range resources {
		if res.Kind() != "Deployment" {
			continue
		}
		name := res.Name()
		namespace := res.Namespace()

		for _, container := range res.Containers() {
			cname := containerName(container)

			image, _ := container["image"].(string)
			if image != "" && (strings.HasSuffix(image, ":latest") || !strings.Contains(image, ":")) {
				issues = append(issues, domain.Issue{
					Kind:        domain.KindImageVersion,
					Severity:    domain.SeverityWarning,
					Message:     fmt.Sprintf("Deployment '%s' uses 'latest' tag for container '%s'", name, cname),
					ServiceName: name,
					Details: map[string]any{
						"kind":      "Deployment",
						"container": cname,
						"image":     image,
						"namespace": namespace,
						"reason":    "Using :latest can lead to unpredictable deployments",
					},
				})
			}

			containerResources, _ := container["resources"].(map[string]any)
			limits, _ := containerResources["limits"].(map[string]any)
			if len(limits) == 0 {
				issues = append(issues, domain.Issue{
					Kind:        domain.KindResourceLimit,
					Severity:    domain.SeverityWarning,
					Message:     fmt.Sprintf("Deployment '%s' container '%s' has no resource limits", name, cname),
					ServiceName: name,
					Details: map[string]any{
						"kind":      "Deployment",
						"container": cname,
						"namespace": namespace,
						"reason":    "Missing limits can cause resource exhaustion",
					},
				})
			}
		}
	}
	return issues
}
