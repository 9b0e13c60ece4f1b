package rules

import (
	"fmt"

	"github.com/checkdk/checkdk/internal/domain"
)

// ProbeRule checks that Deployment and StatefulSet containers declare both a
// liveness and a readiness probe; each missing probe is its own warning.
type ProbeRule struct{}

func (r *ProbeRule) Name() string { return "probes" }

func (r *ProbeRule) Validate(resources []domain.Resource) []domain.Issue {
	var issues []domain.Issue
	for _, res := range resources {
		kind := res.Kind()
		if kind != "Deployment" && kind != "StatefulSet" {
			continue
		}
		name := res.Name()
		namespace := res.Namespace()

		for _, container := range res.Containers() {
			cname := containerName(container)

			if _, ok := container["livenessProbe"]; !ok {
				issues = append(issues, domain.Issue{
					Kind:        domain.KindHealthCheck,
					Severity:    domain.SeverityWarning,
					Message:     fmt.Sprintf("%s '%s' container '%s' has no liveness probe", kind, name, cname),
					ServiceName: name,
					Details: map[string]any{
						"kind":      kind,
						"container": cname,
						"namespace": namespace,
						"reason":    "Liveness probes help Kubernetes restart unhealthy containers",
					},
				})
			}

			if _, ok := container["readinessProbe"]; !ok {
				issues = append(issues, domain.Issue{
					Kind:        domain.KindHealthCheck,
					Severity:    domain.SeverityWarning,
					Message:     fmt.Sprintf("%s '%s' container '%s' has no readiness probe", kind, name, cname),
					ServiceName: name,
					Details: map[string]any{
						"kind":      kind,
						"container": cname,
						"namespace": namespace,
						"reason":    "Readiness probes ensure traffic only goes to ready pods",
					},
				})
			}
		}
	}
	return issues
}
