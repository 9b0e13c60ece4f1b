package rules

import (
	"fmt"

	"github.com/checkdk/checkdk/internal/domain"
)

// ServicePortRule detects duplicate (port, protocol) pairs within a Service
// and nodePort collisions between Services in the same namespace.
type ServicePortRule struct{}

func (r *ServicePortRule) Name() string { return "service-ports" }

func (r *ServicePortRule) Validate(resources []domain.Resource) []domain.Issue {
	var issues []domain.Issue

	// namespace:nodePort -> first service that claimed it
	nodePorts := make(map[string]string)

	for _, res := range resources {
		if res.Kind() != "Service" {
			continue
		}
		name := res.Name()
		namespace := res.Namespace()
		spec := res.Spec()
		rawPorts, _ := spec["ports"].([]any)

		if svcType, _ := spec["type"].(string); svcType == "NodePort" {
			for _, entry := range rawPorts {
				portCfg, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				nodePort, ok := portCfg["nodePort"].(int)
				if !ok || nodePort == 0 {
					continue
				}
				key := fmt.Sprintf("%s:%d", namespace, nodePort)
				if first, claimed := nodePorts[key]; claimed {
					issues = append(issues, domain.Issue{
						Kind:        domain.KindPortConflict,
						Severity:    domain.SeverityCritical,
						Message:     fmt.Sprintf("NodePort %d is used by multiple services: '%s' and '%s'", nodePort, first, name),
						ServiceName: name,
						Details: map[string]any{
							"kind":                "Service",
							"port":                nodePort,
							"namespace":           namespace,
							"conflicting_service": first,
						},
					})
				} else {
					nodePorts[key] = name
				}
			}
		}

		seen := make(map[string]struct{})
		for _, entry := range rawPorts {
			portCfg, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			port, ok := portCfg["port"].(int)
			if !ok {
				continue
			}
			protocol, _ := portCfg["protocol"].(string)
			if protocol == "" {
				protocol = "TCP"
			}
			key := fmt.Sprintf("%d:%s", port, protocol)
			if _, dup := seen[key]; dup {
				issues = append(issues, domain.Issue{
					Kind:        domain.KindPortConflict,
					Severity:    domain.SeverityCritical,
					Message:     fmt.Sprintf("Service '%s' has duplicate port %d/%s", name, port, protocol),
					ServiceName: name,
					Details: map[string]any{
						"kind":      "Service",
						"port":      port,
						"protocol":  protocol,
						"namespace": namespace,
					},
				})
			} else {
				seen[key] = struct{}{}
			}
		}
	}
	return issues
}
