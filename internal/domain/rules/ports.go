package rules

import (
	"fmt"

	"github.com/checkdk/checkdk/internal/domain"
)

// PortRule detects host port collisions two ways: the same port published by
// two services in one file, and a declared port already bound by some process
// on this host. The live check is advisory; the port can be freed or taken
// between analysis and the actual `docker compose up`.
type PortRule struct {
	Prober domain.PortProber
}

func (r *PortRule) Name() string { return "ports" }

func (r *PortRule) Validate(cfg *domain.ComposeConfig) []domain.Issue {
	var issues []domain.Issue

	// First claimant of a host port wins; every later claim conflicts with it.
	claimed := make(map[int]string)

	for _, name := range cfg.OrderedServiceNames() {
		for _, port := range cfg.HostPorts(name) {
			if first, ok := claimed[port]; ok {
				issues = append(issues, domain.Issue{
					Kind:        domain.KindPortConflict,
					Severity:    domain.SeverityCritical,
					Message:     fmt.Sprintf("Port %d is used by multiple services: '%s' and '%s'", port, first, name),
					ServiceName: name,
					Details: map[string]any{
						"port":                port,
						"conflicting_service": first,
					},
				})
			} else {
				claimed[port] = name
			}

			if r.Prober == nil || !r.Prober.InUse(port) {
				continue
			}
			message := fmt.Sprintf("Port %d on service '%s' is already in use", port, name)
			details := map[string]any{"port": port}
			if proc, ok := r.Prober.Owner(port); ok {
				message += fmt.Sprintf(" by %s (PID %d)", proc.Name, proc.PID)
				details["process"] = proc
			}
			issues = append(issues, domain.Issue{
				Kind:        domain.KindPortConflict,
				Severity:    domain.SeverityCritical,
				Message:     message,
				ServiceName: name,
				Details:     details,
			})
		}
	}
	return issues
}
