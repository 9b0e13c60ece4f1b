package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/checkdk/checkdk/internal/domain"
)

// FixService turns issues into fixes. Critical issues go through the AI
// provider chain when one is configured and enabled; everything else, and
// every AI failure, lands on the deterministic template table, which covers
// all issue kinds so an issue is never left without a fix.
type FixService struct {
	providers []domain.Provider
	aiEnabled bool
	platform  string
}

// NewFixService wires the provider chain. Platform tags prompts as
// docker-compose or kubernetes.
func NewFixService(providers []domain.Provider, settings domain.Settings, platform string) *FixService {
	return &FixService{
		providers: providers,
		aiEnabled: settings.AI.Enabled,
		platform:  platform,
	}
}

// FixFor produces exactly one fix for the issue. configSnippet is a bounded
// excerpt of the owning service/resource used in AI prompts.
func (s *FixService) FixFor(ctx context.Context, issue domain.Issue, configSnippet string) domain.Fix {
	if issue.Severity == domain.SeverityCritical && s.aiEnabled {
		if fix, ok := s.aiFix(ctx, issue, configSnippet); ok {
			return fix
		}
	}
	return TemplateFix(issue)
}

// aiFix asks the first available provider. Any provider error, and any
// result without at least one step, falls through to the template path.
func (s *FixService) aiFix(ctx context.Context, issue domain.Issue, configSnippet string) (domain.Fix, bool) {
	for _, provider := range s.providers {
		if !provider.Available() {
			continue
		}
		outcome := provider.Analyze(ctx, issue.Message, configSnippet, domain.ProviderContext{
			ServiceName: issue.ServiceName,
			IssueKind:   issue.Kind,
			Platform:    s.platform,
		})
		if outcome.Err != nil {
			slog.Debug("ai provider failed, using templates", "provider", provider.Name(), "error", outcome.Err)
			return domain.Fix{}, false
		}
		if outcome.Material == nil || len(outcome.Material.Steps) == 0 {
			return domain.Fix{}, false
		}
		return domain.Fix{
			Description: fmt.Sprintf("AI-suggested fix for %s", issue.Kind),
			Steps:       outcome.Material.Steps,
			Explanation: outcome.Material.Explanation,
			RootCause:   outcome.Material.RootCause,
		}, true
	}
	return domain.Fix{}, false
}

// TemplateFix is the deterministic fallback: a parameterized static fix for
// every issue kind.
func TemplateFix(issue domain.Issue) domain.Fix {
	switch issue.Kind {
	case domain.KindPortConflict:
		return portConflictFix(issue)

	case domain.KindMissingImage:
		return domain.Fix{
			Description: fmt.Sprintf("Add image specification to service '%s'", issue.ServiceName),
			Steps: []string{
				"Add an image directive to the service:",
				"  services:",
				fmt.Sprintf("    %s:", issue.ServiceName),
				"      image: nginx:1.21.0  # Use specific version",
				"",
				"OR specify a build context:",
				"  services:",
				fmt.Sprintf("    %s:", issue.ServiceName),
				"      build: ./path/to/dockerfile",
			},
		}

	case domain.KindImageVersion:
		image, _ := issue.Details["image"].(string)
		base := image
		for i := 0; i < len(image); i++ {
			if image[i] == ':' {
				base = image[:i]
				break
			}
		}
		return domain.Fix{
			Description: fmt.Sprintf("Pin specific version for '%s'", issue.ServiceName),
			Steps: []string{
				"Replace 'latest' with a specific version:",
				"  services:",
				fmt.Sprintf("    %s:", issue.ServiceName),
				fmt.Sprintf("      image: %s:1.21.0  # Choose appropriate version", base),
				"",
				"Check available versions at hub.docker.com",
			},
		}

	case domain.KindMissingEnvVar:
		varName, _ := issue.Details["variable"].(string)
		return domain.Fix{
			Description: fmt.Sprintf("Define environment variable '%s'", varName),
			Steps: []string{
				"Option 1: Create a .env file in the same directory:",
				fmt.Sprintf("  %s=your_value_here", varName),
				"",
				"Option 2: Export in your shell:",
				fmt.Sprintf("  export %s=your_value_here", varName),
				"",
				"Option 3: Use a default value in docker-compose.yml:",
				"  environment:",
				fmt.Sprintf("    - MY_VAR=${%s:-default_value}", varName),
			},
		}

	case domain.KindServiceDependency:
		missing, _ := issue.Details["missing_dependency"].(string)
		if missing == "" {
			missing, _ = issue.Details["missing_link"].(string)
		}
		return domain.Fix{
			Description: fmt.Sprintf("Fix missing service dependency '%s'", missing),
			Steps: []string{
				fmt.Sprintf("Option 1: Remove the dependency on '%s':", missing),
				"  depends_on:",
				fmt.Sprintf("    # Remove '%s'", missing),
				"",
				fmt.Sprintf("Option 2: Add the '%s' service:", missing),
				"  services:",
				fmt.Sprintf("    %s:", missing),
				"      image: appropriate/image:tag",
			},
		}

	case domain.KindVolumeMount:
		volume, _ := issue.Details["volume"].(string)
		return domain.Fix{
			Description: fmt.Sprintf("Define volume '%s'", volume),
			Steps: []string{
				"Add the volume to the top-level volumes section:",
				"volumes:",
				fmt.Sprintf("  %s:", volume),
				"    driver: local",
				"",
				"OR use a bind mount with absolute path:",
				"  volumes:",
				"    - /absolute/path/to/data:/container/path",
			},
		}

	case domain.KindNetworkConfig:
		network, _ := issue.Details["network"].(string)
		return domain.Fix{
			Description: fmt.Sprintf("Define network '%s'", network),
			Steps: []string{
				"Add the network to the top-level networks section:",
				"networks:",
				fmt.Sprintf("  %s:", network),
				"    driver: bridge",
			},
		}

	case domain.KindResourceLimit:
		return resourceLimitFix(issue)

	case domain.KindSecurityIssue:
		return securityFix(issue)

	case domain.KindHealthCheck:
		container, _ := issue.Details["container"].(string)
		return domain.Fix{
			Description: fmt.Sprintf("Add health probes for '%s'", container),
			Steps: []string{
				"Add liveness and readiness probes to the container:",
				"  containers:",
				fmt.Sprintf("  - name: %s", container),
				"    livenessProbe:",
				"      httpGet: {path: /healthz, port: 8080}",
				"      initialDelaySeconds: 10",
				"    readinessProbe:",
				"      httpGet: {path: /ready, port: 8080}",
				"      initialDelaySeconds: 5",
			},
		}

	case domain.KindLabelMismatch:
		return domain.Fix{
			Description: fmt.Sprintf("Align selector and template labels for '%s'", issue.ServiceName),
			Steps: []string{
				"Make spec.selector.matchLabels identical to the pod template labels:",
				"  spec:",
				"    selector:",
				"      matchLabels:",
				"        app: my-app",
				"    template:",
				"      metadata:",
				"        labels:",
				"          app: my-app",
			},
		}

	case domain.KindLabelFormat:
		key, _ := issue.Details["key"].(string)
		suggested, _ := issue.Details["suggested"].(string)
		return domain.Fix{
			Description: fmt.Sprintf("Rename label key '%s'", key),
			Steps: []string{
				fmt.Sprintf("Rename '%s' to '%s' in both the selector and the pod template labels", key, suggested),
			},
		}

	case domain.KindInvalidManifest:
		return domain.Fix{
			Description: "Manual review required",
			Steps:       []string{"Review the configuration manually"},
		}
	}

	return domain.Fix{
		Description: "Manual review required",
		Steps:       []string{"Review the configuration manually"},
	}
}

func portConflictFix(issue domain.Issue) domain.Fix {
	port, _ := issue.Details["port"].(int)
	var steps []string
	if proc, ok := issue.Details["process"].(domain.ProcessInfo); ok {
		steps = append(steps,
			fmt.Sprintf("Option 1: Stop the process using port %d", port),
			fmt.Sprintf("  sudo kill %d  # Stop %s", proc.PID, proc.Name),
		)
	}
	steps = append(steps,
		"Option 2: Change the port mapping in docker-compose.yml",
		"  ports:",
		fmt.Sprintf("    - \"%d:80\"  # Change %d to %d", port+1, port, port+1),
	)
	return domain.Fix{
		Description: fmt.Sprintf("Fix port %d conflict", port),
		Steps:       steps,
	}
}

func resourceLimitFix(issue domain.Issue) domain.Fix {
	// Kubernetes issues carry a container name; compose issues do not.
	if container, ok := issue.Details["container"].(string); ok {
		return domain.Fix{
			Description: fmt.Sprintf("Add resource limits for %s", container),
			Steps: []string{
				"Add resource limits to prevent resource exhaustion:",
				"  containers:",
				fmt.Sprintf("  - name: %s", container),
				"    resources:",
				"      limits:",
				"        memory: \"256Mi\"",
				"        cpu: \"500m\"",
				"      requests:",
				"        memory: \"128Mi\"",
				"        cpu: \"250m\"",
			},
		}
	}
	return domain.Fix{
		Description: fmt.Sprintf("Add resource limits to '%s'", issue.ServiceName),
		Steps: []string{
			"Add resource limits using deploy section:",
			"  services:",
			fmt.Sprintf("    %s:", issue.ServiceName),
			"      deploy:",
			"        resources:",
			"          limits:",
			"            cpus: '0.5'",
			"            memory: 512M",
			"          reservations:",
			"            cpus: '0.25'",
			"            memory: 256M",
		},
	}
}

func securityFix(issue domain.Issue) domain.Fix {
	container, _ := issue.Details["container"].(string)
	if issue.Severity == domain.SeverityCritical {
		return domain.Fix{
			Description: fmt.Sprintf("Remove privileged mode from '%s'", container),
			Steps: []string{
				"Drop the privileged flag and grant only the capabilities you need:",
				"  securityContext:",
				"    privileged: false",
				"    capabilities:",
				"      add: [\"NET_BIND_SERVICE\"]",
			},
		}
	}
	return domain.Fix{
		Description: fmt.Sprintf("Run '%s' as a non-root user", container),
		Steps: []string{
			"Set an explicit non-root user in the security context:",
			"  securityContext:",
			"    runAsNonRoot: true",
			"    runAsUser: 1000",
		},
	}
}
