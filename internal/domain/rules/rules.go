// Package rules holds the validation rule set. Every rule is independent:
// it consumes the canonical model and returns issues, sharing no state with
// the others. Registry order only affects display order, never correctness.
package rules

import "github.com/checkdk/checkdk/internal/domain"

// ComposeRule checks one aspect of a Docker Compose configuration.
type ComposeRule interface {
	Name() string
	Validate(cfg *domain.ComposeConfig) []domain.Issue
}

// KubernetesRule checks one aspect of a manifest's resource sequence.
type KubernetesRule interface {
	Name() string
	Validate(resources []domain.Resource) []domain.Issue
}

// ComposeRules returns the fixed compose registry. The prober feeds the port
// rule's live host check.
func ComposeRules(prober domain.PortProber) []ComposeRule {
	return []ComposeRule{
		&PortRule{Prober: prober},
		&ImageRule{},
		&EnvironmentRule{},
		&DependencyRule{},
		&VolumeRule{},
		&NetworkRule{},
		&ResourceLimitRule{},
	}
}

// KubernetesRules returns the fixed manifest registry.
func KubernetesRules() []KubernetesRule {
	return []KubernetesRule{
		&SecurityRule{},
		&ProbeRule{},
		&LabelRule{},
		&ServicePortRule{},
		&DeploymentRule{},
	}
}
