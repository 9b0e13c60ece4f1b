package rules

import (
	"fmt"
	"strings"

	"github.com/checkdk/checkdk/internal/domain"
)

// ImageRule flags services with no image source at all, and services pinned
// to nothing more specific than :latest.
type ImageRule struct{}

func (r *ImageRule) Name() string { return "images" }

func (r *ImageRule) Validate(cfg *domain.ComposeConfig) []domain.Issue {
	var issues []domain.Issue
	for _, name := range cfg.OrderedServiceNames() {
		svc, ok := cfg.Service(name)
		if !ok {
			continue
		}

		_, hasImage := svc["image"]
		_, hasBuild := svc["build"]
		if !hasImage && !hasBuild {
			issues = append(issues, domain.Issue{
				Kind:        domain.KindMissingImage,
				Severity:    domain.SeverityCritical,
				Message:     fmt.Sprintf("Service '%s' has no image or build specification", name),
				ServiceName: name,
				Details: map[string]any{
					"reason": "Every service needs either an image or build directive",
				},
			})
		}

		image, _ := svc["image"].(string)
		if image == "" {
			continue
		}
		if strings.HasSuffix(image, ":latest") || !strings.Contains(image, ":") {
			issues = append(issues, domain.Issue{
				Kind:        domain.KindImageVersion,
				Severity:    domain.SeverityWarning,
				Message:     fmt.Sprintf("Service '%s' uses 'latest' tag or no tag for image '%s'", name, image),
				ServiceName: name,
				Details: map[string]any{
					"image":  image,
					"reason": "Using :latest can lead to unpredictable deployments",
				},
			})
		}
	}
	return issues
}
