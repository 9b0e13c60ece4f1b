// Package composefile parses Docker Compose files into the canonical model.
// Every parse problem becomes an issue on the returned slice; the loader
// never fails outright, so the pipeline always gets a (possibly empty)
// config to finish on.
package composefile

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/checkdk/checkdk/internal/domain"
)

// Loader implements domain.ComposeLoader.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Load reads and parses the compose file at path. The returned config has
// environment references resolved and service declaration order preserved.
func (l *Loader) Load(path string) (*domain.ComposeConfig, []domain.Issue) {
	empty := &domain.ComposeConfig{
		Services: map[string]any{},
		Networks: map[string]any{},
		Volumes:  map[string]any{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		msg := fmt.Sprintf("Error reading Docker Compose file: %v", err)
		if errors.Is(err, os.ErrNotExist) {
			msg = fmt.Sprintf("Docker Compose file not found: %s", path)
		}
		return empty, []domain.Issue{invalidManifest(msg, path)}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return empty, []domain.Issue{invalidManifest(fmt.Sprintf("YAML parsing error: %v", err), path)}
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return empty, []domain.Issue{invalidManifest("Invalid Docker Compose file: root must be a mapping", path)}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return empty, []domain.Issue{invalidManifest(fmt.Sprintf("YAML parsing error: %v", err), path)}
	}

	resolver := &envResolver{}
	resolved, _ := resolver.resolve(raw).(map[string]any)
	if resolved == nil {
		resolved = map[string]any{}
	}

	cfg := &domain.ComposeConfig{
		Services:     mapping(resolved["services"]),
		ServiceOrder: serviceOrder(doc.Content[0]),
		Networks:     mapping(resolved["networks"]),
		Volumes:      mapping(resolved["volumes"]),
		Raw:          resolved,
	}
	if v, ok := resolved["version"].(string); ok {
		cfg.Version = v
	}

	issues := resolver.issues
	issues = append(issues, validateStructure(cfg, path)...)
	return cfg, issues
}

// serviceOrder walks the root mapping node to recover the declaration order
// of services, which the map form loses.
func serviceOrder(root *yaml.Node) []string {
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "services" {
			continue
		}
		services := root.Content[i+1]
		if services.Kind != yaml.MappingNode {
			return nil
		}
		var order []string
		for j := 0; j+1 < len(services.Content); j += 2 {
			order = append(order, services.Content[j].Value)
		}
		return order
	}
	return nil
}

func validateStructure(cfg *domain.ComposeConfig, path string) []domain.Issue {
	if len(cfg.Services) == 0 {
		return []domain.Issue{invalidManifest("No services defined in Docker Compose file", path)}
	}

	var issues []domain.Issue
	for _, name := range cfg.OrderedServiceNames() {
		svc, ok := cfg.Service(name)
		if !ok {
			issue := invalidManifest(fmt.Sprintf("Service '%s' configuration must be a mapping", name), path)
			issue.ServiceName = name
			issues = append(issues, issue)
			continue
		}
		_, hasImage := svc["image"]
		_, hasBuild := svc["build"]
		if !hasImage && !hasBuild {
			issue := invalidManifest(fmt.Sprintf("Service '%s' must specify 'image' or 'build'", name), path)
			issue.ServiceName = name
			issues = append(issues, issue)
		}
	}
	return issues
}

func invalidManifest(message, path string) domain.Issue {
	return domain.Issue{
		Kind:     domain.KindInvalidManifest,
		Severity: domain.SeverityCritical,
		Message:  message,
		FilePath: path,
	}
}

func mapping(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// envResolver substitutes whole-token ${NAME} / ${NAME:-default} scalars
// depth-first. Mappings are walked in sorted key order so warning order is
// reproducible. No partial-string interpolation is attempted.
type envResolver struct {
	issues []domain.Issue
}

func (r *envResolver) resolve(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(t))
		for _, k := range keys {
			out[k] = r.resolve(t[k])
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = r.resolve(item)
		}
		return out
	case string:
		return r.resolveScalar(t)
	}
	return v
}

func (r *envResolver) resolveScalar(s string) string {
	if !strings.HasPrefix(s, "${") || !strings.HasSuffix(s, "}") {
		return s
	}
	token := s[2 : len(s)-1]
	name := token
	def := ""
	hasDefault := false
	if i := strings.Index(token, ":-"); i >= 0 {
		name, def = token[:i], token[i+2:]
		hasDefault = true
	}

	value, set := os.LookupEnv(name)
	if !set {
		if !hasDefault {
			r.issues = append(r.issues, domain.Issue{
				Kind:     domain.KindMissingEnvVar,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("Environment variable not set: %s", name),
				Details:  map[string]any{"variable": name},
			})
			return s
		}
		value = def
	}
	if value == "" {
		// Empty resolutions keep the reference visible rather than silently
		// blanking the field.
		return s
	}
	return value
}
