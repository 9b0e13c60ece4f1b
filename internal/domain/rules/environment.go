package rules

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/checkdk/checkdk/internal/domain"
)

// envRefPattern matches ${VAR_NAME} or bare $VAR_NAME references inside
// environment entry values.
var envRefPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Z_][A-Z0-9_]*)`)

// EnvironmentRule flags references to environment variables that are not set
// in the current process environment. The loader already resolved (or
// reported) whole-token scalar interpolations, so this rule only catches
// references embedded in larger `environment` entry values, which compose
// defers to container runtime.
type EnvironmentRule struct{}

func (r *EnvironmentRule) Name() string { return "environment" }

func (r *EnvironmentRule) Validate(cfg *domain.ComposeConfig) []domain.Issue {
	var issues []domain.Issue
	for _, name := range cfg.OrderedServiceNames() {
		svc, ok := cfg.Service(name)
		if !ok {
			continue
		}

		for _, entry := range envEntries(svc["environment"]) {
			for _, match := range envRefPattern.FindAllStringSubmatch(entry, -1) {
				varName := match[1]
				if varName == "" {
					varName = match[2]
				}
				// ${VAR:-default} has a fallback, nothing to report.
				if i := indexDefault(varName); i >= 0 {
					continue
				}
				if os.Getenv(varName) != "" {
					continue
				}
				issues = append(issues, domain.Issue{
					Kind:        domain.KindMissingEnvVar,
					Severity:    domain.SeverityWarning,
					Message:     fmt.Sprintf("Service '%s' references undefined environment variable '${%s}'", name, varName),
					ServiceName: name,
					Details: map[string]any{
						"variable": varName,
						"entry":    entry,
					},
				})
			}
		}
	}
	return issues
}

// envEntries normalizes `environment` into KEY=VALUE strings from both the
// list and the mapping form. Mapping values that are a bare ${...} scalar are
// dropped: the loader's interpolation pass owns those and has already
// substituted them or reported the missing variable.
func envEntries(v any) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok && !wholeTokenRef(s) {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			if val, ok := t[k].(string); ok && val != "" && !wholeTokenRef(val) {
				out = append(out, k+"="+val)
			} else {
				out = append(out, k)
			}
		}
		return out
	}
	return nil
}

// wholeTokenRef mirrors the loader's interpolation predicate: the entire
// scalar is a single ${...} reference.
func wholeTokenRef(s string) bool {
	return strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}")
}

func indexDefault(varName string) int {
	for i := 0; i+1 < len(varName); i++ {
		if varName[i] == ':' && varName[i+1] == '-' {
			return i
		}
	}
	return -1
}
