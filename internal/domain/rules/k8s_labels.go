package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/checkdk/checkdk/internal/domain"
)

// LabelRule verifies that controller selectors actually match their pod
// template labels (a mismatch means the controller will never manage its
// pods), and flags camelCase label keys with a kebab-case suggestion.
type LabelRule struct{}

func (r *LabelRule) Name() string { return "labels" }

func (r *LabelRule) Validate(resources []domain.Resource) []domain.Issue {
	var issues []domain.Issue
	for _, res := range resources {
		switch res.Kind() {
		case "Deployment", "StatefulSet", "DaemonSet":
		default:
			continue
		}
		name := res.Name()
		namespace := res.Namespace()

		selector := res.SelectorMatchLabels()
		templateLabels := res.TemplateLabels()

		// One mismatch issue per resource; the first failing key decides.
		for _, key := range sortedKeys(selector) {
			want := selector[key]
			if got, ok := templateLabels[key]; ok && got == want {
				continue
			}
			issues = append(issues, domain.Issue{
				Kind:        domain.KindLabelMismatch,
				Severity:    domain.SeverityCritical,
				Message:     fmt.Sprintf("%s '%s' selector doesn't match pod template labels", res.Kind(), name),
				ServiceName: name,
				Details: map[string]any{
					"kind":            res.Kind(),
					"namespace":       namespace,
					"selector":        selector,
					"template_labels": templateLabels,
					"reason":          "Mismatched labels will prevent the deployment from managing pods",
				},
			})
			break
		}

		for _, key := range sortedKeys(templateLabels) {
			suggestion, ok := kebabCase(key)
			if !ok {
				continue
			}
			issues = append(issues, domain.Issue{
				Kind:        domain.KindLabelFormat,
				Severity:    domain.SeverityInfo,
				Message:     fmt.Sprintf("%s '%s' label key '%s' is camelCase; Kubernetes convention is kebab-case", res.Kind(), name, key),
				ServiceName: name,
				Details: map[string]any{
					"kind":      res.Kind(),
					"namespace": namespace,
					"key":       key,
					"suggested": suggestion,
				},
			})
		}
	}
	return issues
}

// kebabCase splits a camelCase label key into a lowercase hyphenated
// suggestion. Keys that split into a single word are already fine.
func kebabCase(key string) (string, bool) {
	// Prefix like app.kubernetes.io/ is conventional; only check the name part.
	namePart := key
	if i := strings.LastIndex(key, "/"); i >= 0 {
		namePart = key[i+1:]
	}
	words := camelcase.Split(namePart)
	if len(words) < 2 {
		return "", false
	}
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	suggestion := strings.Join(words, "-")
	if i := strings.LastIndex(key, "/"); i >= 0 {
		suggestion = key[:i+1] + suggestion
	}
	return suggestion, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
