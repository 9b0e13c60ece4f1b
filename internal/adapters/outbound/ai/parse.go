package ai

import (
	"strings"

	"github.com/checkdk/checkdk/internal/domain"
)

// ParseResponse turns free-form provider text into fix material using a
// line-based section scanner. A header line both opens its section and may
// carry inline content after the colon. First match wins: once a section's
// slot is filled, later headers and stray lines no longer overwrite it.
// A response that never yields an explanation falls back to its first 200
// characters, so successfully returned text never produces empty material.
func ParseResponse(response string) *domain.FixMaterial {
	material := &domain.FixMaterial{}

	section := ""
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "explanation") && strings.Contains(line, ":"):
			section = "explanation"
			if inline := afterColon(line); inline != "" && material.Explanation == "" {
				material.Explanation = inline
			}
		case strings.Contains(lower, "root cause") && strings.Contains(line, ":"):
			section = "root_cause"
			if inline := afterColon(line); inline != "" && material.RootCause == "" {
				material.RootCause = inline
			}
		case strings.Contains(lower, "fix") && strings.Contains(line, ":"):
			section = "steps"
		case section == "steps" && isStepLine(line):
			if step := strings.TrimSpace(strings.TrimLeft(line, "-•*0123456789. ")); step != "" {
				material.Steps = append(material.Steps, step)
			}
		case section != "" && !strings.Contains(lower, "explanation") &&
			!strings.Contains(lower, "root") && !strings.Contains(lower, "fix"):
			// Unheadered continuation lines fill the open section's slot once.
			if section == "explanation" && material.Explanation == "" {
				material.Explanation = line
			} else if section == "root_cause" && material.RootCause == "" {
				material.RootCause = line
			}
		}
	}

	if material.Explanation == "" {
		raw := strings.TrimSpace(response)
		if len(raw) > 200 {
			raw = raw[:200]
		}
		material.Explanation = raw
	}
	return material
}

func afterColon(line string) string {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}

func isStepLine(line string) bool {
	switch line[0] {
	case '-', '*':
		return true
	}
	if strings.HasPrefix(line, "•") {
		return true
	}
	return line[0] >= '0' && line[0] <= '9'
}
