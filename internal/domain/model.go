package domain

// Severity classifies how serious a detected issue is. Critical issues
// block execution of the wrapped command unless the user forces it.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// IssueKind is the closed set of problems the analyzers can detect.
// Extending it means adding a new kind together with the rule that emits it
// and a deterministic fix template for it.
type IssueKind string

const (
	KindPortConflict      IssueKind = "port_conflict"
	KindMissingImage      IssueKind = "missing_image"
	KindImageVersion      IssueKind = "image_version"
	KindInvalidManifest   IssueKind = "invalid_manifest"
	KindMissingEnvVar     IssueKind = "missing_env_var"
	KindVolumeMount       IssueKind = "volume_mount"
	KindNetworkConfig     IssueKind = "network_config"
	KindServiceDependency IssueKind = "service_dependency"
	KindSecurityIssue     IssueKind = "security_issue"
	KindHealthCheck       IssueKind = "health_check"
	KindLabelMismatch     IssueKind = "label_mismatch"
	KindLabelFormat       IssueKind = "label_format"
	KindResourceLimit     IssueKind = "resource_limit"
)

// Issue is one detected configuration problem. Issues are never mutated
// after construction; rules build them and the orchestrator collects them.
type Issue struct {
	Kind        IssueKind      `json:"kind"`
	Severity    Severity       `json:"severity"`
	Message     string         `json:"message"`
	FilePath    string         `json:"file_path,omitempty"`
	Line        int            `json:"line,omitempty"`
	ServiceName string         `json:"service_name,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// Fix is a proposed remediation for exactly one Issue. Explanation and
// RootCause are set only when the fix came from an AI provider.
type Fix struct {
	Description    string   `json:"description"`
	Steps          []string `json:"steps"`
	CodeSnippet    string   `json:"code_snippet,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
	RootCause      string   `json:"root_cause,omitempty"`
	AutoApplicable bool     `json:"auto_applicable"`
}

// AnalysisResult aggregates everything one analysis run produced.
// Issues and Fixes are index-aligned: Fixes[i] remediates Issues[i].
type AnalysisResult struct {
	Success    bool     `json:"success"`
	Issues     []Issue  `json:"issues"`
	Fixes      []Fix    `json:"fixes"`
	Warnings   []string `json:"warnings,omitempty"`
	CommitHash string   `json:"commit_hash,omitempty"`
}

// HasCriticalIssues reports whether any issue would block execution.
func (r *AnalysisResult) HasCriticalIssues() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// HasWarnings reports whether the result carries warning-level issues or
// free-text warnings.
func (r *AnalysisResult) HasWarnings() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			return true
		}
	}
	return len(r.Warnings) > 0
}

// CountBySeverity returns the number of issues with the given severity.
func (r *AnalysisResult) CountBySeverity(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}
