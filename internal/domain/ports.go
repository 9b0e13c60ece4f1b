package domain

import "context"

// ComposeLoader parses a Docker Compose file into the canonical model.
// Parse problems come back as issues, never as errors, so the pipeline can
// always continue to a complete result.
type ComposeLoader interface {
	Load(path string) (*ComposeConfig, []Issue)
}

// KubernetesLoader parses a (possibly multi-document) manifest file.
type KubernetesLoader interface {
	Load(path string) ([]Resource, []Issue)
}

// ProcessInfo identifies the process owning a bound port. Name is "unknown"
// when the connection table could be read but the process could not.
type ProcessInfo struct {
	PID     int32  `json:"pid"`
	Name    string `json:"name"`
	Cmdline string `json:"cmdline,omitempty"`
}

// PortProber checks live host state for the compose port rule. Both methods
// are best effort: probe failures read as "not in use" / "owner unknown".
// The answer is point-in-time and can be stale by the time the wrapped
// command runs.
type PortProber interface {
	InUse(port int) bool
	Owner(port int) (ProcessInfo, bool)
}

// FixMaterial is the structured content an AI provider extracted for one
// issue. Steps must be non-empty for the material to be accepted as a fix.
type FixMaterial struct {
	Explanation string
	RootCause   string
	Steps       []string
}

// ProviderContext carries the structured part of an analysis prompt.
type ProviderContext struct {
	ServiceName string
	IssueKind   IssueKind
	Platform    string
}

// ProviderOutcome is the explicit result-or-reason type at the provider
// boundary: exactly one of Material or Err is set.
type ProviderOutcome struct {
	Material *FixMaterial
	Err      error
}

// Provider is one AI backend in the fix chain. Available must be a pure
// credential check with no network traffic; Analyze failures of any sort are
// swallowed by the synthesizer, which falls back to static templates.
type Provider interface {
	Name() string
	Available() bool
	Analyze(ctx context.Context, errorMessage, configSnippet string, pctx ProviderContext) ProviderOutcome
}

// GitInfo resolves the commit hash stamped on analysis results.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}

// CommandExecutor runs the wrapped docker/kubectl command after the gate
// decision: blocked on critical issues unless forced, prompted on warnings
// unless forced, otherwise executed with its exit code forwarded (127 when
// the binary is missing).
type CommandExecutor interface {
	Execute(result *AnalysisResult, force bool) int
}
