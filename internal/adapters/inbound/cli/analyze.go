package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/checkdk/checkdk/internal/adapters/outbound/tui"
	"github.com/checkdk/checkdk/internal/domain"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		platform   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a compose file or manifest without executing anything",
		Long:  "Run the full analysis pipeline over a single file and report issues and fixes. Exits 1 when critical issues are found.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			svc, settings := newAnalyzeService()
			ctx, cancel := analysisContext(cmd.Context(), settings)
			defer cancel()

			var result *domain.AnalysisResult
			switch resolvePlatform(platform, path) {
			case "kubernetes":
				result = svc.AnalyzeKubernetes(ctx, path)
			default:
				result = svc.AnalyzeCompose(ctx, path)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderBanner(version))
				fmt.Fprintf(cmd.OutOrStdout(), "Analyzing: %s\n\n", path)
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(result))
			}

			if result.HasCriticalIssues() {
				return exitCodeError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Force platform: compose or kubernetes (default: by filename)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// resolvePlatform picks the pipeline: an explicit flag wins, compose-style
// filenames go to compose, and anything else is sniffed for a top-level
// `services` mapping before falling back to kubernetes.
func resolvePlatform(flag, path string) string {
	switch flag {
	case "compose", "kubernetes":
		return flag
	}
	base := strings.ToLower(path)
	if strings.Contains(base, "compose") {
		return "compose"
	}
	if looksLikeCompose(path) {
		return "compose"
	}
	return "kubernetes"
}

// looksLikeCompose reports whether the file parses as a mapping with a
// top-level `services` key and no `kind`, the shape of a compose file under
// any name. Unreadable or unparseable files are left to the kubernetes
// pipeline to report.
func looksLikeCompose(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	if _, isManifest := doc["kind"]; isManifest {
		return false
	}
	_, hasServices := doc["services"]
	return hasServices
}
