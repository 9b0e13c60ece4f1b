package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/checkdk/checkdk/internal/adapters/outbound/executor"
	"github.com/checkdk/checkdk/internal/adapters/outbound/tui"
	"github.com/checkdk/checkdk/internal/domain"
)

func newKubectlCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "kubectl [command...]",
		Short: "Wrap kubectl commands with pre-execution analysis",
		Long:  "Analyze the manifest before `kubectl apply`/`create` runs and block on critical issues.\n\nExample: checkdk kubectl apply -f deployment.yaml",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderBanner(version))

			argv := append([]string{"kubectl"}, args...)

			path, found := manifestArg(args)
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), "No manifest file in command. Passing through...")
				return runExecutor(executor.New(argv), &domain.AnalysisResult{Success: true}, force)
			}

			svc, settings := newAnalyzeService()
			ctx, cancel := analysisContext(cmd.Context(), settings)
			defer cancel()

			fmt.Fprintf(cmd.OutOrStdout(), "Analyzing: %s\n\n", path)
			result := svc.AnalyzeKubernetes(ctx, path)
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(result))

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "\n--dry-run: Analysis complete. Skipping execution.")
				if result.HasCriticalIssues() {
					return exitCodeError{code: 1}
				}
				return nil
			}

			return runExecutor(executor.New(argv), result, force)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Analyze only, do not execute")
	cmd.Flags().BoolVar(&force, "force", false, "Execute even if critical issues are found")

	return cmd
}

// manifestArg pulls the file path out of `apply -f file` / `create
// --filename=file` style invocations; only those verbs trigger analysis.
func manifestArg(args []string) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	switch args[0] {
	case "apply", "create", "replace":
	default:
		return "", false
	}
	for i, arg := range args[1:] {
		if arg == "-f" || arg == "--filename" {
			rest := args[1:]
			if i+1 < len(rest) {
				return rest[i+1], true
			}
			return "", false
		}
		if strings.HasPrefix(arg, "-f=") {
			return strings.TrimPrefix(arg, "-f="), true
		}
		if strings.HasPrefix(arg, "--filename=") {
			return strings.TrimPrefix(arg, "--filename="), true
		}
	}
	return "", false
}
