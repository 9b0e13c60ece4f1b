package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/checkdk/checkdk/internal/adapters/outbound/executor"
	"github.com/checkdk/checkdk/internal/adapters/outbound/tui"
	"github.com/checkdk/checkdk/internal/domain"
)

func newDockerCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "docker [command...]",
		Short: "Wrap docker commands with pre-execution analysis",
		Long:  "Analyze the compose file before `docker compose` runs and block on critical issues.\n\nExample: checkdk docker compose up -d",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderBanner(version))

			argv := append([]string{"docker"}, args...)

			if len(args) < 2 || args[0] != "compose" {
				fmt.Fprintln(cmd.OutOrStdout(), "Non-compose command detected. Passing through...")
				return runExecutor(executor.New(argv), &domain.AnalysisResult{Success: true}, force)
			}

			path, found := findComposeFile()
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), "⚠ Warning: no docker-compose.yml found in current directory")
				fmt.Fprintln(cmd.OutOrStdout(), "Skipping analysis...")
				return runExecutor(executor.New(argv), &domain.AnalysisResult{Success: true}, force)
			}

			svc, settings := newAnalyzeService()
			ctx, cancel := analysisContext(cmd.Context(), settings)
			defer cancel()

			fmt.Fprintf(cmd.OutOrStdout(), "Analyzing: %s\n\n", path)
			result := svc.AnalyzeCompose(ctx, path)
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

	// The wrapped command keeps its own flags; only leading flags are ours.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Analyze only, do not execute")
	cmd.Flags().BoolVar(&force, "force", false, "Execute even if critical issues are found")

	return cmd
}

func runExecutor(exec domain.CommandExecutor, result *domain.AnalysisResult, force bool) error {
	if code := exec.Execute(result, force); code != 0 {
		return exitCodeError{code: code}
	}
	return nil
}
