package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// exitCodeError carries a specific process exit code out of a command so
// main can forward the wrapped command's status (1, 127, ...) unchanged.
type exitCodeError struct{ code int }

func (e exitCodeError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

// ExitCode extracts the exit code an error asks for, defaulting to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(exitCodeError); ok {
		return e.code
	}
	return 1
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "checkdk",
		Short:         "Predict. Diagnose. Fix – Before You Waste Time.",
		Long:          "checkdk inspects Docker Compose files and Kubernetes manifests before the wrapped command runs, detects misconfigurations, and proposes fixes.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDockerCmd())
	cmd.AddCommand(newKubectlCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// ExecuteContext runs the root command under the given context so an
// interrupt cancels in-flight analysis and wrapped commands.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
