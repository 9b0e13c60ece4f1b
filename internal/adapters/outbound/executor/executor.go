// Package executor runs the wrapped docker/kubectl command after the
// analysis gate has decided. It is deliberately thin: the analysis core only
// ever calls Execute and observes an exit code.
package executor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/checkdk/checkdk/internal/domain"
)

// ExitCommandNotFound mirrors the shell convention for a missing binary.
const ExitCommandNotFound = 127

// Executor implements domain.CommandExecutor for a fixed argv.
type Executor struct {
	argv   []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates an executor for the original command line.
func New(argv []string) *Executor {
	return &Executor{
		argv:   argv,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Execute applies the gate and then runs the wrapped command, forwarding its
// exit code. Critical issues block with exit 1 unless forced; warnings
// prompt unless forced; a missing binary exits 127.
func (e *Executor) Execute(result *domain.AnalysisResult, force bool) int {
	if result.HasCriticalIssues() && !force {
		fmt.Fprintln(e.stderr, "\n✗ Execution blocked due to critical issues.")
		fmt.Fprintln(e.stderr, "Fix the issues above or use --force to execute anyway.")
		return 1
	}

	if result.HasWarnings() && !force {
		fmt.Fprint(e.stderr, "\n⚠ Warnings detected. Continue? (y/N): ")
		if !e.confirm() {
			fmt.Fprintln(e.stderr, "Execution cancelled.")
			return 0
		}
	}

	if len(e.argv) == 0 {
		return 1
	}
	fmt.Fprintf(e.stderr, "\n→ Executing: %s\n\n", strings.Join(e.argv, " "))

	cmd := exec.Command(e.argv[0], e.argv[1:]...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	err := cmd.Run()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if errors.Is(err, exec.ErrNotFound) {
		fmt.Fprintf(e.stderr, "Error: command not found: %s\n", e.argv[0])
		fmt.Fprintln(e.stderr, "Make sure it is installed and in your PATH.")
		return ExitCommandNotFound
	}
	fmt.Fprintf(e.stderr, "Error executing command: %v\n", err)
	return 1
}

func (e *Executor) confirm() bool {
	line, err := bufio.NewReader(e.stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
