package git

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner abstracts subprocess execution so git interactions can be
// faked in tests.
type CommandRunner interface {
	// Run executes a command in dir, forwarding stdout/stderr to the terminal.
	Run(dir string, name string, args ...string) error

	// Output executes a command in dir and returns its stdout.
	Output(dir string, name string, args ...string) ([]byte, error)
}

// RealCommandRunner executes commands with os/exec.
type RealCommandRunner struct {
	Verbose bool
}

// Compile-time check that RealCommandRunner implements CommandRunner.
var _ CommandRunner = (*RealCommandRunner)(nil)

// Run executes a command, forwarding stdout/stderr to the terminal.
func (r *RealCommandRunner) Run(dir string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if r.Verbose {
		fmt.Fprintf(os.Stderr, "=> %s %s\n", name, strings.Join(args, " "))
	}
	return cmd.Run()
}

// Output executes a command and returns its stdout.
func (r *RealCommandRunner) Output(dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if r.Verbose {
		fmt.Fprintf(os.Stderr, "=> %s %s\n", name, strings.Join(args, " "))
	}
	return cmd.Output()
}
