// Package command provides structured subprocess execution for the release
// tooling. Commands are always invoked with explicit argument lists, never
// interpolated shell strings.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result holds the captured output and exit status of one invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external programs.
// This interface enables mocking for testing the core package.
type Runner interface {
	// Run executes a program with the given arguments in the current directory.
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// RunInDir executes a program with the given working directory.
	RunInDir(ctx context.Context, dir, name string, args ...string) (*Result, error)
}

// ExecRunner is the os/exec-backed Runner used outside of tests.
type ExecRunner struct{}

// Verify that *ExecRunner implements Runner at compile time
var _ Runner = (*ExecRunner)(nil)

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a program in the current working directory.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	return r.RunInDir(ctx, "", name, args...)
}

// RunInDir executes a program in dir, capturing stdout and stderr separately.
// A non-zero exit is returned as an error alongside the populated Result so
// callers can surface the tool's stderr.
func (r *ExecRunner) RunInDir(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
	}

	if err != nil {
		return result, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return result, nil
}
