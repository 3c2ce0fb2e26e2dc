package command

import (
	"context"
	"fmt"
	"strings"
)

// MockRunner is a scripted Runner implementation for testing.
type MockRunner struct {
	// Responses maps "name arg1 arg2 ..." to a canned result.
	Responses map[string]*Result
	// Errs maps the same key to an error returned alongside the result.
	Errs map[string]error
	// Calls records every invocation in order.
	Calls []string
}

// Verify that *MockRunner implements Runner at compile time
var _ Runner = (*MockRunner)(nil)

// NewMockRunner creates a MockRunner with empty response tables.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Responses: make(map[string]*Result),
		Errs:      make(map[string]error),
	}
}

// Stub registers a successful response for the given command line.
func (m *MockRunner) Stub(cmdline, stdout string) {
	m.Responses[cmdline] = &Result{Stdout: stdout}
}

// StubErr registers a failing response for the given command line.
func (m *MockRunner) StubErr(cmdline string, exitCode int, stderr string) {
	m.Responses[cmdline] = &Result{Stderr: stderr, ExitCode: exitCode}
	m.Errs[cmdline] = fmt.Errorf("%s: exit status %d", cmdline, exitCode)
}

// Run implements Runner.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	return m.RunInDir(ctx, "", name, args...)
}

// RunInDir implements Runner.
func (m *MockRunner) RunInDir(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	m.Calls = append(m.Calls, key)

	if res, ok := m.Responses[key]; ok {
		return res, m.Errs[key]
	}
	return nil, fmt.Errorf("unexpected command: %s", key)
}

// Called reports whether a command line was invoked.
func (m *MockRunner) Called(cmdline string) bool {
	for _, c := range m.Calls {
		if c == cmdline {
			return true
		}
	}
	return false
}
