// Package docker drives the docker buildx tooling for multi-arch image
// builds and registry manifest inspection.
package docker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/relkit/relkit/internal/command"
	"github.com/relkit/relkit/internal/models"
)

// Build errors.
var (
	ErrBuildFailed        = errors.New("image build failed")
	ErrIncompleteManifest = errors.New("pushed manifest is missing expected platforms")
)

// Coordinator issues multi-platform build+push requests through docker
// buildx. The builder instance is the one piece of persistent environment
// state the tool touches: it is created on first use and reused thereafter.
type Coordinator struct {
	runner  command.Runner
	builder string
	logger  *slog.Logger
}

// NewCoordinator creates a Coordinator using the named buildx builder.
func NewCoordinator(runner command.Runner, builder string, logger *slog.Logger) *Coordinator {
	return &Coordinator{runner: runner, builder: builder, logger: logger}
}

// EnsureBuilder makes sure the cross-platform builder exists, creating it on
// first use.
func (c *Coordinator) EnsureBuilder(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, "docker", "buildx", "inspect", c.builder); err == nil {
		return nil
	}

	c.logger.Info("creating buildx builder", "name", c.builder)
	res, err := c.runner.Run(ctx, "docker", "buildx", "create", "--name", c.builder, "--use", "--bootstrap")
	if err != nil {
		return fmt.Errorf("%w: create builder %s: %s", ErrBuildFailed, c.builder, stderrOf(res))
	}
	return nil
}

// BuildAndPush issues a single build+push for all platforms and tags of the
// target. No partial-platform success is accepted: a non-zero exit from the
// build tool fails the whole invocation.
func (c *Coordinator) BuildAndPush(ctx context.Context, target models.BuildTarget) error {
	args := []string{
		"buildx", "build",
		"--builder", c.builder,
		"--platform", strings.Join(target.Platforms, ","),
	}
	for _, ref := range target.Refs() {
		args = append(args, "--tag", ref)
	}
	args = append(args, "--push", ".")

	c.logger.Info("building image",
		"repository", target.Repository,
		"platforms", strings.Join(target.Platforms, ","),
		"tags", strings.Join(target.Tags, ","))

	res, err := c.runner.Run(ctx, "docker", args...)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBuildFailed, stderrOf(res))
	}
	return nil
}

func stderrOf(res *command.Result) string {
	if res == nil || res.Stderr == "" {
		return "no output"
	}
	return res.Stderr
}
