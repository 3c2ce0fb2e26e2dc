package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/relkit/relkit/internal/gitx"
	"github.com/relkit/relkit/internal/models"
)

// ErrTagExists is returned when the release tag is already present and the
// policy demands failure.
var ErrTagExists = errors.New("tag already exists")

// ExistingTagPolicy selects how Publish treats a pre-existing tag. The
// release flow must fail; the build flow skips with a warning.
type ExistingTagPolicy int

// Tag publishing policies.
const (
	FailOnExisting ExistingTagPolicy = iota
	SkipExisting
)

// Publisher creates and pushes annotated release tags.
type Publisher struct {
	git    gitx.ClientInterface
	remote string
	branch string
	logger *slog.Logger
}

// NewPublisher creates a tag Publisher pushing to the given remote/branch.
func NewPublisher(git gitx.ClientInterface, remote, branch string, logger *slog.Logger) *Publisher {
	return &Publisher{git: git, remote: remote, branch: branch, logger: logger}
}

// Publish creates an annotated tag for the version with the given message,
// then pushes the current branch and the tag. When the tag already exists the
// policy decides: FailOnExisting aborts with ErrTagExists, SkipExisting logs
// a warning and reports created=false.
func (p *Publisher) Publish(ctx context.Context, version models.Version, message string, policy ExistingTagPolicy) (created bool, err error) {
	tag := version.String()

	exists, err := p.git.TagExists(ctx, tag)
	if err != nil {
		return false, fmt.Errorf("check tag %s: %w", tag, err)
	}
	if exists {
		if policy == SkipExisting {
			p.logger.Warn("tag already exists, skipping", "tag", tag)
			return false, nil
		}
		return false, fmt.Errorf("%w: %s", ErrTagExists, tag)
	}

	if err := p.git.CreateTag(ctx, tag, message); err != nil {
		return false, fmt.Errorf("create tag %s: %w", tag, err)
	}

	if err := p.git.Push(ctx, p.remote, p.branch, tag); err != nil {
		return false, fmt.Errorf("push %s and %s: %w", p.branch, tag, err)
	}

	p.logger.Info("published tag", "tag", tag, "remote", p.remote)
	return true, nil
}
