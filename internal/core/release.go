package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/relkit/relkit/internal/config"
	"github.com/relkit/relkit/internal/gitx"
	"github.com/relkit/relkit/internal/models"
)

// ReleaseRequest selects the version for a release run: either a bump kind or
// an explicit custom version, never both.
type ReleaseRequest struct {
	Bump   models.BumpKind
	Custom string
}

// ReleasePipeline runs the tag-a-release flow:
// validate -> resolve version -> update artifacts -> commit -> changelog -> publish tag.
// Every step's failure aborts the remainder; there are no retries.
type ReleasePipeline struct {
	git    gitx.ClientInterface
	cfg    *config.Config
	logger *slog.Logger
}

// NewReleasePipeline creates a ReleasePipeline.
func NewReleasePipeline(git gitx.ClientInterface, cfg *config.Config, logger *slog.Logger) *ReleasePipeline {
	return &ReleasePipeline{git: git, cfg: cfg, logger: logger}
}

// Run executes the release flow and returns the record of what was released.
func (p *ReleasePipeline) Run(ctx context.Context, req ReleaseRequest) (*models.ReleaseRecord, error) {
	validator := NewValidator(p.git)
	resolver := NewResolver(p.git)

	state, err := validator.Validate(ctx, p.cfg.ReleaseBranch, p.cfg.Remote)
	if err != nil {
		return nil, err
	}
	p.logger.Info("repository validated", "branch", state.CurrentBranch, "head", short(state.LocalHead))

	var previous, next models.Version
	if req.Custom != "" {
		previous, err = resolver.Latest(ctx)
		if err != nil {
			return nil, err
		}
		next, err = models.CustomVersion(req.Custom)
		if err != nil {
			return nil, err
		}
	} else {
		previous, next, err = resolver.Next(ctx, req.Bump)
		if err != nil {
			return nil, err
		}
	}
	p.logger.Info("resolved version", "previous", previous.String(), "next", next.String())

	updater := NewUpdater(p.cfg.Image.Repository, p.logger)
	updated, err := updater.Apply(next, p.cfg.Root(), p.cfg.Artifacts.Files)
	if err != nil {
		return nil, fmt.Errorf("update release artifacts: %w", err)
	}

	commitSHA := state.LocalHead
	if len(updated) > 0 {
		commitSHA, err = p.git.Commit(ctx, fmt.Sprintf("Release %s", next.String()), updated)
		if err != nil {
			return nil, fmt.Errorf("commit release artifacts: %w", err)
		}
		p.logger.Info("committed release artifacts", "files", len(updated), "sha", short(commitSHA))
	}

	generator := NewGenerator(p.git, p.cfg.Image.Repository, p.cfg.Image.Platforms, p.cfg.Changelog.Limit)
	changelog, err := generator.Generate(ctx, next, previous)
	if err != nil {
		return nil, fmt.Errorf("generate changelog: %w", err)
	}

	publisher := NewPublisher(p.git, p.cfg.Remote, p.cfg.ReleaseBranch, p.logger)
	if _, err := publisher.Publish(ctx, next, changelog, FailOnExisting); err != nil {
		return nil, err
	}

	return &models.ReleaseRecord{
		Version:         next,
		PreviousVersion: previous,
		Changelog:       changelog,
		CommitSHA:       commitSHA,
	}, nil
}
