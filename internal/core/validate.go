// Package core implements the release and build pipelines: deterministic,
// fail-fast sequences of git and image-build operations.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/relkit/relkit/internal/gitx"
	"github.com/relkit/relkit/internal/models"
)

// Repository state errors.
var (
	ErrWrongBranch      = errors.New("not on the release branch")
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")
	ErrOutOfSync        = errors.New("local branch is out of sync with remote")
)

// Validator inspects the repository state before a release. Checks run in a
// fixed order (branch, cleanliness, remote sync) and the first violation
// aborts the run.
type Validator struct {
	git gitx.ClientInterface
}

// NewValidator creates a repository state Validator.
func NewValidator(git gitx.ClientInterface) *Validator {
	return &Validator{git: git}
}

// Validate snapshots the repository state and fails on the first violation.
// The sync check fetches the remote first so the comparison is against the
// remote's actual head, not a stale tracking ref.
func (v *Validator) Validate(ctx context.Context, releaseBranch, remote string) (models.RepositoryState, error) {
	var state models.RepositoryState

	branch, err := v.git.CurrentBranch(ctx)
	if err != nil {
		return state, fmt.Errorf("determine current branch: %w", err)
	}
	state.CurrentBranch = branch
	if branch != releaseBranch {
		return state, fmt.Errorf("%w: on %q, expected %q", ErrWrongBranch, branch, releaseBranch)
	}

	clean, err := v.git.IsClean(ctx)
	if err != nil {
		return state, fmt.Errorf("check working tree: %w", err)
	}
	state.IsClean = clean
	if !clean {
		return state, ErrDirtyWorkingTree
	}

	if err := v.git.Fetch(ctx, remote); err != nil {
		return state, fmt.Errorf("fetch %s: %w", remote, err)
	}

	local, err := v.git.Head(ctx)
	if err != nil {
		return state, fmt.Errorf("resolve local head: %w", err)
	}
	state.LocalHead = local

	remoteHead, err := v.git.RemoteHead(ctx, remote, releaseBranch)
	if err != nil {
		return state, fmt.Errorf("resolve remote head: %w", err)
	}
	state.RemoteHead = remoteHead

	if !state.InSync() {
		return state, fmt.Errorf("%w: local %s, remote %s", ErrOutOfSync, short(local), short(remoteHead))
	}

	return state, nil
}

func short(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
