package core

import (
	"context"
	"fmt"
	"time"

	"github.com/relkit/relkit/internal/gitx"
	"github.com/relkit/relkit/internal/models"
)

// Resolver determines versions from the repository's tag history.
type Resolver struct {
	git gitx.ClientInterface

	// now is overridable in tests for deterministic auto versions.
	now func() time.Time
}

// NewResolver creates a version Resolver.
func NewResolver(git gitx.ClientInterface) *Resolver {
	return &Resolver{git: git, now: time.Now}
}

// Latest returns the highest existing version tag by semantic ordering. An
// empty tag history yields the implicit baseline v1.0.0.
func (r *Resolver) Latest(ctx context.Context) (models.Version, error) {
	tags, err := r.git.Tags(ctx)
	if err != nil {
		return models.Version{}, fmt.Errorf("list tags: %w", err)
	}
	return models.LatestVersion(tags), nil
}

// Next returns the latest version bumped by kind.
func (r *Resolver) Next(ctx context.Context, kind models.BumpKind) (current, next models.Version, err error) {
	current, err = r.Latest(ctx)
	if err != nil {
		return models.Version{}, models.Version{}, err
	}
	next, err = current.Bump(kind)
	if err != nil {
		return models.Version{}, models.Version{}, err
	}
	return current, next, nil
}

// Auto generates a development build version of the form
// <base>-<timestamp>-<shortSHA>, where base is the latest release tag.
func (r *Resolver) Auto(ctx context.Context) (models.Version, error) {
	base, err := r.Latest(ctx)
	if err != nil {
		return models.Version{}, err
	}
	sha, err := r.git.ShortHead(ctx)
	if err != nil {
		return models.Version{}, fmt.Errorf("resolve short head: %w", err)
	}
	raw := fmt.Sprintf("%s-%s-%s", base.String(), r.now().UTC().Format("20060102150405"), sha)
	return models.CustomVersion(raw)
}
