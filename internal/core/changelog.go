package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/relkit/relkit/internal/gitx"
	"github.com/relkit/relkit/internal/models"
)

// Generator derives a human-readable change summary between two versions.
// The output is an opaque text block; nothing re-parses it downstream.
type Generator struct {
	git        gitx.ClientInterface
	repository string
	platforms  []string
	limit      int
}

// NewGenerator creates a changelog Generator. repository and platforms feed
// the fixed artifacts section appended to every changelog.
func NewGenerator(git gitx.ClientInterface, repository string, platforms []string, limit int) *Generator {
	return &Generator{git: git, repository: repository, platforms: platforms, limit: limit}
}

// Generate builds the changelog for newVersion. For the very first release
// (previous is the implicit baseline with no existing tag) it emits a fixed
// Initial Release section; otherwise it lists up to the configured number of
// commit subjects between previous (exclusive) and HEAD (inclusive), newest
// first.
func (g *Generator) Generate(ctx context.Context, newVersion, previous models.Version) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", newVersion.String())

	initial := newVersion.Equal(previous)
	if !initial && previous.Equal(models.Baseline) {
		exists, err := g.git.TagExists(ctx, previous.String())
		if err != nil {
			return "", fmt.Errorf("check tag %s: %w", previous.String(), err)
		}
		initial = !exists
	}

	if initial {
		b.WriteString("Initial Release\n")
	} else {
		subjects, err := g.git.Subjects(ctx, previous.String(), "HEAD", g.limit)
		if err != nil {
			return "", fmt.Errorf("list commits since %s: %w", previous.String(), err)
		}
		fmt.Fprintf(&b, "Changes since %s:\n", previous.String())
		for _, s := range subjects {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	b.WriteString("\nArtifacts:\n")
	fmt.Fprintf(&b, "- Image: %s:%s\n", g.repository, newVersion.String())
	fmt.Fprintf(&b, "- Platforms: %s\n", strings.Join(g.platforms, ", "))

	return b.String(), nil
}
