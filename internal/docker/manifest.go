package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/relkit/relkit/internal/command"
	"github.com/relkit/relkit/internal/models"
)

// Verifier checks that a pushed image's registry manifest actually lists
// every declared target platform. Without this check a partially built image
// (one architecture silently dropped) would go undetected.
type Verifier struct {
	runner command.Runner
}

// NewVerifier creates a manifest Verifier.
func NewVerifier(runner command.Runner) *Verifier {
	return &Verifier{runner: runner}
}

// Inspect fetches the manifest index for repository:tag and returns one entry
// per platform present. Attestation manifests (platform unknown/unknown) are
// not image platforms and are skipped.
func (v *Verifier) Inspect(ctx context.Context, repository, tag string) ([]models.ManifestEntry, error) {
	ref := repository + ":" + tag
	res, err := v.runner.Run(ctx, "docker", "buildx", "imagetools", "inspect", "--raw", ref)
	if err != nil {
		return nil, fmt.Errorf("inspect manifest for %s: %w", ref, err)
	}

	var index ocispec.Index
	if err := json.Unmarshal([]byte(res.Stdout), &index); err != nil {
		return nil, fmt.Errorf("parse manifest for %s: %w", ref, err)
	}

	var entries []models.ManifestEntry
	for _, m := range index.Manifests {
		if m.Platform == nil {
			continue
		}
		platform := m.Platform.OS + "/" + m.Platform.Architecture
		if platform == "unknown/unknown" {
			continue
		}
		entries = append(entries, models.ManifestEntry{
			Platform: platform,
			Digest:   m.Digest,
		})
	}
	return entries, nil
}

// Verify fails with ErrIncompleteManifest unless every expected platform is
// present in the pushed manifest.
func (v *Verifier) Verify(ctx context.Context, repository, tag string, expected []string) error {
	entries, err := v.Inspect(ctx, repository, tag)
	if err != nil {
		return err
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Platform] = true
	}

	var missing []string
	for _, p := range expected {
		if !present[p] {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s:%s is missing %s",
			ErrIncompleteManifest, repository, tag, strings.Join(missing, ", "))
	}
	return nil
}
