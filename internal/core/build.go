package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/relkit/relkit/internal/config"
	"github.com/relkit/relkit/internal/docker"
	"github.com/relkit/relkit/internal/gitx"
	"github.com/relkit/relkit/internal/models"
)

// Stage is the build pipeline's progress marker.
type Stage string

// Build pipeline stages, in order. A failing step leaves the report at the
// last completed stage.
const (
	StageInit         Stage = "init"
	StageBuilderReady Stage = "builder-ready"
	StageBuilt        Stage = "built"
	StageVerified     Stage = "verified"
	StageTagged       Stage = "tagged"
	StageDone         Stage = "done"
)

// BuildRequest configures one build pipeline run.
type BuildRequest struct {
	// Version is the explicit image version; empty means auto-generate
	// <base>-<timestamp>-<shortSHA>.
	Version string
	// NoLatest omits the floating "latest" tag.
	NoLatest bool
	// NoGitTag skips tag publishing entirely.
	NoGitTag bool
}

// BuildReport summarizes a build pipeline run.
type BuildReport struct {
	Version    models.Version
	Target     models.BuildTarget
	Stage      Stage
	TagCreated bool
}

// BuildPipeline runs the build-and-publish-an-image flow:
// resolve version -> build+push multi-arch image -> verify manifest ->
// optional git tag. Any failure aborts the remaining steps; an already-pushed
// image is never rolled back.
type BuildPipeline struct {
	git    gitx.ClientInterface
	coord  *docker.Coordinator
	verify *docker.Verifier
	cfg    *config.Config
	logger *slog.Logger
}

// NewBuildPipeline creates a BuildPipeline.
func NewBuildPipeline(git gitx.ClientInterface, coord *docker.Coordinator, verify *docker.Verifier, cfg *config.Config, logger *slog.Logger) *BuildPipeline {
	return &BuildPipeline{git: git, coord: coord, verify: verify, cfg: cfg, logger: logger}
}

// Run executes the build flow. The returned report is valid even on error
// and records how far the pipeline got.
func (p *BuildPipeline) Run(ctx context.Context, req BuildRequest) (*BuildReport, error) {
	report := &BuildReport{Stage: StageInit}
	resolver := NewResolver(p.git)

	var version models.Version
	var err error
	if req.Version != "" {
		version, err = models.CustomVersion(req.Version)
	} else {
		version, err = resolver.Auto(ctx)
	}
	if err != nil {
		return report, err
	}
	report.Version = version

	tags := []string{version.String()}
	if !req.NoLatest {
		tags = append(tags, "latest")
	}
	report.Target = models.BuildTarget{
		Repository: p.cfg.Image.Repository,
		Platforms:  p.cfg.Image.Platforms,
		Tags:       tags,
	}

	if err := p.coord.EnsureBuilder(ctx); err != nil {
		return report, err
	}
	report.Stage = StageBuilderReady

	if err := p.coord.BuildAndPush(ctx, report.Target); err != nil {
		return report, err
	}
	report.Stage = StageBuilt

	if err := p.verify.Verify(ctx, report.Target.Repository, version.String(), report.Target.Platforms); err != nil {
		return report, err
	}
	report.Stage = StageVerified
	p.logger.Info("manifest verified", "image", report.Target.Repository+":"+version.String())

	if !req.NoGitTag {
		publisher := NewPublisher(p.git, p.cfg.Remote, p.cfg.ReleaseBranch, p.logger)
		created, err := publisher.Publish(ctx, version, fmt.Sprintf("Release %s", version.String()), SkipExisting)
		if err != nil {
			return report, err
		}
		report.TagCreated = created
		report.Stage = StageTagged
	}

	report.Stage = StageDone
	return report, nil
}
