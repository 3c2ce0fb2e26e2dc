package cli

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/relkit/relkit/internal/core"
	"github.com/relkit/relkit/internal/docker"
	"github.com/relkit/relkit/internal/journal"
	"github.com/spf13/cobra"
)

var (
	buildNoLatest bool
	buildNoGitTag bool
)

var buildCmd = &cobra.Command{
	Use:   "build [<version>]",
	Short: "Build, push, and verify a multi-arch container image",
	Long: `Build and push a multi-architecture container image, then verify
that the pushed registry manifest lists every target platform.

If no version is given, one is generated as <base>-<timestamp>-<shortSHA>
from the latest release tag and the current commit.

Examples:
  relkit build                       Auto-versioned development build
  relkit build v2.0.0-rc1            Build an explicit version
  relkit build v2.0.0-rc1 --no-latest  Skip the floating 'latest' tag`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildNoLatest, "no-latest", false, "Do not tag the image as 'latest'")
	buildCmd.Flags().BoolVar(&buildNoGitTag, "no-git-tag", false, "Do not create a git tag for this build")
}

func runBuild(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext()

	if c.Config.Image.Repository == "" {
		exitError("no image repository configured (set image.repository in relkit.toml)")
	}

	req := core.BuildRequest{
		NoLatest: buildNoLatest,
		NoGitTag: buildNoGitTag,
	}
	if len(args) == 1 {
		req.Version = args[0]
	}

	coord := docker.NewCoordinator(c.Runner, c.Config.Image.Builder, c.Logger)
	verifier := docker.NewVerifier(c.Runner)
	pipeline := core.NewBuildPipeline(c.Git, coord, verifier, c.Config, c.Logger)

	report, err := pipeline.Run(ctx, req)
	if err != nil {
		c.recordRun(journal.Entry{
			Kind:    journal.KindBuild,
			Version: report.Version.String(),
			Status:  journal.StatusFailed,
			Detail:  err.Error(),
		})
		exitError("%v", err)
	}

	c.recordRun(journal.Entry{
		Kind:    journal.KindBuild,
		Version: report.Version.String(),
		Status:  journal.StatusSucceeded,
	})

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Printf("Built and verified %s\n", report.Target.Repository+":"+report.Version.String())
	green.Printf("  platforms: %s\n", strings.Join(report.Target.Platforms, ", "))
	green.Printf("  tags: %s\n", strings.Join(report.Target.Tags, ", "))

	if !buildNoGitTag && !report.TagCreated {
		yellow.Println("(git tag already existed, left unchanged)")
	}
}
