package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/relkit/relkit/internal/core"
	"github.com/relkit/relkit/internal/journal"
	"github.com/relkit/relkit/internal/models"
	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:   "release <major|minor|patch> | release custom <version>",
	Short: "Cut a release: validate, bump, update artifacts, tag, push",
	Long: `Run the release pipeline against the current repository.

The repository must be on the release branch, clean, and in sync with the
remote. The version is bumped from the latest existing tag, or supplied
verbatim with 'release custom'.

Examples:
  relkit release patch             Bump the patch component
  relkit release major             Bump the major component
  relkit release custom v2.0.0-rc1 Tag an explicit version`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runRelease,
}

func runRelease(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext()

	var req core.ReleaseRequest
	switch args[0] {
	case "custom":
		if len(args) != 2 {
			exitError("release custom requires a version argument")
		}
		req.Custom = args[1]
	case string(models.BumpMajor), string(models.BumpMinor), string(models.BumpPatch):
		if len(args) != 1 {
			exitError("unexpected argument after bump kind: %s", args[1])
		}
		req.Bump = models.BumpKind(args[0])
	default:
		exitError("unknown bump kind %q (expected major, minor, patch, or custom)", args[0])
	}

	pipeline := core.NewReleasePipeline(c.Git, c.Config, c.Logger)
	record, err := pipeline.Run(ctx, req)
	if err != nil {
		c.recordRun(journal.Entry{
			Kind:   journal.KindRelease,
			Status: journal.StatusFailed,
			Detail: err.Error(),
		})
		exitError("%v", err)
	}

	c.recordRun(journal.Entry{
		Kind:            journal.KindRelease,
		Version:         record.Version.String(),
		PreviousVersion: record.PreviousVersion.String(),
		CommitSHA:       record.CommitSHA,
		Status:          journal.StatusSucceeded,
	})

	green := color.New(color.FgGreen)
	green.Printf("Released %s (was %s)\n", record.Version.String(), record.PreviousVersion.String())
	fmt.Println()
	fmt.Println(record.Changelog)
}
