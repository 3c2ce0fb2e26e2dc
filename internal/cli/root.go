// Package cli implements the command-line interface for relkit.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/relkit/relkit/internal/command"
	"github.com/relkit/relkit/internal/config"
	"github.com/relkit/relkit/internal/gitx"
	"github.com/relkit/relkit/internal/journal"
	"github.com/spf13/cobra"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config *config.Config
	Git    gitx.ClientInterface
	Runner command.Runner
	Logger *slog.Logger
}

var verbose bool

// initContext initializes config, git client, and logger
func initContext() *cmdContext {
	cfg, err := config.Load(".")
	if err != nil {
		exitError("%v", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	runner := command.NewExecRunner()

	return &cmdContext{
		Config: cfg,
		Git:    gitx.NewClient(runner, cfg.Root()),
		Runner: runner,
		Logger: logger,
	}
}

// recordRun appends a run to the journal. Journal failures never fail the
// pipeline; they are surfaced as warnings only.
func (c *cmdContext) recordRun(e journal.Entry) {
	path, err := c.Config.JournalPath()
	if err != nil {
		c.Logger.Warn("journal unavailable", "error", err)
		return
	}

	j, err := journal.Open(path)
	if err != nil {
		c.Logger.Warn("failed to open journal", "error", err)
		return
	}
	defer j.Close()

	if err := j.Record(e); err != nil {
		c.Logger.Warn("failed to record run", "error", err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "relkit",
	Short: "Release and image build automation",
	Long: `relkit automates cutting releases: it validates repository state,
bumps the version, rewrites release artifacts, generates a changelog,
publishes annotated tags, and builds, pushes, and verifies multi-arch
container images.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(historyCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
