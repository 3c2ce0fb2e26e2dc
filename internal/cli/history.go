package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/relkit/relkit/internal/journal"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past release and build runs",
	Long:  `Display the locally recorded history of release and build runs, newest first.`,
	Run:   runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Limit the number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	c := initContext()

	path, err := c.Config.JournalPath()
	if err != nil {
		exitError("%v", err)
	}

	j, err := journal.Open(path)
	if err != nil {
		exitError("failed to open journal: %v", err)
	}
	defer j.Close()

	entries, err := j.List(historyLimit)
	if err != nil {
		exitError("failed to list runs: %v", err)
	}

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet")
		return
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for _, e := range entries {
		fmt.Printf("%s  %-7s %-14s ", e.Timestamp.Format("2006-01-02 15:04"), e.Kind, e.Version)
		if e.Status == journal.StatusSucceeded {
			green.Print("ok")
		} else {
			red.Printf("failed: %s", e.Detail)
		}
		fmt.Println()
	}
}
