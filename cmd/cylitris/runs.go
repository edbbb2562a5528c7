package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cylitris/internal/registry"
	"github.com/vovakirdan/cylitris/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs <mode>",
	Short: "Show the run journal for a mode",
	Long: `Display the most recent runs of the given mode and totals over
every recorded run.

Examples:
  cylitris runs cylinder
  cylitris runs cylinder_unrolled --limit 25
  cylitris runs cylinder --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of recent runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete every recorded run of the mode")
}

func runRuns(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'cylitris list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs of %s.\n", title)
		return
	}

	runs, err := store.RecentRuns(gameID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'cylitris play %s' to start the journal.\n", gameID)
		return
	}

	fmt.Printf("  %-16s  %6s  %5s  %8s  %s\n", "Date", "Pieces", "Rows", "Time", "End")
	fmt.Printf("  %-16s  %6s  %5s  %8s  %s\n", "----", "------", "----", "----", "---")

	for _, r := range runs {
		fmt.Printf("  %-16s  %6d  %5d  %8s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Pieces,
			r.Rows,
			r.Duration.Round(time.Second),
			strings.ReplaceAll(r.EndReason, "_", " "),
		)
	}

	totals, err := store.Totals(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving totals: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Printf("Runs: %d  Pieces: %d  Rows: %d  Best: %d  Played: %s\n",
		totals.Runs, totals.Pieces, totals.Rows, totals.BestRows, totals.PlayTime)
	if !totals.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", totals.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}
