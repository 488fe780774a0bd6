package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fifteen/internal/platform/tui"
)

var (
	flagSolvesLimit int
	flagSolvesTUI   bool
	flagSolvesClear bool
)

var solvesCmd = &cobra.Command{
	Use:   "solves",
	Short: "Show the solve history",
	Long: `Display the most recent solver runs and overall statistics.

Examples:
  fifteen solves
  fifteen solves --limit 50
  fifteen solves --tui
  fifteen solves --clear-cache`,
	Args: cobra.NoArgs,
	RunE: runSolves,
}

func init() {
	solvesCmd.Flags().IntVar(&flagSolvesLimit, "limit", 20, "Number of entries to show")
	solvesCmd.Flags().BoolVar(&flagSolvesTUI, "tui", false, "Browse the history interactively")
	solvesCmd.Flags().BoolVar(&flagSolvesClear, "clear-cache", false, "Forget every cached solution")
}

func runSolves(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(cfg, newLogger(os.Stderr))
	if store == nil {
		return errors.New("solve history is unavailable without a database")
	}
	defer store.Close()

	if flagSolvesClear {
		if err := store.ClearSolutions(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Println("Solution cache cleared.")
		return nil
	}

	if flagSolvesTUI {
		rt := runtimeConfig()
		_, err := tui.RunHistory(store, rt.ScreenW, rt.ScreenH)
		return err
	}

	records, err := store.RecentSolves(flagSolvesLimit)
	if err != nil {
		return fmt.Errorf("retrieving solves: %w", err)
	}

	fmt.Println("Solve History")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Println("Run 'fifteen play' and press s, or 'fifteen solve <tiles>'.")
		return nil
	}

	// Print header
	fmt.Printf("  %-5s  %-5s  %-5s  %-9s  %-6s  %-10s  %s\n", "#", "Board", "Moves", "Time", "Source", "Outcome", "Date")
	fmt.Printf("  %-5s  %-5s  %-5s  %-9s  %-6s  %-10s  %s\n", "-", "-----", "-----", "----", "------", "-------", "----")

	for _, r := range records {
		source := "search"
		if r.Cached {
			source = "cache"
		}
		rows := 0
		if r.Width > 0 {
			rows = len(r.Grid) / r.Width
		}
		fmt.Printf("  %-5d  %-5s  %-5d  %-9s  %-6s  %-10s  %s\n",
			r.ID, fmt.Sprintf("%dx%d", r.Width, rows), r.Moves, r.Duration, source, r.Outcome,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Total: %d  Solved: %d  Cache hits: %d  Cached positions: %d  Longest: %d moves\n",
			stats.Total, stats.Solved, stats.CacheHits, stats.Solutions, stats.LongestRun)
	}
	return nil
}
