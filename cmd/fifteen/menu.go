package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fifteen/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a board picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a board.
Leaving a board with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select board
  Tab          - Solve history
  Q            - Quit

Examples:
  fifteen menu
  fifteen menu --depth long
  fifteen menu --db ./fifteen.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDepth, "depth", "", "Shuffle depth preset: short, medium, long")
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(cfg, logger)
	solve := newSolver(cfg, store, logger)
	rt := runtimeConfig()
	preselect := configVariant(cfg).ID

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(rt, preselect)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		rt = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(historySource(store), rt.ScreenW, rt.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from history
		}

		variant := menuResult.Variant
		preselect = variant.ID

		settings, err := settingsFor(cfg, variant, solve, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Fresh shuffle for each board unless a seed was given
		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}

		goBack, err := tui.Run(settings, rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running puzzle: %v\n", err)
		}
		if !goBack {
			break
		}
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
