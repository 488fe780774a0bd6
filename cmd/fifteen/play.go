package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fifteen/internal/platform/tui"
	"github.com/vovakirdan/fifteen/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing a shuffled board. Without an argument the board size
from the config file is used.

Controls:
  Arrows/hjkl  - Slide the tile next to the empty slot
  Mouse        - Click a tile next to the gap, or drag tiles around
  S/F12        - Solve and replay the answer
  N            - New shuffle
  R            - Reset to solved order
  Ctrl+S       - Save a text screenshot
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Shuffle depth options:
  short  - 12 shuffle moves on a 4x4 board
  medium - 40 shuffle moves on a 4x4 board
  long   - 150 shuffle moves on a 4x4 board
Other sizes scale the count by their number of cells.

Examples:
  fifteen play
  fifteen play 8
  fifteen play 24 --depth long
  fifteen play --config ./my-fifteen.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDepth, "depth", "", "Shuffle depth preset: short, medium, long")
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	variant := configVariant(cfg)
	if len(args) == 1 {
		variant, err = registry.Lookup(args[0])
		if err != nil {
			return fmt.Errorf("unknown board %q; run 'fifteen list' to see available boards", args[0])
		}
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	settings, err := settingsFor(cfg, variant, newSolver(cfg, store, logger), logger)
	if err != nil {
		return err
	}

	if _, err := tui.Run(settings, runtimeConfig()); err != nil {
		return fmt.Errorf("running puzzle: %w", err)
	}
	return nil
}
