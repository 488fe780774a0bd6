// fifteen is a sliding-tile puzzle for the terminal.
//
// Usage:
//
//	fifteen list               - List available boards
//	fifteen play [board]       - Play a shuffled board
//	fifteen menu               - Pick boards interactively
//	fifteen solve <tiles>      - Solve a position and print the moves
//	fifteen solves             - Show the solve history
//	fifteen serve              - Start SSH server for remote play
//	fifteen mcp                - Serve a board to MCP clients on stdio
//
// Global flags:
//
//	--config <path>   - Custom config YAML
//	--seed <value>    - Set RNG seed for reproducible shuffles
//	--db <path>       - Set database path (default: ~/.fifteen/fifteen.db)
//	--debug           - Verbose logging
//	--log-file <path> - Where the TUI writes its log
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fifteen/internal/config"
	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/platform/tui"
	"github.com/vovakirdan/fifteen/internal/puzzle"
	"github.com/vovakirdan/fifteen/internal/registry"
	"github.com/vovakirdan/fifteen/internal/solver"
	"github.com/vovakirdan/fifteen/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagSeed       int64
	flagDBPath     string
	flagDebug      bool
	flagLogFile    string
	flagDepth string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fifteen",
	Short: "Fifteen - the sliding-tile puzzle in your terminal",
	Long: `Fifteen is the classic sliding-tile puzzle for the terminal.
Slide tiles with the arrow keys or the mouse until they read 1, 2, 3, ...
with the empty slot in the bottom-right corner. Press s to let the solver
finish the board for you.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker
  solve    - Solve a position from the command line
  solves   - View the solve history
  serve    - Start SSH server for remote play
  mcp      - Serve a board to MCP clients on stdio

Examples:
  fifteen list
  fifteen play
  fifteen play 8 --depth short
  fifteen solve 1,2,3,4,5,6,7,0,8
  fifteen serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to solutions database (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for interactive commands (default: discard)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(solvesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "fifteen",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// tuiLogger returns a logger for commands that own the terminal. Without
// --log-file it discards everything.
func tuiLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return newLogger(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f), func() { _ = f.Close() }, nil
}

// loadConfig reads the config file and applies the command-line overrides.
func loadConfig() (config.FifteenConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDepth != "" {
		preset, err := config.ParseShuffleDepth(flagDepth)
		if err != nil {
			return cfg, err
		}
		config.ApplyShuffleDepth(&cfg, preset)
	}
	if flagDBPath != "" {
		cfg.Solver.Database = flagDBPath
	}
	return cfg, nil
}

// openStore opens the database, or returns nil with a warning so the
// puzzle still works without it.
func openStore(cfg config.FifteenConfig, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Solver.Database)
	if err != nil {
		logger.Warn("could not open solutions database", "path", cfg.Solver.Database, "err", err)
		return nil
	}
	return store
}

// historySource hides a nil store behind a nil interface.
func historySource(store *storage.Store) tui.HistorySource {
	if store == nil {
		return nil
	}
	return store
}

// newSolver builds the configured solver, backed by the cache when one is
// available.
func newSolver(cfg config.FifteenConfig, store *storage.Store, logger *log.Logger) puzzle.Solver {
	var s solver.Solver = &solver.IDAStar{MaxMoves: cfg.Solver.MaxMoves}
	if cfg.Solver.Cache && store != nil {
		s = solver.NewCached(s, store, logger)
	}
	return s
}

// settingsFor builds the puzzle settings for one board variant.
func settingsFor(cfg config.FifteenConfig, v registry.Variant, s puzzle.Solver, logger *log.Logger) (tui.Settings, error) {
	cfg.Board.Width, cfg.Board.Height = v.Width, v.Height
	opts, err := cfg.Options(flagSeed)
	if err != nil {
		return tui.Settings{}, err
	}
	return tui.Settings{
		Title:   v.Title,
		Options: opts,
		Solver:  s,
		Logger:  logger,
		Shuffle: true,
	}, nil
}

// configVariant describes the board size named by the config file.
func configVariant(cfg config.FifteenConfig) registry.Variant {
	for _, v := range registry.List() {
		if v.Width == cfg.Board.Width && v.Height == cfg.Board.Height {
			return v
		}
	}
	return registry.Variant{
		ID:     "custom",
		Title:  fmt.Sprintf("%dx%d puzzle", cfg.Board.Width, cfg.Board.Height),
		Width:  cfg.Board.Width,
		Height: cfg.Board.Height,
	}
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}
