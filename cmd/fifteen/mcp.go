package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fifteen/internal/platform/mcp"
	"github.com/vovakirdan/fifteen/internal/registry"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [board]",
	Short: "Serve a board to MCP clients on stdio",
	Long: `Run a headless board and expose it as Model Context Protocol tools
on stdin/stdout. Logs go to stderr.

Tools: board_state, move, bulk_move, shuffle, reset, load, new_game,
list_variants, hint, solve, cancel.

Examples:
  fifteen mcp
  fifteen mcp 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCP,
}

func runMCP(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		v, err := registry.Lookup(args[0])
		if err != nil {
			return err
		}
		cfg.Board.Width, cfg.Board.Height = v.Width, v.Height
	}

	logger := newLogger(os.Stderr)
	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	opts, err := cfg.Options(flagSeed)
	if err != nil {
		return err
	}

	srv, err := mcp.NewServer(opts, newSolver(cfg, store, logger), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server: %w", err)
	}
	return nil
}
