package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fifteen/internal/puzzle"
	"github.com/vovakirdan/fifteen/internal/solver"
)

var flagSolveWidth int

var solveCmd = &cobra.Command{
	Use:   "solve <tiles>",
	Short: "Solve a position and print the moves",
	Long: `Solve a position given as row-major tile numbers with 0 for the
empty slot. Tiles may be separated by commas or spaces. The width is
inferred for square boards; pass --width for the others.

The answer lists where the EMPTY slot moves: R(ight), D(own), L(eft), U(p).
Solutions are cached in the database when caching is enabled.

Examples:
  fifteen solve 1,2,3,4,5,6,7,0,8
  fifteen solve 1 2 3 4 5 6 7 8 9 10 11 12 13 14 0 15
  fifteen solve --width 3 1,2,3,4,0,5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagSolveWidth, "width", 0, "Board width (default: square root of the tile count)")
}

func runSolve(_ *cobra.Command, args []string) error {
	grid, err := parseTiles(strings.Join(args, " "))
	if err != nil {
		return err
	}
	width := flagSolveWidth
	if width == 0 {
		if width, err = squareWidth(len(grid)); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)
	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SolveTimeout())
	defer cancel()

	start := time.Now()
	codes, err := newSolver(cfg, store, logger).Solve(ctx, grid, width)
	took := time.Since(start)
	switch {
	case errors.Is(err, solver.ErrUnsolvable):
		return errors.New("this position cannot be solved")
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("no solution found within %s", cfg.SolveTimeout())
	case err != nil:
		return err
	}

	seq, err := puzzle.DecodeMoves(codes)
	if err != nil {
		return err
	}
	if len(seq) == 0 {
		fmt.Println("Already solved.")
		return nil
	}
	fmt.Printf("%d moves in %s\n", len(seq), took.Round(time.Millisecond))
	fmt.Println(puzzle.FormatMoves(seq))
	return nil
}

// parseTiles reads tile numbers separated by commas or whitespace.
func parseTiles(s string) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	grid := make([]byte, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > 255 {
			return nil, fmt.Errorf("invalid tile %q", f)
		}
		grid = append(grid, byte(n))
	}
	if len(grid) == 0 {
		return nil, errors.New("no tiles given")
	}
	return grid, nil
}

// squareWidth returns the side of a square board with n cells.
func squareWidth(n int) (int, error) {
	side := int(math.Round(math.Sqrt(float64(n))))
	if side*side != n {
		return 0, fmt.Errorf("%d tiles do not form a square board; pass --width", n)
	}
	return side, nil
}
