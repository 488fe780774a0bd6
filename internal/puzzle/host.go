package puzzle

import (
	"context"
	"time"

	"github.com/vovakirdan/fifteen/internal/core"
)

// Loop is the single-threaded event loop every board mutation runs on.
// Callbacks passed to AfterFunc and the done half of Go are always invoked
// on the loop, never concurrently with each other.
type Loop interface {
	// Now returns the loop's clock.
	Now() time.Time
	// AfterFunc schedules f once after d. The returned stop function
	// prevents f from running if it has not run yet.
	AfterFunc(d time.Duration, f func()) (stop func())
	// Go runs work off the loop and then done on the loop.
	Go(work func(), done func())
}

// Host receives the board's outbound notifications.
type Host interface {
	// Invalidate asks the host to repaint the given area.
	Invalidate(r core.Rect)
	// TileClicked reports a pointer press and release on the same tile.
	TileClicked(t *Tile)
}

// HostFuncs adapts plain functions to Host. Nil fields are ignored.
type HostFuncs struct {
	InvalidateFunc  func(r core.Rect)
	TileClickedFunc func(t *Tile)
}

func (h HostFuncs) Invalidate(r core.Rect) {
	if h.InvalidateFunc != nil {
		h.InvalidateFunc(r)
	}
}

func (h HostFuncs) TileClicked(t *Tile) {
	if h.TileClickedFunc != nil {
		h.TileClickedFunc(t)
	}
}

// Style carries the colors a painter uses for tiles.
type Style struct {
	Background core.Color
	Tile       core.Color
	Caption    core.Color
	Border     core.Color
}

// Painter draws tiles. It is called once per tile per repaint.
type Painter interface {
	// PaintTile draws a tile at rest (or being dragged) inside rect.
	PaintTile(t *Tile, rect core.Rect, style Style)
	// PaintTransition draws a tile sliding from "from"; rect is the
	// interpolated position at the given completion ratio.
	PaintTransition(t *Tile, from, rect core.Rect, ratio float64, style Style)
}

// Solver computes a move sequence for a row-major grid where 0 marks the
// empty slot. Each returned code is a Direction for the empty slot.
type Solver interface {
	Solve(ctx context.Context, grid []byte, width int) ([]byte, error)
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(ctx context.Context, grid []byte, width int) ([]byte, error)

func (f SolverFunc) Solve(ctx context.Context, grid []byte, width int) ([]byte, error) {
	return f(ctx, grid, width)
}
