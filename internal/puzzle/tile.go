package puzzle

import "github.com/vovakirdan/fifteen/internal/core"

// Slot is a (column, row) grid coordinate.
type Slot = core.Point

// TileID identifies a tile for the lifetime of its board.
type TileID int

// Tile is a single numbered occupant of a board slot.
// Tiles are created and owned by a Board.
type Tile struct {
	board   *Board
	id      TileID
	x, y    int
	caption string
	rect    core.Rect
}

func (t *Tile) ID() TileID { return t.id }
func (t *Tile) Board() *Board { return t.board }
func (t *Tile) X() int { return t.x }
func (t *Tile) Y() int { return t.y }
func (t *Tile) Slot() Slot { return Slot{X: t.x, Y: t.y} }
func (t *Tile) Caption() string { return t.caption }

// SetCaption changes the caption and repaints the tile.
func (t *Tile) SetCaption(caption string) {
	if caption == t.caption {
		return
	}
	t.caption = caption
	t.invalidate()
}

// Rect returns the tile's current rectangle, laying out the board first if
// the layout is stale. While a tile is dragged this is the drag position.
func (t *Tile) Rect() core.Rect {
	t.board.Layout()
	return t.rect
}

// ShiftRelative moves the tile by (dx, dy) into the empty slot.
func (t *Tile) ShiftRelative(dx, dy int) error {
	return t.board.ShiftRelative(t, dx, dy, true)
}

// AdjacentToEmpty reports whether the tile shares an edge with the empty slot.
func (t *Tile) AdjacentToEmpty() bool {
	e := t.board.empty
	return core.Abs(e.X-t.x)+core.Abs(e.Y-t.y) == 1
}

func (t *Tile) invalidate() {
	t.board.host.Invalidate(t.Rect())
}
