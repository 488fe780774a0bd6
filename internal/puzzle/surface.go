package puzzle

import "github.com/vovakirdan/fifteen/internal/core"

// DropResult says what a pointer release did.
type DropResult int

const (
	DropNone DropResult = iota
	DropShifted
	DropSwapped
	DropClicked
)

func (r DropResult) String() string {
	switch r {
	case DropShifted:
		return "shifted"
	case DropSwapped:
		return "swapped"
	case DropClicked:
		return "clicked"
	}
	return "none"
}

// Surface turns pointer gestures into board operations. Dragging moves a
// tile's rectangle without touching the grid; the release decides.
type Surface struct {
	board  *Board
	host   Host
	moving *Tile
	last   core.Point
}

// NewSurface binds pointer handling to a board.
func NewSurface(board *Board, host Host) *Surface {
	if host == nil {
		host = HostFuncs{}
	}
	return &Surface{board: board, host: host}
}

// Dragging returns the tile under the pointer, if any.
func (s *Surface) Dragging() *Tile { return s.moving }

// PointerDown picks the tile under the point. It reports whether one was
// picked.
func (s *Surface) PointerDown(x, y int) bool {
	s.moving = nil
	for _, t := range s.board.Tiles() {
		if t.Rect().Contains(x, y) {
			s.moving = t
			s.last = core.Point{X: x, Y: y}
			return true
		}
	}
	return false
}

// PointerMove drags the picked tile with the pointer.
func (s *Surface) PointerMove(x, y int) {
	t := s.moving
	if t == nil {
		return
	}
	prev := t.rect
	t.rect = prev.Offset(x-s.last.X, y-s.last.Y)
	s.last = core.Point{X: x, Y: y}
	s.host.Invalidate(prev.Union(t.rect))
}

// PointerUp drops the picked tile. Over the empty slot it moves there,
// over another tile the two swap, and over its own slot it counts as a
// click.
func (s *Surface) PointerUp(x, y int) (DropResult, error) {
	t := s.moving
	s.moving = nil
	if t == nil {
		return DropNone, nil
	}
	dropped := t.rect
	b := s.board
	b.InvalidateLayout()
	b.Layout()
	defer b.invalidateAll()

	slot, ok := b.SlotAt(x, y)
	if !ok {
		return DropNone, nil
	}
	occupant := b.slots[b.index(slot.X, slot.Y)]
	switch {
	case occupant == nil:
		if err := b.shift(t, slot.X-t.x, slot.Y-t.y, true, dropped); err != nil {
			return DropNone, err
		}
		return DropShifted, nil
	case occupant == t:
		s.host.TileClicked(t)
		return DropClicked, nil
	default:
		if err := b.shift(t, slot.X-t.x, slot.Y-t.y, false, dropped); err != nil {
			return DropNone, err
		}
		return DropSwapped, nil
	}
}

// Cancel abandons a drag and snaps the tile back.
func (s *Surface) Cancel() {
	if s.moving == nil {
		return
	}
	s.moving = nil
	s.board.InvalidateLayout()
	s.board.invalidateAll()
}
