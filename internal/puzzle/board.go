package puzzle

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vovakirdan/fifteen/internal/core"
)

// Board is the W×H grid of tiles with one empty slot.
type Board struct {
	host   Host
	anim   *Animator
	width  int
	height int
	slots  []*Tile
	empty  Slot
	next   TileID

	// layout state, see layout.go
	containerW, containerH int
	margin                 int
	layoutValid            bool
	cells                  []core.Rect
	emptyRect              core.Rect
}

// NewBoard creates an empty board. anim may be nil, in which case moves
// repaint without sliding.
func NewBoard(width, height int, host Host, anim *Animator) (*Board, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("puzzle: invalid board size %dx%d", width, height)
	}
	if host == nil {
		host = HostFuncs{}
	}
	b := &Board{
		host:   host,
		anim:   anim,
		width:  width,
		height: height,
		slots:  make([]*Tile, width*height),
	}
	b.empty = b.firstEmpty()
	return b, nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// EmptySlot returns the cached empty slot. It is (-1,-1) when the board
// has no free slot.
func (b *Board) EmptySlot() Slot { return b.empty }

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) index(x, y int) int { return y*b.width + x }

func (b *Board) rangeError(x, y int) error {
	return &OutOfRangeError{X: x, Y: y, Width: b.width, Height: b.height}
}

// TileAt returns the tile in slot (x, y), or nil for the empty slot.
func (b *Board) TileAt(x, y int) (*Tile, error) {
	if !b.inBounds(x, y) {
		return nil, b.rangeError(x, y)
	}
	return b.slots[b.index(x, y)], nil
}

// Tiles returns every tile in row-major order.
func (b *Board) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(b.slots))
	for _, t := range b.slots {
		if t != nil {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// CreateTile places a new tile in the empty slot (x, y).
func (b *Board) CreateTile(x, y int) (*Tile, error) {
	if !b.inBounds(x, y) {
		return nil, b.rangeError(x, y)
	}
	idx := b.index(x, y)
	if b.slots[idx] != nil {
		return nil, &OccupiedSlotError{X: x, Y: y}
	}
	t := &Tile{board: b, id: b.next, x: x, y: y}
	b.next++
	b.slots[idx] = t
	if b.empty == (Slot{X: x, Y: y}) {
		b.empty = b.firstEmpty()
	}
	if b.layoutValid {
		t.rect = b.cells[idx]
		if b.empty.X >= 0 {
			b.emptyRect = b.cells[b.index(b.empty.X, b.empty.Y)]
		}
	}
	t.invalidate()
	return t, nil
}

// ShiftRelative moves t by (dx, dy). With requireEmpty the target must be
// the empty slot; otherwise an occupant of the target swaps into t's slot
// without sliding.
func (b *Board) ShiftRelative(t *Tile, dx, dy int, requireEmpty bool) error {
	if t == nil || t.board != b {
		return ErrForeignTile
	}
	return b.shift(t, dx, dy, requireEmpty, t.Rect())
}

// shift performs the move and slides t from the given rectangle.
func (b *Board) shift(t *Tile, dx, dy int, requireEmpty bool, from core.Rect) error {
	tx, ty := t.x+dx, t.y+dy
	if !b.inBounds(tx, ty) {
		return b.rangeError(tx, ty)
	}
	target := b.index(tx, ty)
	other := b.slots[target]
	if other == t || (other != nil && requireEmpty) {
		return &IllegalMoveError{From: t.Slot(), To: Slot{X: tx, Y: ty}}
	}

	b.place(t, tx, ty, other)

	if other != nil {
		b.host.Invalidate(other.rect)
	}
	if b.anim != nil {
		b.anim.Start(t, from)
	} else {
		b.host.Invalidate(from.Union(t.Rect()))
	}
	return nil
}

// place moves t to (tx, ty), moving other (possibly nil) into t's old slot.
func (b *Board) place(t *Tile, tx, ty int, other *Tile) {
	source := b.index(t.x, t.y)
	target := b.index(tx, ty)
	b.slots[source] = other
	if other != nil {
		other.x, other.y = t.x, t.y
	} else {
		b.empty = t.Slot()
	}
	b.slots[target] = t
	t.x, t.y = tx, ty

	if b.layoutValid {
		t.rect = b.cells[target]
		if other != nil {
			other.rect = b.cells[source]
		} else {
			b.emptyRect = b.cells[source]
		}
	}
}

// ShiftTowardEmpty slides the tile that lies opposite d from the empty
// slot, moving it one step in direction d.
func (b *Board) ShiftTowardEmpty(d Direction) error {
	if !d.Valid() {
		return fmt.Errorf("puzzle: invalid direction %d", d)
	}
	dx, dy := d.Delta()
	sx, sy := b.empty.X-dx, b.empty.Y-dy
	t, err := b.TileAt(sx, sy)
	if err != nil {
		return err
	}
	if t == nil {
		return &IllegalMoveError{From: Slot{X: sx, Y: sy}, To: b.empty}
	}
	return b.ShiftRelative(t, dx, dy, true)
}

// MoveEmpty moves the empty slot one step in direction d, which slides
// the neighboring tile the opposite way.
func (b *Board) MoveEmpty(d Direction) error {
	return b.ShiftTowardEmpty(d.Opposite())
}

// Click slides t into the empty slot if they are neighbors. It reports
// whether a move happened.
func (b *Board) Click(t *Tile) (bool, error) {
	if t == nil || t.board != b {
		return false, ErrForeignTile
	}
	if !t.AdjacentToEmpty() {
		return false, nil
	}
	if err := b.ShiftRelative(t, b.empty.X-t.x, b.empty.Y-t.y, true); err != nil {
		return false, err
	}
	return true, nil
}

// Reset refills the board in solved order: captions 1..N-1 row by row
// with the empty slot bottom-right.
func (b *Board) Reset() {
	if b.anim != nil {
		b.anim.Clear()
	}
	b.slots = make([]*Tile, b.width*b.height)
	b.empty = b.firstEmpty()
	n := b.width * b.height
	for i := 0; i < n-1; i++ {
		t, err := b.CreateTile(i%b.width, i/b.width)
		if err != nil {
			// Slots are fresh, so creation cannot fail.
			panic(err)
		}
		t.caption = strconv.Itoa(i + 1)
	}
	b.invalidateAll()
}

// Shuffle makes n random moves of the empty slot without animation,
// never immediately undoing the previous move. It returns the moves made.
func (b *Board) Shuffle(rng *rand.Rand, n int) []Direction {
	if b.anim != nil {
		b.anim.Clear()
	}
	var moves []Direction
	last := Direction(255)
	for len(moves) < n {
		var options []Direction
		for d := Right; d <= Up; d++ {
			if last.Valid() && d == last.Opposite() {
				continue
			}
			dx, dy := d.Delta()
			nx, ny := b.empty.X+dx, b.empty.Y+dy
			if b.inBounds(nx, ny) && b.slots[b.index(nx, ny)] != nil {
				options = append(options, d)
			}
		}
		if len(options) == 0 {
			break
		}
		d := options[rng.Intn(len(options))]
		dx, dy := d.Delta()
		t := b.slots[b.index(b.empty.X+dx, b.empty.Y+dy)]
		b.place(t, b.empty.X, b.empty.Y, nil)
		moves = append(moves, d)
		last = d
	}
	b.invalidateAll()
	return moves
}

// Resize reallocates the grid, keeping tiles inside the new bounds and
// dropping the rest.
func (b *Board) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("puzzle: invalid board size %dx%d", width, height)
	}
	slots := make([]*Tile, width*height)
	for _, t := range b.slots {
		if t == nil {
			continue
		}
		if t.x < width && t.y < height {
			slots[t.y*width+t.x] = t
		} else if b.anim != nil {
			b.anim.Forget(t)
		}
	}
	b.width, b.height = width, height
	b.slots = slots
	b.empty = b.firstEmpty()
	b.InvalidateLayout()
	b.invalidateAll()
	return nil
}

// Solved reports whether captions read 1..N-1 in row-major order with the
// empty slot last.
func (b *Board) Solved() bool {
	n := len(b.slots)
	if n == 0 {
		return true
	}
	if b.slots[n-1] != nil {
		return false
	}
	for i := 0; i < n-1; i++ {
		t := b.slots[i]
		if t == nil || t.caption != strconv.Itoa(i+1) {
			return false
		}
	}
	return true
}

// Encode returns the row-major grid as bytes. The empty slot, blank
// captions, and captions that are not small numbers all encode as 0.
func (b *Board) Encode() []byte {
	grid := make([]byte, len(b.slots))
	for i, t := range b.slots {
		if t == nil {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(t.caption))
		if err != nil || v < 0 || v > 255 {
			continue
		}
		grid[i] = byte(v)
	}
	return grid
}

// Load replaces the board contents with the given row-major grid, where 0
// marks the empty slot. The grid must hold exactly one 0.
func (b *Board) Load(grid []byte) error {
	if len(grid) != b.width*b.height {
		return fmt.Errorf("puzzle: grid has %d cells, board has %d", len(grid), b.width*b.height)
	}
	zeros := 0
	for _, v := range grid {
		if v == 0 {
			zeros++
		}
	}
	if zeros != 1 {
		return fmt.Errorf("puzzle: grid must have exactly one empty slot, found %d", zeros)
	}
	if b.anim != nil {
		b.anim.Clear()
	}
	b.slots = make([]*Tile, len(grid))
	b.empty = b.firstEmpty()
	for i, v := range grid {
		if v == 0 {
			continue
		}
		t, err := b.CreateTile(i%b.width, i/b.width)
		if err != nil {
			return err
		}
		t.caption = strconv.Itoa(int(v))
	}
	b.invalidateAll()
	return nil
}

// Validate checks that exactly one slot is empty, that the cached empty
// slot matches it, and that every tile's coordinates match its slot.
func (b *Board) Validate() error {
	var empties []Slot
	for i, t := range b.slots {
		x, y := i%b.width, i/b.width
		if t == nil {
			empties = append(empties, Slot{X: x, Y: y})
			continue
		}
		if t.board != b {
			return fmt.Errorf("puzzle: tile %d at (%d,%d) belongs to another board", t.id, x, y)
		}
		if t.x != x || t.y != y {
			return fmt.Errorf("puzzle: tile %d stored at (%d,%d) but claims (%d,%d)", t.id, x, y, t.x, t.y)
		}
	}
	if len(empties) != 1 {
		return fmt.Errorf("puzzle: board has %d empty slots, expected 1", len(empties))
	}
	if empties[0] != b.empty {
		return fmt.Errorf("puzzle: cached empty slot (%d,%d) differs from actual (%d,%d)",
			b.empty.X, b.empty.Y, empties[0].X, empties[0].Y)
	}
	return nil
}

// String renders the captions as a text grid with "." for the empty slot.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			caption := "."
			if t := b.slots[b.index(x, y)]; t != nil {
				caption = t.caption
			}
			fmt.Fprintf(&sb, "%2s", caption)
		}
	}
	return sb.String()
}

func (b *Board) firstEmpty() Slot {
	for i, t := range b.slots {
		if t == nil {
			return Slot{X: i % b.width, Y: i / b.width}
		}
	}
	return Slot{X: -1, Y: -1}
}

func (b *Board) invalidateAll() {
	b.host.Invalidate(core.NewRect(0, 0, b.containerW, b.containerH))
}
