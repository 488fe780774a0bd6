package puzzle

import (
	"testing"
	"time"

	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/eventloop"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type recordingHost struct {
	invalidated []core.Rect
	clicked     []*Tile
}

func (h *recordingHost) Invalidate(r core.Rect) { h.invalidated = append(h.invalidated, r) }
func (h *recordingHost) TileClicked(t *Tile) { h.clicked = append(h.clicked, t) }

func (h *recordingHost) reset() {
	h.invalidated = nil
	h.clicked = nil
}

// newTestBoard builds a solved w×h board laid out in 10×10 cells with no
// margin.
func newTestBoard(t *testing.T, w, h int) (*Board, *eventloop.Virtual, *recordingHost) {
	t.Helper()
	loop := eventloop.NewVirtual(epoch)
	host := &recordingHost{}
	anim := NewAnimator(loop, host, 0, 0)
	b, err := NewBoard(w, h, host, anim)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d): %v", w, h, err)
	}
	b.SetContainerSize(10*w, 10*h)
	b.Reset()
	return b, loop, host
}

func mustTile(t *testing.T, b *Board, x, y int) *Tile {
	t.Helper()
	tile, err := b.TileAt(x, y)
	if err != nil {
		t.Fatalf("TileAt(%d, %d): %v", x, y, err)
	}
	if tile == nil {
		t.Fatalf("TileAt(%d, %d) is empty", x, y)
	}
	return tile
}

func mustValid(t *testing.T, b *Board) {
	t.Helper()
	if err := b.Validate(); err != nil {
		t.Fatalf("board invariant broken: %v\n%s", err, b)
	}
}
