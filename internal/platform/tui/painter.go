package tui

import (
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/puzzle"
)

// screenPainter draws tiles as boxed, captioned blocks of cells.
type screenPainter struct {
	screen *core.Screen
}

func (p screenPainter) PaintTile(t *puzzle.Tile, rect core.Rect, style puzzle.Style) {
	p.block(t.Caption(), rect, style, style.Border)
}

// PaintTransition draws a sliding tile with its border in the caption
// color so motion stands out.
func (p screenPainter) PaintTransition(t *puzzle.Tile, _ core.Rect, rect core.Rect, ratio float64, style puzzle.Style) {
	border := style.Caption
	if ratio >= 1 {
		border = style.Border
	}
	p.block(t.Caption(), rect, style, border)
}

func (p screenPainter) block(caption string, rect core.Rect, style puzzle.Style, border core.Color) {
	if rect.Empty() {
		return
	}
	p.screen.FillRect(rect, core.Cell{Rune: ' ', Fg: style.Caption, Bg: style.Tile})
	if rect.W >= 3 && rect.H >= 3 {
		p.screen.DrawBox(rect, border, style.Tile)
	}
	cx, cy := rect.Center()
	x := cx - runewidth.StringWidth(caption)/2
	p.screen.DrawText(x, cy, caption, style.Caption, style.Tile)
}

// termHost collects the areas the board invalidates between repaints.
type termHost struct {
	dirty core.Rect
}

func (h *termHost) Invalidate(r core.Rect) {
	if r.Empty() {
		return
	}
	if h.dirty.Empty() {
		h.dirty = r
		return
	}
	h.dirty = h.dirty.Union(r)
}

func (h *termHost) TileClicked(*puzzle.Tile) {}

// take returns the accumulated area and resets it.
func (h *termHost) take() core.Rect {
	r := h.dirty
	h.dirty = core.Rect{}
	return r
}
