package puzzle

import "github.com/vovakirdan/fifteen/internal/core"

// DefaultMargin is the gap between the container edge and the grid.
const DefaultMargin = 6

// SetContainerSize records the host area the grid is laid out in.
func (b *Board) SetContainerSize(w, h int) {
	if w == b.containerW && h == b.containerH {
		return
	}
	b.containerW, b.containerH = w, h
	b.InvalidateLayout()
	b.invalidateAll()
}

// ContainerSize returns the host area.
func (b *Board) ContainerSize() (int, int) {
	return b.containerW, b.containerH
}

// SetMargin changes the inset around the grid.
func (b *Board) SetMargin(m int) {
	if m < 0 {
		m = 0
	}
	if m == b.margin {
		return
	}
	b.margin = m
	b.InvalidateLayout()
	b.invalidateAll()
}

func (b *Board) Margin() int { return b.margin }

// InvalidateLayout marks the tile rectangles stale. The next query
// recomputes them.
func (b *Board) InvalidateLayout() {
	b.layoutValid = false
}

// Layout splits the inset container into W×H cells. Integer remainders
// go to the last column and the last row so the cells exactly cover the
// inset area. Every tile's rectangle is snapped to its cell.
func (b *Board) Layout() {
	if b.layoutValid {
		return
	}
	b.layoutValid = true
	b.cells = make([]core.Rect, b.width*b.height)
	b.emptyRect = core.Rect{}
	if b.width == 0 || b.height == 0 {
		return
	}

	area := b.GridArea()
	cw, ch := area.W/b.width, area.H/b.height
	extraW, extraH := area.W-cw*b.width, area.H-ch*b.height

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			r := core.NewRect(area.X+x*cw, area.Y+y*ch, cw, ch)
			if x == b.width-1 {
				r.W += extraW
			}
			if y == b.height-1 {
				r.H += extraH
			}
			idx := b.index(x, y)
			b.cells[idx] = r
			if t := b.slots[idx]; t != nil {
				t.rect = r
			} else if b.empty == (Slot{X: x, Y: y}) {
				b.emptyRect = r
			}
		}
	}
}

// GridArea is the container inset by the margin.
func (b *Board) GridArea() core.Rect {
	return core.NewRect(0, 0, b.containerW, b.containerH).Inset(b.margin)
}

// CellRect returns the resting rectangle of slot (x, y).
func (b *Board) CellRect(x, y int) (core.Rect, error) {
	if !b.inBounds(x, y) {
		return core.Rect{}, b.rangeError(x, y)
	}
	b.Layout()
	return b.cells[b.index(x, y)], nil
}

// EmptyRect returns the rectangle of the empty slot.
func (b *Board) EmptyRect() core.Rect {
	b.Layout()
	return b.emptyRect
}

// SlotAt returns the slot whose cell contains the point.
func (b *Board) SlotAt(px, py int) (Slot, bool) {
	b.Layout()
	for i, r := range b.cells {
		if r.Contains(px, py) {
			return Slot{X: i % b.width, Y: i / b.width}, true
		}
	}
	return Slot{}, false
}
