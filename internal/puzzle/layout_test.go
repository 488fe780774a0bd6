package puzzle

import (
	"testing"

	"github.com/vovakirdan/fifteen/internal/core"
)

func TestLayoutPartitionsInsetArea(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		cw, ch int
		margin int
	}{
		{"exact 4x4", 4, 4, 100, 100, 6},
		{"remainders 4x4", 4, 4, 103, 101, 6},
		{"remainders 3x3", 3, 3, 80, 23, 1},
		{"wide 5x2", 5, 2, 47, 19, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBoard(tc.w, tc.h, nil, nil)
			if err != nil {
				t.Fatalf("NewBoard: %v", err)
			}
			b.SetMargin(tc.margin)
			b.SetContainerSize(tc.cw, tc.ch)
			b.Reset()

			area := core.NewRect(0, 0, tc.cw, tc.ch).Inset(tc.margin)
			if b.GridArea() != area {
				t.Fatalf("GridArea() = %+v, expected %+v", b.GridArea(), area)
			}

			var cells []core.Rect
			covered := 0
			for y := 0; y < tc.h; y++ {
				for x := 0; x < tc.w; x++ {
					r, err := b.CellRect(x, y)
					if err != nil {
						t.Fatalf("CellRect(%d, %d): %v", x, y, err)
					}
					if r.X < area.X || r.Y < area.Y || r.Right() > area.Right() || r.Bottom() > area.Bottom() {
						t.Errorf("cell (%d,%d) %+v leaves area %+v", x, y, r, area)
					}
					covered += r.W * r.H
					cells = append(cells, r)
				}
			}
			for i := range cells {
				for j := i + 1; j < len(cells); j++ {
					if cells[i].Intersects(cells[j]) {
						t.Errorf("cells %d and %d overlap: %+v %+v", i, j, cells[i], cells[j])
					}
				}
			}
			if covered != area.W*area.H {
				t.Errorf("cells cover %d cells, area has %d", covered, area.W*area.H)
			}
		})
	}
}

func TestLayoutRemainderGoesToLastRowAndColumn(t *testing.T) {
	b, err := NewBoard(4, 4, nil, nil)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	b.SetMargin(6)
	b.SetContainerSize(103, 101)

	// Inset area is 91x89: cells are 22x22, remainders 3 and 1.
	first, _ := b.CellRect(0, 0)
	if first != core.NewRect(6, 6, 22, 22) {
		t.Errorf("cell (0,0) = %+v", first)
	}
	lastCol, _ := b.CellRect(3, 0)
	if lastCol != core.NewRect(72, 6, 25, 22) {
		t.Errorf("cell (3,0) = %+v", lastCol)
	}
	lastRow, _ := b.CellRect(0, 3)
	if lastRow != core.NewRect(6, 72, 22, 23) {
		t.Errorf("cell (0,3) = %+v", lastRow)
	}
	corner, _ := b.CellRect(3, 3)
	if corner != core.NewRect(72, 72, 25, 23) {
		t.Errorf("cell (3,3) = %+v", corner)
	}
}

func TestLayoutIsLazy(t *testing.T) {
	b, _, _ := newTestBoard(t, 2, 2)
	one := mustTile(t, b, 0, 0)
	if one.Rect() != core.NewRect(0, 0, 10, 10) {
		t.Fatalf("tile rect = %+v", one.Rect())
	}

	b.SetContainerSize(40, 40)
	if b.layoutValid {
		t.Error("resize should mark the layout stale")
	}
	if one.Rect() != core.NewRect(0, 0, 20, 20) {
		t.Errorf("tile rect after resize = %+v", one.Rect())
	}
	if !b.layoutValid {
		t.Error("querying a rect should lay the board out")
	}
	if r := b.EmptyRect(); r != core.NewRect(20, 20, 20, 20) {
		t.Errorf("EmptyRect() = %+v", r)
	}
}

func TestLayoutTracksMoves(t *testing.T) {
	b, _, _ := newTestBoard(t, 2, 2)
	three := mustTile(t, b, 0, 1)

	if err := b.MoveEmpty(Left); err != nil {
		t.Fatalf("MoveEmpty(Left): %v", err)
	}
	if three.Rect() != core.NewRect(10, 10, 10, 10) {
		t.Errorf("moved tile rect = %+v", three.Rect())
	}
	if r := b.EmptyRect(); r != core.NewRect(0, 10, 10, 10) {
		t.Errorf("EmptyRect() = %+v", r)
	}
}

func TestLayoutSlotAt(t *testing.T) {
	b, _, _ := newTestBoard(t, 3, 3)

	tests := []struct {
		x, y int
		want Slot
		ok   bool
	}{
		{0, 0, Slot{X: 0, Y: 0}, true},
		{15, 5, Slot{X: 1, Y: 0}, true},
		{29, 29, Slot{X: 2, Y: 2}, true},
		{30, 5, Slot{}, false},
		{-1, 5, Slot{}, false},
	}
	for _, tc := range tests {
		got, ok := b.SlotAt(tc.x, tc.y)
		if ok != tc.ok || got != tc.want {
			t.Errorf("SlotAt(%d, %d) = (%v, %v), expected (%v, %v)", tc.x, tc.y, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLayoutDegenerateSizes(t *testing.T) {
	b, err := NewBoard(4, 4, nil, nil)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	b.SetMargin(10)
	b.SetContainerSize(5, 5)
	b.Reset()

	for _, tile := range b.Tiles() {
		if r := tile.Rect(); !r.Empty() {
			t.Errorf("tile %s rect %+v should be empty in a tiny container", tile.Caption(), r)
		}
	}

	empty, err := NewBoard(0, 0, nil, nil)
	if err != nil {
		t.Fatalf("NewBoard(0, 0): %v", err)
	}
	empty.SetContainerSize(10, 10)
	empty.Layout()
	if _, ok := empty.SlotAt(1, 1); ok {
		t.Error("a 0x0 board has no slots")
	}
}
