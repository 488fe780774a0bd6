package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"single cell overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
	}{
		{"side by side", NewRect(0, 0, 5, 3), NewRect(5, 0, 5, 3), NewRect(0, 0, 10, 3)},
		{"stacked", NewRect(2, 4, 6, 3), NewRect(2, 1, 6, 3), NewRect(2, 1, 6, 6)},
		{"same rect", NewRect(1, 1, 4, 4), NewRect(1, 1, 4, 4), NewRect(1, 1, 4, 4)},
		{"disjoint diagonal", NewRect(0, 0, 2, 2), NewRect(8, 6, 2, 2), NewRect(0, 0, 10, 8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Union(tc.b); got != tc.expected {
				t.Errorf("Union() = %+v, expected %+v", got, tc.expected)
			}
			if got := tc.b.Union(tc.a); got != tc.expected {
				t.Errorf("Union() (reversed) = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestRectLerp(t *testing.T) {
	start := NewRect(0, 10, 8, 4)
	end := NewRect(16, 0, 8, 6)

	if got := start.Lerp(end, 0); got != start {
		t.Errorf("Lerp(0) = %+v, expected start %+v", got, start)
	}
	if got := start.Lerp(end, 1); got != end {
		t.Errorf("Lerp(1) = %+v, expected end %+v", got, end)
	}

	half := start.Lerp(end, 0.5)
	expected := NewRect(8, 5, 8, 5)
	if half != expected {
		t.Errorf("Lerp(0.5) = %+v, expected %+v", half, expected)
	}

	// Edges truncate toward zero independently
	quarter := start.Lerp(end, 0.25)
	if quarter.X != 4 || quarter.Y != 7 || quarter.H != 4 {
		t.Errorf("Lerp(0.25) = %+v, expected X=4 Y=7 H=4", quarter)
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 20, 10)

	if got := r.Inset(2); got != NewRect(2, 2, 16, 6) {
		t.Errorf("Inset(2) = %+v", got)
	}
	if got := r.Inset(6); got != NewRect(6, 6, 8, 0) {
		t.Errorf("Inset(6) = %+v, expected height clamped to 0", got)
	}
	if got := r.Inset(-1); got != NewRect(-1, -1, 22, 12) {
		t.Errorf("Inset(-1) = %+v", got)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
	if got := r.Offset(-5, 2); got != NewRect(0, 12, 20, 15) {
		t.Errorf("Offset() = %+v", got)
	}
	if !NewRect(3, 3, 0, 4).Empty() {
		t.Error("zero-width rect should be empty")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(1.7, 0, 1); got != 1 {
		t.Errorf("ClampF(1.7, 0, 1) = %f, expected 1", got)
	}
}

func TestAbsMinMax(t *testing.T) {
	if Abs(-5) != 5 || Abs(5) != 5 {
		t.Error("Abs should drop the sign")
	}
	if Min(10, 5) != 5 || Max(5, 10) != 10 {
		t.Error("Min/Max returned the wrong operand")
	}
}
