// Package solver finds short move sequences for sliding-tile puzzles.
//
// Grids are row-major with 0 for the empty slot. A solution is a list of
// move codes, each naming where the empty slot goes:
// 0 right, 1 down, 2 left, 3 up.
package solver

import (
	"context"
	"errors"
	"fmt"
)

// MaxMoves bounds solution length. Every 4x4 position is solvable in 80.
const MaxMoves = 80

const (
	moveRight byte = iota
	moveDown
	moveLeft
	moveUp
)

var (
	ErrUnsolvable  = errors.New("solver: position is unsolvable")
	ErrTooLong     = errors.New("solver: no solution within move limit")
	ErrInvalidGrid = errors.New("solver: invalid grid")
)

// Solver is anything that can solve a grid.
type Solver interface {
	Solve(ctx context.Context, grid []byte, width int) ([]byte, error)
}

// IDAStar searches with iterative deepening A* using Manhattan distance
// plus linear conflicts. Its solutions are optimal.
type IDAStar struct {
	// MaxMoves caps the search depth. Zero means MaxMoves.
	MaxMoves int
}

// New returns a solver with the default move limit.
func New() *IDAStar {
	return &IDAStar{MaxMoves: MaxMoves}
}

// Solve returns an optimal move sequence for grid. It fails with
// ErrInvalidGrid, ErrUnsolvable, ErrTooLong, or the context's error.
func (s *IDAStar) Solve(ctx context.Context, grid []byte, width int) ([]byte, error) {
	if err := Validate(grid, width); err != nil {
		return nil, err
	}
	if !Solvable(grid, width) {
		return nil, ErrUnsolvable
	}
	limit := s.MaxMoves
	if limit <= 0 {
		limit = MaxMoves
	}

	st := newSearch(ctx, grid, width)
	bound := st.heuristic()
	for {
		if bound > limit {
			return nil, ErrTooLong
		}
		next, found, err := st.dfs(0, bound, -1)
		if err != nil {
			return nil, err
		}
		if found {
			return append([]byte{}, st.path...), nil
		}
		if next == infinity {
			return nil, ErrTooLong
		}
		bound = next
	}
}

// Validate checks that grid is a width-wide permutation of 0..n-1.
func Validate(grid []byte, width int) error {
	n := len(grid)
	if width <= 0 || n == 0 || n%width != 0 {
		return fmt.Errorf("%w: %d cells do not fill rows of %d", ErrInvalidGrid, n, width)
	}
	if n > 256 {
		return fmt.Errorf("%w: %d cells is too many", ErrInvalidGrid, n)
	}
	seen := make([]bool, n)
	for i, v := range grid {
		if int(v) >= n {
			return fmt.Errorf("%w: value %d at %d out of range", ErrInvalidGrid, v, i)
		}
		if seen[v] {
			return fmt.Errorf("%w: value %d repeated", ErrInvalidGrid, v)
		}
		seen[v] = true
	}
	return nil
}

// Solvable reports whether grid can reach the goal, where the goal is
// 1..n-1 in order followed by the empty slot.
func Solvable(grid []byte, width int) bool {
	height := len(grid) / width
	inversions := 0
	blankRow := 0
	for i, a := range grid {
		if a == 0 {
			blankRow = i / width
			continue
		}
		for _, b := range grid[i+1:] {
			if b != 0 && b < a {
				inversions++
			}
		}
	}
	if width == 1 || height == 1 {
		// Tiles on a single line can never pass each other.
		return inversions == 0
	}
	if width%2 == 1 {
		return inversions%2 == 0
	}
	rowFromBottom := height - blankRow
	return (inversions+rowFromBottom)%2 == 1
}

// Apply plays moves on a copy of grid and returns the result.
func Apply(grid []byte, width int, moves []byte) ([]byte, error) {
	if err := Validate(grid, width); err != nil {
		return nil, err
	}
	out := append([]byte{}, grid...)
	height := len(out) / width
	blank := 0
	for i, v := range out {
		if v == 0 {
			blank = i
		}
	}
	for i, m := range moves {
		x, y := blank%width, blank/width
		switch m {
		case moveRight:
			x++
		case moveDown:
			y++
		case moveLeft:
			x--
		case moveUp:
			y--
		default:
			return nil, fmt.Errorf("solver: bad move code %d at %d", m, i)
		}
		if x < 0 || x >= width || y < 0 || y >= height {
			return nil, fmt.Errorf("solver: move %d leaves the board", i)
		}
		next := y*width + x
		out[blank], out[next] = out[next], 0
		blank = next
	}
	return out, nil
}

// Goal reports whether grid is solved.
func Goal(grid []byte) bool {
	n := len(grid)
	for i := 0; i < n-1; i++ {
		if int(grid[i]) != i+1 {
			return false
		}
	}
	return n == 0 || grid[n-1] == 0
}
