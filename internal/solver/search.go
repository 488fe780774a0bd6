package solver

import (
	"context"
	"fmt"
	"math"
	"sort"
)

const infinity = math.MaxInt32

// search holds the mutable IDA* state. The heuristic is kept up to date
// incrementally as the blank moves.
type search struct {
	ctx    context.Context
	width  int
	height int
	cells  []byte
	blank  int
	path   []byte
	nodes  int

	manhattan int
	// rowLC and colLC hold, per line, how many tiles must leave that line
	// for the rest to be in goal order.
	rowLC, colLC []int
	conflicts    int

	lineBuf []int
	tails   []int
}

func newSearch(ctx context.Context, grid []byte, width int) *search {
	height := len(grid) / width
	s := &search{
		ctx:     ctx,
		width:   width,
		height:  height,
		cells:   append([]byte{}, grid...),
		rowLC:   make([]int, height),
		colLC:   make([]int, width),
		lineBuf: make([]int, 0, max(width, height)),
		tails:   make([]int, 0, max(width, height)),
	}
	for i, v := range s.cells {
		if v == 0 {
			s.blank = i
			continue
		}
		s.manhattan += s.distance(v, i)
	}
	for r := 0; r < height; r++ {
		s.rowLC[r] = s.rowConflict(r)
		s.conflicts += s.rowLC[r]
	}
	for c := 0; c < width; c++ {
		s.colLC[c] = s.colConflict(c)
		s.conflicts += s.colLC[c]
	}
	return s
}

func (s *search) heuristic() int {
	return s.manhattan + 2*s.conflicts
}

func (s *search) goal(v byte) (int, int) {
	g := int(v) - 1
	return g % s.width, g / s.width
}

func (s *search) distance(v byte, pos int) int {
	gx, gy := s.goal(v)
	return abs(pos%s.width-gx) + abs(pos/s.width-gy)
}

func (s *search) rowConflict(r int) int {
	seq := s.lineBuf[:0]
	for x := 0; x < s.width; x++ {
		v := s.cells[r*s.width+x]
		if v == 0 {
			continue
		}
		if gx, gy := s.goal(v); gy == r {
			seq = append(seq, gx)
		}
	}
	return len(seq) - s.lis(seq)
}

func (s *search) colConflict(c int) int {
	seq := s.lineBuf[:0]
	for y := 0; y < s.height; y++ {
		v := s.cells[y*s.width+c]
		if v == 0 {
			continue
		}
		if gx, gy := s.goal(v); gx == c {
			seq = append(seq, gy)
		}
	}
	return len(seq) - s.lis(seq)
}

// lis returns the length of the longest increasing subsequence.
func (s *search) lis(seq []int) int {
	tails := s.tails[:0]
	for _, v := range seq {
		i := sort.SearchInts(tails, v)
		if i == len(tails) {
			tails = append(tails, v)
		} else {
			tails[i] = v
		}
	}
	return len(tails)
}

func (s *search) canMove(dir byte) bool {
	x, y := s.blank%s.width, s.blank/s.width
	switch dir {
	case moveRight:
		return x+1 < s.width
	case moveDown:
		return y+1 < s.height
	case moveLeft:
		return x > 0
	case moveUp:
		return y > 0
	}
	return false
}

// apply moves the blank one step in dir, sliding a tile the other way.
func (s *search) apply(dir byte) {
	bx, by := s.blank%s.width, s.blank/s.width
	nx, ny := bx, by
	switch dir {
	case moveRight:
		nx++
	case moveDown:
		ny++
	case moveLeft:
		nx--
	case moveUp:
		ny--
	}
	next := ny*s.width + nx
	v := s.cells[next]
	s.manhattan += s.distance(v, s.blank) - s.distance(v, next)
	s.cells[s.blank], s.cells[next] = v, 0
	s.blank = next

	if ny == by {
		s.refreshCol(nx)
		s.refreshCol(bx)
	} else {
		s.refreshRow(ny)
		s.refreshRow(by)
	}
}

func (s *search) refreshRow(r int) {
	s.conflicts -= s.rowLC[r]
	s.rowLC[r] = s.rowConflict(r)
	s.conflicts += s.rowLC[r]
}

func (s *search) refreshCol(c int) {
	s.conflicts -= s.colLC[c]
	s.colLC[c] = s.colConflict(c)
	s.conflicts += s.colLC[c]
}

// dfs explores paths whose estimated cost stays within bound. It returns
// the smallest estimate that exceeded the bound when nothing was found.
func (s *search) dfs(g, bound int, prev int) (int, bool, error) {
	h := s.heuristic()
	f := g + h
	if f > bound {
		return f, false, nil
	}
	if h == 0 {
		return f, true, nil
	}
	s.nodes++
	if s.nodes&0x3fff == 0 {
		if err := s.ctx.Err(); err != nil {
			return 0, false, fmt.Errorf("solver: search stopped after %d nodes: %w", s.nodes, err)
		}
	}

	best := infinity
	for dir := byte(0); dir < 4; dir++ {
		if prev >= 0 && dir == byte(prev+2)%4 {
			continue
		}
		if !s.canMove(dir) {
			continue
		}
		s.apply(dir)
		s.path = append(s.path, dir)
		t, found, err := s.dfs(g+1, bound, int(dir))
		if err != nil || found {
			return t, found, err
		}
		s.path = s.path[:len(s.path)-1]
		s.apply((dir + 2) % 4)
		if t < best {
			best = t
		}
	}
	return best, false, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
