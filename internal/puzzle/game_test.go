package puzzle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/eventloop"
)

type paintCall struct {
	caption    string
	rect       core.Rect
	transition bool
}

type recordingPainter struct {
	calls []paintCall
}

func (p *recordingPainter) PaintTile(t *Tile, rect core.Rect, _ Style) {
	p.calls = append(p.calls, paintCall{caption: t.Caption(), rect: rect})
}

func (p *recordingPainter) PaintTransition(t *Tile, _, rect core.Rect, _ float64, _ Style) {
	p.calls = append(p.calls, paintCall{caption: t.Caption(), rect: rect, transition: true})
}

type stubSolver struct {
	codes []byte
	err   error
	calls int
	grid  []byte
}

func (s *stubSolver) Solve(_ context.Context, grid []byte, _ int) ([]byte, error) {
	s.calls++
	s.grid = append([]byte(nil), grid...)
	return s.codes, s.err
}

func newTestGame(t *testing.T, solver Solver) (*Game, *eventloop.Virtual, *recordingHost) {
	t.Helper()
	loop := eventloop.NewVirtual(epoch)
	host := &recordingHost{}
	opts := DefaultOptions()
	opts.Margin = 0
	opts.Seed = 1
	g, err := NewGame(loop, host, solver, opts, nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.Resize(40, 40)
	return g, loop, host
}

func TestGameArrowKeys(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	b := g.Board()

	if err := g.HandleAction(core.ActionDown); err != nil {
		t.Fatalf("ActionDown: %v", err)
	}
	if e := b.EmptySlot(); e != (Slot{X: 3, Y: 2}) {
		t.Errorf("Down should pull the tile above into the empty slot, empty at %v", e)
	}

	// Against the edge the key does nothing.
	if err := g.HandleAction(core.ActionLeft); err != nil {
		t.Errorf("ActionLeft at the edge = %v, expected no error", err)
	}
	if g.Status().Moves != 1 {
		t.Errorf("Moves = %d, expected 1", g.Status().Moves)
	}

	if err := g.Move(Left); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Move(Left) at the edge = %v, expected ErrOutOfRange", err)
	}
}

func TestGameSolveAndAutoplay(t *testing.T) {
	solver := &stubSolver{}
	g, loop, _ := newTestGame(t, solver)
	b := g.Board()

	// Two moves away from solved: empty went Left, then Up.
	if err := b.MoveEmpty(Left); err != nil {
		t.Fatal(err)
	}
	if err := b.MoveEmpty(Up); err != nil {
		t.Fatal(err)
	}
	solver.codes = EncodeMoves([]Direction{Down, Right})
	want := b.Encode()

	if err := g.RequestSolve(); err != nil {
		t.Fatalf("RequestSolve: %v", err)
	}
	if !g.Busy() {
		t.Fatal("game should be busy until the solver answers")
	}
	if string(solver.grid) != string(want) {
		t.Errorf("solver saw %v, expected %v", solver.grid, want)
	}
	if err := g.HandleAction(core.ActionUp); !errors.Is(err, ErrBusy) {
		t.Errorf("input while busy = %v, expected ErrBusy", err)
	}
	if err := g.HandlePointer(core.PointerEvent{Kind: core.PointerDown, X: 1, Y: 1}); !errors.Is(err, ErrBusy) {
		t.Errorf("pointer while busy = %v, expected ErrBusy", err)
	}
	if err := g.RequestSolve(); !errors.Is(err, ErrBusy) {
		t.Errorf("second solve = %v, expected ErrBusy", err)
	}

	loop.Flush()
	if g.Busy() {
		t.Error("answer should re-enable interaction")
	}
	if !g.Autoplay().Playing() {
		t.Fatal("a solution should start autoplay")
	}
	if e := b.EmptySlot(); e != (Slot{X: 2, Y: 3}) {
		t.Errorf("first autoplay move missing, empty at %v", e)
	}
	if st := g.Status(); st.Moves != 1 || st.Message != "autoplay: 2 moves" {
		t.Errorf("after first replayed move: moves=%d message=%q", st.Moves, st.Message)
	}

	loop.Advance(DefaultAutoplayInterval)
	if !b.Solved() {
		t.Errorf("board should be solved after autoplay:\n%s", b)
	}
	if st := g.Status(); st.Moves != 2 || st.Message != "solved in 2 moves" {
		t.Errorf("after replay: moves=%d message=%q", st.Moves, st.Message)
	}
	loop.Advance(DefaultAutoplayInterval)
	if g.Autoplay().Playing() {
		t.Error("autoplay should finish")
	}
	if solver.calls != 1 {
		t.Errorf("solver called %d times, expected 1", solver.calls)
	}
}

func TestGameSolveFailure(t *testing.T) {
	solver := &stubSolver{err: errors.New("unsolvable")}
	g, loop, _ := newTestGame(t, solver)
	b := g.Board()
	if err := b.MoveEmpty(Up); err != nil {
		t.Fatal(err)
	}
	before := b.String()

	if err := g.RequestSolve(); err != nil {
		t.Fatalf("RequestSolve: %v", err)
	}
	loop.Flush()

	if g.Busy() || g.Autoplay().Playing() {
		t.Error("failed solve should only re-enable interaction")
	}
	if b.String() != before {
		t.Error("failed solve changed the board")
	}
	if g.Status().Message == "" {
		t.Error("failed solve should leave a status message")
	}

	solver.err = nil
	solver.codes = []byte{7}
	if err := g.RequestSolve(); err != nil {
		t.Fatalf("RequestSolve: %v", err)
	}
	loop.Flush()
	if g.Busy() || g.Autoplay().Playing() {
		t.Error("undecodable answer should not start autoplay")
	}
}

func TestGameSolveEdgeCases(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	if err := g.Board().MoveEmpty(Up); err != nil {
		t.Fatal(err)
	}
	if err := g.RequestSolve(); !errors.Is(err, ErrNoSolver) {
		t.Errorf("RequestSolve without solver = %v, expected ErrNoSolver", err)
	}

	solver := &stubSolver{}
	g, _, _ = newTestGame(t, solver)
	if err := g.RequestSolve(); err != nil {
		t.Fatalf("RequestSolve on a solved board: %v", err)
	}
	if solver.calls != 0 || g.Busy() {
		t.Error("a solved board needs no solver")
	}
}

func TestGameInteractionCancelsAutoplay(t *testing.T) {
	tests := []struct {
		name     string
		interact func(g *Game) error
	}{
		{"arrow key", func(g *Game) error { return g.HandleAction(core.ActionDown) }},
		{"other key", func(g *Game) error { return g.HandleAction(core.ActionOther) }},
		{"pointer", func(g *Game) error {
			return g.HandlePointer(core.PointerEvent{Kind: core.PointerDown, X: 5, Y: 5})
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, loop, _ := newTestGame(t, nil)
			b := g.Board()
			g.Autoplay().Begin([]Direction{Left, Left, Left})
			if !g.Autoplay().Playing() {
				t.Fatal("autoplay should be running")
			}

			if err := tc.interact(g); err != nil {
				t.Fatalf("interaction: %v", err)
			}
			if g.Autoplay().Playing() {
				t.Fatal("interaction should stop autoplay")
			}
			snapshot := b.String()
			loop.Advance(5 * DefaultAutoplayInterval)
			if b.String() != snapshot {
				t.Error("autoplay moved the board after being cancelled")
			}
		})
	}
}

func TestGameClickMovesAdjacentTile(t *testing.T) {
	g, _, host := newTestGame(t, nil)
	b := g.Board()
	fifteen := mustTile(t, b, 2, 3)

	press := func(x, y int) {
		t.Helper()
		for _, kind := range []core.PointerKind{core.PointerDown, core.PointerUp} {
			if err := g.HandlePointer(core.PointerEvent{Kind: kind, X: x, Y: y}); err != nil {
				t.Fatalf("pointer %v: %v", kind, err)
			}
		}
	}

	press(25, 35)
	if fifteen.Slot() != (Slot{X: 3, Y: 3}) {
		t.Errorf("clicking a neighbor should move it, tile 15 at %v", fifteen.Slot())
	}
	if len(host.clicked) != 1 {
		t.Errorf("host saw %d clicks, expected 1", len(host.clicked))
	}

	before := b.String()
	press(5, 5)
	if b.String() != before {
		t.Error("clicking a far tile should not move anything")
	}
	if g.Status().Moves != 1 {
		t.Errorf("Moves = %d, expected 1", g.Status().Moves)
	}
}

func TestGamePaintOrder(t *testing.T) {
	g, loop, _ := newTestGame(t, nil)
	b := g.Board()

	if err := g.Move(Down); err != nil {
		t.Fatalf("Move(Down): %v", err)
	}
	if err := g.HandlePointer(core.PointerEvent{Kind: core.PointerDown, X: 5, Y: 5}); err != nil {
		t.Fatal(err)
	}
	if err := g.HandlePointer(core.PointerEvent{Kind: core.PointerMove, X: 7, Y: 9}); err != nil {
		t.Fatal(err)
	}
	loop.Advance(500 * time.Millisecond)

	p := &recordingPainter{}
	g.Paint(p)
	if len(p.calls) != len(b.Tiles()) {
		t.Fatalf("painted %d tiles, expected %d", len(p.calls), len(b.Tiles()))
	}

	n := len(p.calls)
	last := p.calls[n-1]
	if last.caption != "1" || last.transition || last.rect != core.NewRect(2, 4, 10, 10) {
		t.Errorf("dragged tile should be painted last at its drag position, got %+v", last)
	}
	slide := p.calls[n-2]
	if slide.caption != "12" || !slide.transition {
		t.Errorf("sliding tile should be painted after static tiles, got %+v", slide)
	}
	if slide.rect != core.NewRect(30, 25, 10, 10) {
		t.Errorf("sliding tile rect = %+v, expected halfway", slide.rect)
	}
	for _, c := range p.calls[:n-2] {
		if c.transition {
			t.Errorf("static tile %s painted as a transition", c.caption)
		}
	}
}

func TestGameShuffleAndReset(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	b := g.Board()

	g.Shuffle()
	mustValid(t, b)
	if b.Solved() {
		t.Error("shuffle should scramble the board")
	}
	if g.Status().Moves != 0 {
		t.Error("shuffle resets the move counter")
	}

	if err := g.HandleAction(core.ActionReset); err != nil {
		t.Fatalf("ActionReset: %v", err)
	}
	if !b.Solved() {
		t.Error("reset should solve the board")
	}
}

func TestGameLoad(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	grid := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15}
	if err := g.Load(grid); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := g.HandleAction(core.ActionLeft); err != nil {
		t.Fatalf("ActionLeft: %v", err)
	}
	st := g.Status()
	if !st.Solved || st.Moves != 1 {
		t.Errorf("Status() = %+v, expected solved in one move", st)
	}
}
