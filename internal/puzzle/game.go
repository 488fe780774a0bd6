package puzzle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fifteen/internal/core"
)

// Options configures a Game. Zero values select defaults.
type Options struct {
	Width, Height      int
	Margin             int
	TransitionDuration time.Duration
	AnimationTick      time.Duration
	AutoplayInterval   time.Duration
	SolveTimeout       time.Duration
	ShuffleMoves       int
	Seed               int64
	Style              Style
}

// DefaultOptions returns the classic 4×4 setup.
func DefaultOptions() Options {
	return Options{
		Width:              4,
		Height:             4,
		Margin:             DefaultMargin,
		TransitionDuration: DefaultTransitionDuration,
		AnimationTick:      DefaultAnimationTick,
		AutoplayInterval:   DefaultAutoplayInterval,
		SolveTimeout:       30 * time.Second,
		ShuffleMoves:       40,
		Style: Style{
			Background: core.ColorNavy,
			Tile:       core.ColorTan,
			Caption:    core.ColorBlack,
			Border:     core.ColorWhite,
		},
	}
}

// Status summarizes the game for a heads-up display.
type Status struct {
	Moves     int
	Solved    bool
	Busy      bool
	Autoplay  bool
	Remaining int
	Message   string
}

// Game wires a board to its animator, pointer surface, autoplay driver,
// and solver. All methods must be called on the loop.
type Game struct {
	opts     Options
	loop     Loop
	host     Host
	solver   Solver
	board    *Board
	anim     *Animator
	autoplay *Autoplay
	surface  *Surface
	rng      *rand.Rand
	logger   *log.Logger

	busy    bool
	moves   int
	message string
}

// NewGame builds a game with a solved board. solver may be nil, in which
// case solve requests fail with ErrNoSolver.
func NewGame(loop Loop, host Host, solver Solver, opts Options, logger *log.Logger) (*Game, error) {
	def := DefaultOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.SolveTimeout <= 0 {
		opts.SolveTimeout = def.SolveTimeout
	}
	if opts.ShuffleMoves <= 0 {
		opts.ShuffleMoves = def.ShuffleMoves
	}
	if host == nil {
		host = HostFuncs{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		opts:   opts,
		loop:   loop,
		host:   host,
		solver: solver,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
	// Clicks reach the game before the host sees them.
	relay := HostFuncs{
		InvalidateFunc: host.Invalidate,
		TileClickedFunc: func(t *Tile) {
			g.clickTile(t)
			host.TileClicked(t)
		},
	}
	g.anim = NewAnimator(loop, host, opts.TransitionDuration, opts.AnimationTick)
	board, err := NewBoard(opts.Width, opts.Height, host, g.anim)
	if err != nil {
		return nil, err
	}
	board.SetMargin(opts.Margin)
	board.Reset()
	g.board = board
	g.surface = NewSurface(board, relay)
	g.autoplay = NewAutoplay(loop, board, opts.AutoplayInterval, logger)
	g.autoplay.OnMove(g.replayed)
	return g, nil
}

func (g *Game) Board() *Board { return g.board }
func (g *Game) Animator() *Animator { return g.anim }
func (g *Game) Autoplay() *Autoplay { return g.autoplay }
func (g *Game) Surface() *Surface { return g.surface }
func (g *Game) Options() Options { return g.opts }
func (g *Game) Busy() bool { return g.busy }

// Status reports counters and flags for display.
func (g *Game) Status() Status {
	return Status{
		Moves:     g.moves,
		Solved:    g.board.Solved(),
		Busy:      g.busy,
		Autoplay:  g.autoplay.Playing(),
		Remaining: g.autoplay.Remaining(),
		Message:   g.message,
	}
}

// Resize tells the board its container changed size.
func (g *Game) Resize(w, h int) {
	g.board.SetContainerSize(w, h)
}

// interact is the gate every user interaction passes: it refuses input
// while a solve is pending and stops autoplay.
func (g *Game) interact() error {
	if g.busy {
		return ErrBusy
	}
	if g.autoplay.Cancel() {
		g.setMessage("autoplay stopped")
	}
	return nil
}

// HandleAction applies a keyboard-level action.
func (g *Game) HandleAction(a core.Action) error {
	if a == core.ActionNone || a == core.ActionQuit {
		return nil
	}
	if err := g.interact(); err != nil {
		return err
	}
	switch a {
	case core.ActionUp:
		return edgeOK(g.Move(Up))
	case core.ActionDown:
		return edgeOK(g.Move(Down))
	case core.ActionLeft:
		return edgeOK(g.Move(Left))
	case core.ActionRight:
		return edgeOK(g.Move(Right))
	case core.ActionSolve:
		return g.RequestSolve()
	case core.ActionShuffle:
		g.Shuffle()
	case core.ActionReset:
		g.Reset()
	}
	return nil
}

// Move slides the tile next to the empty slot in direction d. It fails
// with ErrOutOfRange when no tile lies on that side of the empty slot.
func (g *Game) Move(d Direction) error {
	if err := g.interact(); err != nil {
		return err
	}
	if err := g.board.ShiftTowardEmpty(d); err != nil {
		return err
	}
	g.moved()
	return nil
}

// edgeOK drops the error of an arrow key pressed against the board edge.
func edgeOK(err error) error {
	if errors.Is(err, ErrOutOfRange) {
		return nil
	}
	return err
}

// HandlePointer routes a pointer event to the drag surface.
func (g *Game) HandlePointer(ev core.PointerEvent) error {
	switch ev.Kind {
	case core.PointerDown:
		if err := g.interact(); err != nil {
			return err
		}
		g.surface.PointerDown(ev.X, ev.Y)
	case core.PointerMove:
		if g.busy {
			return nil
		}
		g.surface.PointerMove(ev.X, ev.Y)
	case core.PointerUp:
		if g.busy {
			g.surface.Cancel()
			return nil
		}
		res, err := g.surface.PointerUp(ev.X, ev.Y)
		if err != nil {
			return err
		}
		if res == DropShifted || res == DropSwapped {
			g.moved()
		}
	}
	return nil
}

func (g *Game) clickTile(t *Tile) {
	if g.interact() != nil {
		return
	}
	moved, err := g.board.Click(t)
	if err != nil {
		g.logger.Warn("click rejected", "tile", t.Caption(), "err", err)
		return
	}
	if moved {
		g.moved()
	}
}

// Shuffle scrambles the board with random legal moves.
func (g *Game) Shuffle() {
	if g.interact() != nil {
		return
	}
	g.surface.Cancel()
	seq := g.board.Shuffle(g.rng, g.opts.ShuffleMoves)
	g.moves = 0
	g.setMessage(fmt.Sprintf("shuffled with %d moves", len(seq)))
	g.logger.Debug("board shuffled", "moves", len(seq), "grid", g.board.Encode())
}

// Reset puts the board back in solved order.
func (g *Game) Reset() {
	if g.interact() != nil {
		return
	}
	g.surface.Cancel()
	g.board.Reset()
	g.moves = 0
	g.setMessage("board reset")
}

// Load replaces the board contents with a row-major grid.
func (g *Game) Load(grid []byte) error {
	if err := g.interact(); err != nil {
		return err
	}
	g.surface.Cancel()
	if err := g.board.Load(grid); err != nil {
		return err
	}
	g.moves = 0
	return nil
}

// RequestSolve runs the solver off the loop and starts autoplay with its
// answer. Interaction is disabled until the answer arrives.
func (g *Game) RequestSolve() error {
	if err := g.interact(); err != nil {
		return err
	}
	if g.solver == nil {
		return ErrNoSolver
	}
	if g.board.Solved() {
		g.setMessage("already solved")
		return nil
	}
	g.surface.Cancel()

	grid := g.board.Encode()
	width := g.board.Width()
	timeout := g.opts.SolveTimeout
	solver := g.solver

	var (
		codes []byte
		err   error
		took  time.Duration
	)
	g.busy = true
	g.setMessage("solving...")
	g.logger.Info("solve requested", "grid", grid, "width", width)
	g.loop.Go(func() {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		codes, err = solver.Solve(ctx, grid, width)
		took = time.Since(start)
	}, func() {
		g.finishSolve(codes, err, took)
	})
	return nil
}

func (g *Game) finishSolve(codes []byte, err error, took time.Duration) {
	g.busy = false
	if err != nil {
		g.logger.Warn("solve failed", "err", err, "took", took)
		g.setMessage("no solution: " + err.Error())
		return
	}
	seq, err := DecodeMoves(codes)
	if err != nil {
		g.logger.Error("solver returned bad moves", "err", err)
		g.setMessage("no solution")
		return
	}
	g.logger.Info("solve finished", "moves", len(seq), "took", took)
	g.setMessage(fmt.Sprintf("autoplay: %d moves", len(seq)))
	g.autoplay.Begin(seq)
}

// Paint draws static tiles, then sliding tiles, then the dragged tile on
// top.
func (g *Game) Paint(p Painter) {
	now := g.loop.Now()
	dragged := g.surface.Dragging()
	var sliding []*Transition
	for _, t := range g.board.Tiles() {
		if t == dragged {
			continue
		}
		if tr, ok := g.anim.Query(t); ok {
			sliding = append(sliding, tr)
			continue
		}
		p.PaintTile(t, t.Rect(), g.opts.Style)
	}
	for _, tr := range sliding {
		rect := tr.Current(now)
		tr.LastPaint = rect
		p.PaintTransition(tr.Tile, tr.From, rect, tr.Ratio(now), g.opts.Style)
	}
	if dragged != nil {
		p.PaintTile(dragged, dragged.Rect(), g.opts.Style)
	}
}

func (g *Game) moved() {
	g.moves++
	if g.board.Solved() {
		g.setMessage(fmt.Sprintf("solved in %d moves", g.moves))
	} else {
		g.setMessage("")
	}
}

// replayed counts an autoplay move, keeping the autoplay message until the
// board is solved.
func (g *Game) replayed() {
	g.moves++
	if g.board.Solved() {
		g.setMessage(fmt.Sprintf("solved in %d moves", g.moves))
	}
}

func (g *Game) setMessage(msg string) {
	g.message = msg
}
