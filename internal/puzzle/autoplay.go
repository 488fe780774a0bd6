package puzzle

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultAutoplayInterval is the pause between replayed moves.
const DefaultAutoplayInterval = 1200 * time.Millisecond

// Autoplay replays a move sequence on a board, one move per tick.
type Autoplay struct {
	board  *Board
	timer  *Ticker
	seq    []Direction
	cursor int
	onMove func()
	logger *log.Logger
}

// NewAutoplay creates an idle driver.
func NewAutoplay(loop Loop, board *Board, interval time.Duration, logger *log.Logger) *Autoplay {
	if interval <= 0 {
		interval = DefaultAutoplayInterval
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &Autoplay{board: board, logger: logger}
	a.timer = NewTicker(loop, interval, a.Step)
	return a
}

// OnMove sets a callback run after each replayed move lands.
func (a *Autoplay) OnMove(f func()) { a.onMove = f }

// Playing reports whether a sequence is being replayed.
func (a *Autoplay) Playing() bool { return a.timer.Enabled() }

// Remaining returns the number of moves not yet replayed.
func (a *Autoplay) Remaining() int {
	if !a.Playing() {
		return 0
	}
	return len(a.seq) - a.cursor
}

// Begin replaces any current sequence and makes the first move at once.
func (a *Autoplay) Begin(seq []Direction) {
	a.timer.Disable()
	a.seq = append([]Direction(nil), seq...)
	a.cursor = 0
	a.timer.Enable()
	a.Step()
}

// Step makes the next move, or goes idle when the sequence is exhausted.
// Each direction is where the empty slot goes.
func (a *Autoplay) Step() {
	if !a.timer.Enabled() {
		return
	}
	if a.cursor >= len(a.seq) {
		a.stop()
		return
	}
	d := a.seq[a.cursor]
	a.cursor++
	if err := a.board.MoveEmpty(d); err != nil {
		a.logger.Warn("autoplay move rejected", "step", a.cursor, "move", d, "err", err)
		return
	}
	if a.onMove != nil {
		a.onMove()
	}
}

// Cancel stops playback. It reports whether playback was running.
func (a *Autoplay) Cancel() bool {
	if !a.timer.Enabled() {
		return false
	}
	a.stop()
	return true
}

func (a *Autoplay) stop() {
	a.timer.Disable()
	a.seq = nil
	a.cursor = 0
}
