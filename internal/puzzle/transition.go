package puzzle

import (
	"time"

	"github.com/vovakirdan/fifteen/internal/core"
)

const (
	// DefaultTransitionDuration is how long a tile takes to slide.
	DefaultTransitionDuration = time.Second
	// DefaultAnimationTick is the animation clock period.
	DefaultAnimationTick = 5 * time.Millisecond
)

// Transition records one tile sliding from a previous rectangle to its
// resting rectangle.
type Transition struct {
	Tile     *Tile
	From     core.Rect
	Start    time.Time
	Duration time.Duration
	// Area covers both ends of the slide.
	Area core.Rect
	// LastPaint is the rectangle most recently handed to a painter.
	LastPaint core.Rect
}

// End returns the time the transition expires.
func (tr *Transition) End() time.Time {
	return tr.Start.Add(tr.Duration)
}

// Alive reports whether the transition is still running at now.
func (tr *Transition) Alive(now time.Time) bool {
	return now.Before(tr.End())
}

// Ratio returns the elapsed fraction of the duration, clamped to [0, 1].
func (tr *Transition) Ratio(now time.Time) float64 {
	if tr.Duration <= 0 {
		return 1
	}
	return core.ClampF(float64(now.Sub(tr.Start))/float64(tr.Duration), 0, 1)
}

// Current interpolates the tile rectangle at now.
func (tr *Transition) Current(now time.Time) core.Rect {
	return tr.From.Lerp(tr.Tile.Rect(), tr.Ratio(now))
}

// Animator is the registry of in-flight transitions. It owns the
// animation clock and keeps it running only while transitions exist.
type Animator struct {
	loop     Loop
	host     Host
	duration time.Duration
	active   map[TileID]*Transition
	clock    *Ticker
}

// NewAnimator creates an animator. Zero durations select the defaults.
func NewAnimator(loop Loop, host Host, duration, tick time.Duration) *Animator {
	if duration <= 0 {
		duration = DefaultTransitionDuration
	}
	if tick <= 0 {
		tick = DefaultAnimationTick
	}
	a := &Animator{
		loop:     loop,
		host:     host,
		duration: duration,
		active:   make(map[TileID]*Transition),
	}
	a.clock = NewTicker(loop, tick, a.sweep)
	return a
}

// Duration returns the fixed transition length.
func (a *Animator) Duration() time.Duration { return a.duration }

// Start registers a transition for t beginning at from. Any transition
// already running for t is invalidated and replaced.
func (a *Animator) Start(t *Tile, from core.Rect) *Transition {
	if prev, ok := a.active[t.id]; ok {
		a.host.Invalidate(prev.Area)
	}
	to := t.Rect()
	tr := &Transition{
		Tile:      t,
		From:      from,
		Start:     a.loop.Now(),
		Duration:  a.duration,
		Area:      from.Union(to),
		LastPaint: from,
	}
	a.active[t.id] = tr
	a.host.Invalidate(tr.Area)
	a.clock.Enable()
	return tr
}

// Query returns the running transition for t, if any.
func (a *Animator) Query(t *Tile) (*Transition, bool) {
	tr, ok := a.active[t.id]
	return tr, ok
}

// Active returns the number of running transitions.
func (a *Animator) Active() int { return len(a.active) }

// Running reports whether the animation clock is enabled.
func (a *Animator) Running() bool { return a.clock.Enabled() }

// Forget drops t's transition without a final repaint.
func (a *Animator) Forget(t *Tile) {
	delete(a.active, t.id)
	a.clock.SetEnabled(len(a.active) > 0)
}

// Clear drops every transition and stops the clock.
func (a *Animator) Clear() {
	for id, tr := range a.active {
		a.host.Invalidate(tr.Area)
		delete(a.active, id)
	}
	a.clock.Disable()
}

// sweep repaints live transitions and retires expired ones.
func (a *Animator) sweep() {
	now := a.loop.Now()
	for id, tr := range a.active {
		if !tr.Alive(now) {
			delete(a.active, id)
		}
		a.host.Invalidate(tr.Area)
	}
	a.clock.SetEnabled(len(a.active) > 0)
}
