package puzzle

import "time"

// Ticker is a periodic timer on a Loop that can be switched on and off.
// It only holds a pending timer while enabled.
type Ticker struct {
	loop    Loop
	period  time.Duration
	fire    func()
	enabled bool
	stop    func()
	gen     uint64
}

// NewTicker creates a disabled ticker calling fire every period.
func NewTicker(loop Loop, period time.Duration, fire func()) *Ticker {
	if period <= 0 {
		period = time.Millisecond
	}
	return &Ticker{loop: loop, period: period, fire: fire}
}

// Enabled reports whether the ticker is running.
func (t *Ticker) Enabled() bool { return t.enabled }

// Period returns the tick interval.
func (t *Ticker) Period() time.Duration { return t.period }

// SetEnabled starts or stops the ticker. Enabling a running ticker does
// not restart its period.
func (t *Ticker) SetEnabled(on bool) {
	if on {
		t.Enable()
	} else {
		t.Disable()
	}
}

func (t *Ticker) Enable() {
	if t.enabled {
		return
	}
	t.enabled = true
	t.arm()
}

func (t *Ticker) Disable() {
	if !t.enabled {
		return
	}
	t.enabled = false
	t.disarm()
}

func (t *Ticker) arm() {
	t.gen++
	gen := t.gen
	t.stop = t.loop.AfterFunc(t.period, func() { t.tick(gen) })
}

func (t *Ticker) disarm() {
	t.gen++
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

func (t *Ticker) tick(gen uint64) {
	// A timer that was stopped too late to be cancelled is stale.
	if gen != t.gen || !t.enabled {
		return
	}
	t.stop = nil
	t.fire()
	// fire may have disabled and re-enabled the ticker, which re-arms it.
	if t.enabled && t.stop == nil {
		t.arm()
	}
}
