package eventloop

import (
	"sort"
	"time"
)

// Virtual is a loop with a manual clock. Timers fire only inside Advance,
// and background work runs inline with its completion queued until the
// next Flush or Advance.
type Virtual struct {
	now     time.Time
	seq     uint64
	timers  []*virtualTimer
	pending []func()
}

type virtualTimer struct {
	due     time.Time
	seq     uint64
	f       func()
	stopped bool
}

// NewVirtual creates a virtual loop whose clock starts at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

func (v *Virtual) Now() time.Time { return v.now }

func (v *Virtual) AfterFunc(d time.Duration, f func()) func() {
	if d < 0 {
		d = 0
	}
	v.seq++
	t := &virtualTimer{due: v.now.Add(d), seq: v.seq, f: f}
	v.timers = append(v.timers, t)
	return func() { t.stopped = true }
}

func (v *Virtual) Go(work func(), done func()) {
	work()
	v.pending = append(v.pending, done)
}

// Flush delivers completions of work started with Go.
func (v *Virtual) Flush() {
	for len(v.pending) > 0 {
		f := v.pending[0]
		v.pending = v.pending[1:]
		f()
	}
}

// Pending returns the number of armed timers.
func (v *Virtual) Pending() int {
	n := 0
	for _, t := range v.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in order.
func (v *Virtual) Advance(d time.Duration) {
	v.Flush()
	target := v.now.Add(d)
	for {
		t := v.nextDue(target)
		if t == nil {
			break
		}
		if t.due.After(v.now) {
			v.now = t.due
		}
		t.f()
		v.Flush()
	}
	v.now = target
}

// nextDue removes and returns the earliest live timer due by target.
func (v *Virtual) nextDue(target time.Time) *virtualTimer {
	live := v.timers[:0]
	for _, t := range v.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	v.timers = live
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].due.Equal(live[j].due) {
			return live[i].seq < live[j].seq
		}
		return live[i].due.Before(live[j].due)
	})
	t := live[0]
	if t.due.After(target) {
		return nil
	}
	v.timers = live[1:]
	return t
}
