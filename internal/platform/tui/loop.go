package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// teaLoop runs board callbacks on Bubble Tea's update goroutine. Timers
// and background work become commands; their completion messages come
// back through Update, where dispatch invokes the stored callback.
type teaLoop struct {
	now     func() time.Time
	nextID  int
	timers  map[int]func()
	done    map[int]func()
	pending []tea.Cmd
}

func newTeaLoop() *teaLoop {
	return &teaLoop{
		now:    time.Now,
		timers: make(map[int]func()),
		done:   make(map[int]func()),
	}
}

func (l *teaLoop) Now() time.Time { return l.now() }

func (l *teaLoop) AfterFunc(d time.Duration, f func()) func() {
	l.nextID++
	id := l.nextID
	l.timers[id] = f
	l.pending = append(l.pending, timerCmd(l, id, d))
	return func() { delete(l.timers, id) }
}

func (l *teaLoop) Go(work func(), done func()) {
	l.nextID++
	id := l.nextID
	l.done[id] = done
	l.pending = append(l.pending, workCmd(l, id, work))
}

// dispatch runs the callback behind a loop message. It reports whether
// msg belonged to the loop. Messages scheduled by another loop, such as
// one from a board the session already closed, are ignored.
func (l *teaLoop) dispatch(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case timerMsg:
		if msg.loop != l {
			return false
		}
		if f, ok := l.timers[msg.id]; ok {
			delete(l.timers, msg.id)
			f()
		}
		return true
	case workDoneMsg:
		if msg.loop != l {
			return false
		}
		if f, ok := l.done[msg.id]; ok {
			delete(l.done, msg.id)
			f()
		}
		return true
	}
	return false
}

// drain returns the commands queued since the last call.
func (l *teaLoop) drain() tea.Cmd {
	if len(l.pending) == 0 {
		return nil
	}
	cmds := l.pending
	l.pending = nil
	return tea.Batch(cmds...)
}

// outstanding reports how many callbacks are still waiting.
func (l *teaLoop) outstanding() int {
	return len(l.timers) + len(l.done)
}
