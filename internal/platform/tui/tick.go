// Package tui provides the Bubble Tea integration for the puzzle.
// It handles the terminal UI loop, input mapping, and painting.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg fires a callback scheduled with the loop's AfterFunc.
type timerMsg struct {
	loop *teaLoop
	id   int
}

// workDoneMsg is sent when background work started with Go completes.
type workDoneMsg struct {
	loop *teaLoop
	id   int
}

// timerCmd returns a Bubble Tea command that reports timer id after d.
func timerCmd(l *teaLoop, id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{loop: l, id: id}
	})
}

// workCmd runs work in Bubble Tea's command goroutine.
func workCmd(l *teaLoop, id int, work func()) tea.Cmd {
	return func() tea.Msg {
		work()
		return workDoneMsg{loop: l, id: id}
	}
}
