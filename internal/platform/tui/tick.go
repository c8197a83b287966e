// Package tui runs game modes in a terminal through Bubble Tea, either
// locally or per SSH session. It maps key and mouse events to input frames
// and draws the mode's cell screen with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation step.
type TickMsg time.Time

// tickInterval returns the wall time of one tick, falling back to 60 Hz.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// ticksFor converts a duration to a whole number of ticks, at least one.
func ticksFor(d time.Duration, tickRate int) int {
	return max(1, int(d/tickInterval(tickRate)))
}

// tickCmd schedules the next tick.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
