// Package tui provides the Bubble Tea integration for the snake game.
// It runs two cadences (render frames and simulation steps), maps keys to
// actions and persists finished rounds.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg triggers a redraw at the configured frame rate.
type FrameMsg time.Time

// StepMsg triggers one simulation tick. Gen identifies the step chain that
// scheduled it; steps from an older chain are dropped.
type StepMsg struct {
	Gen  int
	Time time.Time
}

// frameCmd returns a command that sends a FrameMsg after one frame.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// stepCmd returns a command that sends a StepMsg for chain gen after d.
func stepCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return StepMsg{Gen: gen, Time: t}
	})
}
