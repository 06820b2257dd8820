// Package tui provides the Bubble Tea frontend for the runner: the game
// loop, start menu, leaderboard screens and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Loop tells apart the
// tick chains of successive game models in one program.
type TickMsg struct {
	At   time.Time
	Loop int64
}

var loopIDs atomic.Int64

func nextLoopID() int64 {
	return loopIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop int64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}
