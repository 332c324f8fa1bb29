// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and the channels it uses to drive playback
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// PauseMsg asks playback to pause or resume
type PauseMsg struct {
	Paused bool
}

// RestartMsg asks playback to rewind to the first frame
type RestartMsg struct{}

// QuitMsg asks playback to stop
type QuitMsg struct{}

// PlaybackControl holds channels for playback control communication
type PlaybackControl struct {
	Commands chan tea.Msg
	Quit     chan QuitMsg
}

// NewPlaybackControl creates a new playback control handler
func NewPlaybackControl() *PlaybackControl {
	return &PlaybackControl{
		Commands: make(chan tea.Msg, 10),
		Quit:     make(chan QuitMsg, 1),
	}
}

// send never blocks the UI; commands are dropped when the buffer is full
func (c *PlaybackControl) send(msg tea.Msg) {
	select {
	case c.Commands <- msg:
	default:
	}
}

func (c *PlaybackControl) requestQuit() {
	select {
	case c.Quit <- QuitMsg{}:
	default:
	}
}

// NewModel creates a new TUI model
func NewModel(ctrl *PlaybackControl) Model {
	return Model{
		state: StateIdle,
		ctrl:  ctrl,
	}
}

// Run creates the TUI program; the caller runs it
func Run(ctrl *PlaybackControl) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(ctrl), tea.WithAltScreen())
	return p, nil
}
