// ABOUTME: Bubbletea model for the playback TUI
// ABOUTME: Defines playback state, key handling and rendering
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Playback states shown in the header
const (
	StateIdle     = "idle"
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateFinished = "finished"
)

// Model represents the TUI state
type Model struct {
	// Device
	backend        string
	format         string
	sampleRate     int
	channels       int
	bitsPerChannel int
	bytesPerFrame  int

	// Tone
	source    string
	frequency float64

	// Playback
	state        string
	loop         bool
	totalFrames  int
	position     int
	framesPlayed int64
	lastError    string

	ctrl *PlaybackControl

	// Dimensions
	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderStreamInfo()
	s += m.renderProgress()
	s += m.renderHelp()

	return s
}

// renderHeader renders backend and playback state
func (m Model) renderHeader() string {
	icon := "■"
	switch m.state {
	case StatePlaying:
		icon = "▶"
	case StatePaused:
		icon = "⏸"
	case StateFinished:
		icon = "✓"
	}

	backend := m.backend
	if backend == "" {
		backend = "(none)"
	}

	return fmt.Sprintf(`┌─ pcmtone ────────────────────────────────────────────┐
│ Backend: %-44s │
│ State:   %s %-42s │
├──────────────────────────────────────────────────────┤
`, backend, icon, m.state)
}

// renderStreamInfo renders the negotiated stream format
func (m Model) renderStreamInfo() string {
	if m.format == "" {
		return "│ No stream                                            │\n"
	}

	s := fmt.Sprintf("│ Format: %s %dHz %s %d-bit%-17s │\n",
		m.format, m.sampleRate, channelName(m.channels), m.bitsPerChannel, "")
	s += fmt.Sprintf("│ Frame:  %d bytes%-38s │\n", m.bytesPerFrame, "")
	if m.source != "" {
		s += fmt.Sprintf("│ Source: %-44s │\n", truncate(m.source, 44))
	} else if m.frequency > 0 {
		s += fmt.Sprintf("│ Tone:   %.1fHz base, channel c at base×(c+1)%-8s │\n", m.frequency, "")
	}
	return s
}

// renderProgress renders the playback position
func (m Model) renderProgress() string {
	elapsed := m.elapsed()
	total := time.Duration(0)
	if m.sampleRate > 0 {
		total = time.Duration(m.totalFrames) * time.Second / time.Duration(m.sampleRate)
	}

	loop := ""
	if m.loop {
		loop = " (loop)"
	}

	s := "│                                                      │\n"
	if m.totalFrames > 0 {
		s += fmt.Sprintf("│ [%s] %s / %s%s%-6s │\n",
			renderBar(m.position, m.totalFrames, 20),
			formatDuration(elapsed), formatDuration(total), loop, "")
	}
	s += fmt.Sprintf("│ Frames played: %-38d │\n", m.framesPlayed)
	if m.lastError != "" {
		s += fmt.Sprintf("│ Error: %-45s │\n", truncate(m.lastError, 45))
	}
	return s + "├──────────────────────────────────────────────────────┤\n"
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ space/p:Pause  r:Restart  q:Quit                     │
└──────────────────────────────────────────────────────┘
`
}

// elapsed is the playback position as time
func (m Model) elapsed() time.Duration {
	if m.sampleRate <= 0 {
		return 0
	}
	return time.Duration(m.position) * time.Second / time.Duration(m.sampleRate)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.ctrl != nil {
			m.ctrl.requestQuit()
		}
		return m, tea.Quit
	case " ", "p":
		switch m.state {
		case StatePlaying:
			m.state = StatePaused
		case StatePaused:
			m.state = StatePlaying
		default:
			return m, nil
		}
		if m.ctrl != nil {
			m.ctrl.send(PauseMsg{Paused: m.state == StatePaused})
		}
	case "r":
		if m.state == StateIdle {
			return m, nil
		}
		m.position = 0
		m.state = StatePlaying
		if m.ctrl != nil {
			m.ctrl.send(RestartMsg{})
		}
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Backend != "" {
		m.backend = msg.Backend
	}
	if msg.Format != "" {
		m.format = msg.Format
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.bitsPerChannel = msg.BitsPerChannel
		m.bytesPerFrame = msg.BytesPerFrame
	}
	if msg.Source != "" {
		m.source = msg.Source
	}
	if msg.Frequency != 0 {
		m.frequency = msg.Frequency
	}
	if msg.TotalFrames != 0 {
		m.totalFrames = msg.TotalFrames
		m.loop = msg.Loop
	}
	if msg.Position != nil {
		m.position = *msg.Position
		m.framesPlayed = msg.FramesPlayed
	}
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Err != nil {
		m.lastError = msg.Err.Error()
	}
}

// StatusMsg updates TUI state; zero fields are left unchanged
type StatusMsg struct {
	Backend        string
	Format         string
	SampleRate     int
	Channels       int
	BitsPerChannel int
	BytesPerFrame  int
	Source         string
	Frequency      float64
	TotalFrames    int
	Loop           bool
	Position       *int
	FramesPlayed   int64
	State          string
	Err            error
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := 0
	if max > 0 {
		filled = (value * width) / max
	}
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", minutes, seconds)
}
