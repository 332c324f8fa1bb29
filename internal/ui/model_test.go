// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, key handling and playback control messages
package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func intPtr(v int) *int { return &v }

func TestNewModel(t *testing.T) {
	model := NewModel(nil) // PlaybackControl is optional for testing

	if model.state != StateIdle {
		t.Errorf("expected state %q initially, got %q", StateIdle, model.state)
	}

	if model.format != "" {
		t.Errorf("expected no format initially, got %q", model.format)
	}

	if model.position != 0 {
		t.Errorf("expected position 0, got %d", model.position)
	}
}

func TestStatusMsgStreamInfo(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{
		Backend:        "malgo",
		Format:         "s32be",
		SampleRate:     48000,
		Channels:       2,
		BitsPerChannel: 32,
		BytesPerFrame:  8,
	})

	if model.backend != "malgo" {
		t.Errorf("expected backend 'malgo', got '%s'", model.backend)
	}
	if model.format != "s32be" {
		t.Errorf("expected format 's32be', got '%s'", model.format)
	}
	if model.sampleRate != 48000 {
		t.Errorf("expected sampleRate 48000, got %d", model.sampleRate)
	}
	if model.channels != 2 {
		t.Errorf("expected channels 2, got %d", model.channels)
	}
	if model.bitsPerChannel != 32 {
		t.Errorf("expected bitsPerChannel 32, got %d", model.bitsPerChannel)
	}
	if model.bytesPerFrame != 8 {
		t.Errorf("expected bytesPerFrame 8, got %d", model.bytesPerFrame)
	}
}

func TestStatusMsgProgress(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{TotalFrames: 96000, Loop: true, State: StatePlaying})
	model.applyStatus(StatusMsg{Position: intPtr(48000), FramesPlayed: 144000})

	if model.totalFrames != 96000 {
		t.Errorf("expected totalFrames 96000, got %d", model.totalFrames)
	}
	if !model.loop {
		t.Error("expected loop to be set")
	}
	if model.position != 48000 {
		t.Errorf("expected position 48000, got %d", model.position)
	}
	if model.framesPlayed != 144000 {
		t.Errorf("expected framesPlayed 144000, got %d", model.framesPlayed)
	}
	if model.state != StatePlaying {
		t.Errorf("expected state playing, got %s", model.state)
	}

	// position zero must still apply
	model.applyStatus(StatusMsg{Position: intPtr(0)})
	if model.position != 0 {
		t.Errorf("expected position reset to 0, got %d", model.position)
	}
}

func TestStatusMsgError(t *testing.T) {
	model := NewModel(nil)
	model.applyStatus(StatusMsg{Err: errors.New("device lost")})

	if model.lastError != "device lost" {
		t.Errorf("expected lastError 'device lost', got '%s'", model.lastError)
	}
}

func TestPauseKeySendsCommand(t *testing.T) {
	ctrl := NewPlaybackControl()
	model := NewModel(ctrl)
	model.applyStatus(StatusMsg{State: StatePlaying})

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m := updated.(Model)
	if m.state != StatePaused {
		t.Fatalf("expected paused, got %s", m.state)
	}

	select {
	case msg := <-ctrl.Commands:
		pause, ok := msg.(PauseMsg)
		if !ok || !pause.Paused {
			t.Errorf("expected PauseMsg{Paused: true}, got %#v", msg)
		}
	default:
		t.Fatal("expected a pause command")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = updated.(Model)
	if m.state != StatePlaying {
		t.Fatalf("expected playing after resume, got %s", m.state)
	}

	msg := <-ctrl.Commands
	if pause, ok := msg.(PauseMsg); !ok || pause.Paused {
		t.Errorf("expected PauseMsg{Paused: false}, got %#v", msg)
	}
}

func TestPauseIgnoredWhenIdle(t *testing.T) {
	ctrl := NewPlaybackControl()
	model := NewModel(ctrl)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if updated.(Model).state != StateIdle {
		t.Errorf("expected idle, got %s", updated.(Model).state)
	}
	if len(ctrl.Commands) != 0 {
		t.Errorf("expected no commands, got %d", len(ctrl.Commands))
	}
}

func TestRestartKey(t *testing.T) {
	ctrl := NewPlaybackControl()
	model := NewModel(ctrl)
	model.applyStatus(StatusMsg{State: StateFinished, Position: intPtr(100)})

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m := updated.(Model)
	if m.position != 0 || m.state != StatePlaying {
		t.Errorf("expected rewind to playing, got position %d state %s", m.position, m.state)
	}
	if _, ok := (<-ctrl.Commands).(RestartMsg); !ok {
		t.Error("expected RestartMsg")
	}
}

func TestQuitKey(t *testing.T) {
	ctrl := NewPlaybackControl()
	model := NewModel(ctrl)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from quit command")
	}

	select {
	case <-ctrl.Quit:
	default:
		t.Error("expected quit request on control channel")
	}

	// a second quit must not block
	model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func TestCommandsDoNotBlock(t *testing.T) {
	ctrl := NewPlaybackControl()
	for i := 0; i < cap(ctrl.Commands)+5; i++ {
		ctrl.send(RestartMsg{})
	}
	if len(ctrl.Commands) != cap(ctrl.Commands) {
		t.Errorf("expected full buffer of %d, got %d", cap(ctrl.Commands), len(ctrl.Commands))
	}
}

func TestViewLoading(t *testing.T) {
	model := NewModel(nil)
	if model.View() != "Loading..." {
		t.Errorf("expected loading view before size, got %q", model.View())
	}
}

func TestViewRendersStream(t *testing.T) {
	model := NewModel(nil)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := updated.(Model)
	m.applyStatus(StatusMsg{
		Backend:        "oto",
		Format:         "f32",
		SampleRate:     48000,
		Channels:       2,
		BitsPerChannel: 32,
		BytesPerFrame:  8,
		Frequency:      200,
		TotalFrames:    96000,
		Position:       intPtr(48000),
		State:          StatePlaying,
	})

	view := m.View()
	for _, want := range []string{"oto", "f32 48000Hz Stereo 32-bit", "playing", "0:01.0 / 0:02.0", "q:Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q:\n%s", want, view)
		}
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value, max, width int
		filled            int
	}{
		{0, 100, 10, 0},
		{50, 100, 10, 5},
		{100, 100, 10, 10},
		{150, 100, 10, 10},
		{5, 0, 10, 0},
	}

	for _, tt := range tests {
		bar := renderBar(tt.value, tt.max, tt.width)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("renderBar(%d, %d, %d): expected %d filled, got %d", tt.value, tt.max, tt.width, tt.filled, got)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != tt.width {
			t.Errorf("expected width %d, got %d", tt.width, got)
		}
	}
}

func TestChannelName(t *testing.T) {
	if channelName(1) != "Mono" {
		t.Errorf("expected Mono, got %s", channelName(1))
	}
	if channelName(2) != "Stereo" {
		t.Errorf("expected Stereo, got %s", channelName(2))
	}
	if channelName(6) != "6ch" {
		t.Errorf("expected 6ch, got %s", channelName(6))
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(90*time.Second + 250*time.Millisecond); got != "1:30.3" {
		t.Errorf("expected 1:30.3, got %s", got)
	}
	if got := formatDuration(0); got != "0:00.0" {
		t.Errorf("expected 0:00.0, got %s", got)
	}
}
