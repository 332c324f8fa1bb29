//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

var errPortAudioDisabled = fmt.Errorf("%w: PortAudio support not enabled (build with -tags portaudio)", audio.ErrDevice)

// PortAudio output implementation (stub)
type PortAudio struct{}

// NewPortAudio reports that PortAudio support is not compiled in
func NewPortAudio(logger zerolog.Logger) (Device, error) {
	return nil, errPortAudioDisabled
}

// Start is unavailable without PortAudio
func (p *PortAudio) Start(format audio.SampleFormat, sampleRate, channels int, render RenderFunc) error {
	return errPortAudioDisabled
}

// Stop is unavailable without PortAudio
func (p *PortAudio) Stop() error {
	return errPortAudioDisabled
}

// Pause is unavailable without PortAudio
func (p *PortAudio) Pause(paused bool) error {
	return errPortAudioDisabled
}

// Format returns the zero stream format
func (p *PortAudio) Format() audio.StreamFormat {
	return audio.StreamFormat{}
}

// Close releases nothing
func (p *PortAudio) Close() error {
	return nil
}
