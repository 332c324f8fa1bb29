// ABOUTME: Audio output interface definition
// ABOUTME: Common interface, backend selection and format negotiation for playback backends
package output

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

// RenderFunc fills out with frames frames in the negotiated stream format.
// It runs on the backend's audio thread and must not block or allocate.
type RenderFunc func(out []byte, frames int)

// Device represents an audio output device
type Device interface {
	// Start negotiates the stream format, installs render and starts output.
	// Starting a running device replaces its stream.
	Start(format audio.SampleFormat, sampleRate, channels int, render RenderFunc) error

	// Stop halts output
	Stop() error

	// Pause halts output when paused is true and resumes it otherwise
	Pause(paused bool) error

	// Format returns the negotiated stream format
	Format() audio.StreamFormat

	// Close releases the device
	Close() error
}

const (
	BackendMalgo     = "malgo"
	BackendOto       = "oto"
	BackendPortAudio = "portaudio"
)

// Backends lists the selectable backend names
func Backends() []string {
	return []string{BackendMalgo, BackendOto, BackendPortAudio}
}

// New opens the named backend; an empty name selects malgo
func New(backend string, logger zerolog.Logger) (Device, error) {
	switch strings.ToLower(backend) {
	case "", BackendMalgo:
		return NewMalgo(logger)
	case BackendOto:
		return NewOto(logger)
	case BackendPortAudio:
		return NewPortAudio(logger)
	default:
		return nil, fmt.Errorf("%w: unknown output backend %q (supported: %s)",
			audio.ErrInvalidInput, backend, strings.Join(Backends(), ", "))
	}
}

// negotiate validates a Start request before any device call is made
func negotiate(format audio.SampleFormat, sampleRate, channels int, render RenderFunc) (audio.StreamFormat, audio.FormatInfo, error) {
	if render == nil {
		return audio.StreamFormat{}, audio.FormatInfo{}, fmt.Errorf("%w: %w: render callback is nil", audio.ErrDevice, audio.ErrInvalidInput)
	}
	sf, err := audio.NewStreamFormat(sampleRate, channels, format)
	if err != nil {
		return audio.StreamFormat{}, audio.FormatInfo{}, fmt.Errorf("%w: %w", audio.ErrDevice, err)
	}
	info, _ := format.Info()
	return sf, info, nil
}

func unsupported(backend string, format audio.SampleFormat) error {
	return fmt.Errorf("%w: %w: %s cannot play %s", audio.ErrDevice, audio.ErrUnsupportedFormat, backend, format)
}

func notStarted(backend string) error {
	return fmt.Errorf("%w: %s output not started", audio.ErrDevice, backend)
}

func logStreamFormat(logger zerolog.Logger, sf audio.StreamFormat) {
	logger.Info().
		Str("format", sf.Format.String()).
		Int("channels", sf.Channels).
		Int("sample_rate", sf.SampleRate).
		Int("bits_per_channel", sf.BitsPerChannel()).
		Int("bytes_per_frame", sf.BytesPerFrame()).
		Int("bytes_per_packet", sf.BytesPerPacket()).
		Msg("Stream format")
}
