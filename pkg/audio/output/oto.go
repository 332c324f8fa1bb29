// ABOUTME: Oto-based audio output implementation
// ABOUTME: Adapts a render callback into the io.Reader an oto player pulls from
package output

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

// Oto output implementation using oto library.
// oto allows one context per process, so the first Start fixes the stream format.
type Oto struct {
	logger zerolog.Logger
	otoCtx *oto.Context
	player *oto.Player
	format audio.StreamFormat
	closed bool
	mu     sync.Mutex
}

// NewOto creates a new Oto output; the context is created by the first Start
func NewOto(logger zerolog.Logger) (Device, error) {
	return &Oto{
		logger: logger.With().Str("backend", BackendOto).Logger(),
	}, nil
}

// otoFormat maps a sample format to the oto format, oto only plays little-endian s16 and f32
func otoFormat(format audio.SampleFormat) (oto.Format, bool) {
	switch format {
	case audio.FormatS16LE:
		return oto.FormatSignedInt16LE, true
	case audio.FormatFloat32:
		return oto.FormatFloat32LE, true
	default:
		return 0, false
	}
}

// Start creates the oto context on first use and plays render through a new player
func (o *Oto) Start(format audio.SampleFormat, sampleRate, channels int, render RenderFunc) error {
	sf, _, err := negotiate(format, sampleRate, channels, render)
	if err != nil {
		o.logger.Error().Err(err).Msg("The requested audio format is unsupported")
		return err
	}
	of, ok := otoFormat(format)
	if !ok {
		err := unsupported(BackendOto, format)
		o.logger.Error().Err(err).Msg("The requested audio format is unsupported")
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return fmt.Errorf("%w: oto output is closed", audio.ErrDevice)
	}
	if o.otoCtx != nil && o.format != sf {
		return fmt.Errorf("%w: oto cannot reinitialize from %s to %s", audio.ErrDevice, o.format, sf)
	}

	if o.otoCtx == nil {
		ctx, readyChan, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       of,
		})
		if err != nil {
			o.logger.Error().Err(err).Msg("Failed to open default audio device")
			return fmt.Errorf("%w: failed to create oto context: %w", audio.ErrDevice, err)
		}
		<-readyChan
		o.otoCtx = ctx
	}

	o.closePlayer()

	o.player = o.otoCtx.NewPlayer(&renderReader{
		render:        render,
		bytesPerFrame: sf.BytesPerFrame(),
	})
	o.player.Play()
	o.format = sf

	logStreamFormat(o.logger, sf)
	return nil
}

// Stop halts the player
func (o *Oto) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return notStarted(BackendOto)
	}
	o.player.Pause()
	return nil
}

// Pause pauses or resumes the player
func (o *Oto) Pause(paused bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return notStarted(BackendOto)
	}
	if paused {
		o.player.Pause()
	} else {
		o.player.Play()
	}
	return nil
}

// Format returns the negotiated stream format
func (o *Oto) Format() audio.StreamFormat {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.format
}

// Close releases output resources; a closed Oto cannot be started again
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closePlayer()
	o.closed = true
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			o.logger.Warn().Err(err).Msg("Oto context suspend error")
		}
	}
	return nil
}

// closePlayer must hold o.mu
func (o *Oto) closePlayer() {
	if o.player == nil {
		return
	}
	if err := o.player.Close(); err != nil {
		o.logger.Warn().Err(err).Msg("Oto player close error")
	}
	o.player = nil
}

// renderReader pulls whole frames from a RenderFunc
type renderReader struct {
	render        RenderFunc
	bytesPerFrame int
}

func (r *renderReader) Read(p []byte) (int, error) {
	frames := len(p) / r.bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	n := frames * r.bytesPerFrame
	r.render(p[:n], frames)
	return n, nil
}
