//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Drives a render callback through a default PortAudio output stream
package output

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

// FramesPerBuffer is the fixed PortAudio callback size
const FramesPerBuffer = 512

// PortAudio output implementation
type PortAudio struct {
	logger  zerolog.Logger
	stream  *portaudio.Stream
	format  audio.StreamFormat
	running bool
	closed  bool

	// used by the audio thread
	render   RenderFunc
	scratch  []byte
	channels int
	width    int
	order    binary.ByteOrder

	mu sync.Mutex
}

// NewPortAudio initializes PortAudio
func NewPortAudio(logger zerolog.Logger) (Device, error) {
	logger = logger.With().Str("backend", BackendPortAudio).Logger()
	if err := portaudio.Initialize(); err != nil {
		logger.Error().Err(err).Msg("Failed to open default audio device")
		return nil, fmt.Errorf("%w: failed to initialize portaudio: %w", audio.ErrDevice, err)
	}
	return &PortAudio{logger: logger}, nil
}

// Start opens a default output stream in the requested format
func (p *PortAudio) Start(format audio.SampleFormat, sampleRate, channels int, render RenderFunc) error {
	sf, info, err := negotiate(format, sampleRate, channels, render)
	if err != nil {
		p.logger.Error().Err(err).Msg("The requested audio format is unsupported")
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("%w: portaudio output is closed", audio.ErrDevice)
	}
	p.closeStream()

	p.render = render
	p.channels = channels
	p.width = info.BytesPerSample
	p.scratch = make([]byte, FramesPerBuffer*sf.BytesPerFrame())
	p.order = binary.LittleEndian
	if info.BigEndian() {
		p.order = binary.BigEndian
	}

	var callback interface{}
	switch {
	case info.Float():
		callback = p.processFloat32
	case info.BitsPerChannel == 32:
		callback = p.processInt32
	default:
		callback = p.processInt16
	}

	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), FramesPerBuffer, callback)
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to set stream format")
		return fmt.Errorf("%w: failed to open stream: %w", audio.ErrDevice, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		p.logger.Error().Err(err).Msg("Unable to start audio stream")
		return fmt.Errorf("%w: failed to start stream: %w", audio.ErrDevice, err)
	}

	p.stream = stream
	p.format = sf
	p.running = true

	logStreamFormat(p.logger, sf)
	return nil
}

// fill renders into scratch and returns the rendered bytes
func (p *PortAudio) fill(samples int) []byte {
	frames := samples / p.channels
	n := samples * p.width
	if n > len(p.scratch) {
		n = len(p.scratch)
	}
	buf := p.scratch[:n]
	p.render(buf, frames)
	return buf
}

func (p *PortAudio) processInt16(out []int16) {
	buf := p.fill(len(out))
	n := len(buf) / 2
	for i := 0; i < n; i++ {
		out[i] = int16(p.order.Uint16(buf[i*2:]))
	}
	clear(out[n:])
}

func (p *PortAudio) processInt32(out []int32) {
	buf := p.fill(len(out))
	n := len(buf) / 4
	for i := 0; i < n; i++ {
		out[i] = int32(p.order.Uint32(buf[i*4:]))
	}
	clear(out[n:])
}

func (p *PortAudio) processFloat32(out []float32) {
	buf := p.fill(len(out))
	n := len(buf) / 4
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(p.order.Uint32(buf[i*4:]))
	}
	clear(out[n:])
}

// Stop halts the stream
func (p *PortAudio) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return notStarted(BackendPortAudio)
	}
	if !p.running {
		return nil
	}
	p.running = false
	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("%w: failed to stop stream: %w", audio.ErrDevice, err)
	}
	return nil
}

// Pause stops the stream or restarts it; a failed restart leaves it stopped
func (p *PortAudio) Pause(paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return notStarted(BackendPortAudio)
	}
	if paused == !p.running {
		return nil
	}
	if paused {
		p.running = false
		if err := p.stream.Stop(); err != nil {
			return fmt.Errorf("%w: failed to pause stream: %w", audio.ErrDevice, err)
		}
		return nil
	}
	if err := p.stream.Start(); err != nil {
		p.logger.Error().Err(err).Msg("Unable to restart audio stream after pausing")
		return fmt.Errorf("%w: failed to restart stream: %w", audio.ErrDevice, err)
	}
	p.running = true
	return nil
}

// Format returns the negotiated stream format
func (p *PortAudio) Format() audio.StreamFormat {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.format
}

// Close releases resources
func (p *PortAudio) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closeStream()
	p.closed = true
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("%w: failed to terminate portaudio: %w", audio.ErrDevice, err)
	}
	return nil
}

// closeStream must hold p.mu
func (p *PortAudio) closeStream() {
	if p.stream == nil {
		return
	}
	if p.running {
		if err := p.stream.Stop(); err != nil {
			p.logger.Warn().Err(err).Msg("Stream stop error")
		}
	}
	if err := p.stream.Close(); err != nil {
		p.logger.Warn().Err(err).Msg("Stream close error")
	}
	p.stream = nil
	p.running = false
}
