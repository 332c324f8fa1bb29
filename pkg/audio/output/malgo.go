// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Uses miniaudio via malgo to drive a render callback on the default playback device
package output

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	logger   zerolog.Logger
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	format   audio.StreamFormat
	running  bool

	// read by the audio thread; written only while no device is running
	render        RenderFunc
	bytesPerFrame int
	swap          int

	mu sync.Mutex
}

// NewMalgo opens the miniaudio context for the default playback device
func NewMalgo(logger zerolog.Logger) (Device, error) {
	logger = logger.With().Str("backend", BackendMalgo).Logger()

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		logger.Debug().Msg(strings.TrimSpace(message))
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open default audio device")
		return nil, fmt.Errorf("%w: failed to open default audio device: %w", audio.ErrDevice, err)
	}

	return &Malgo{
		logger:   logger,
		malgoCtx: ctx,
	}, nil
}

// Start configures the device for the requested format and starts rendering
func (m *Malgo) Start(format audio.SampleFormat, sampleRate, channels int, render RenderFunc) error {
	sf, info, err := negotiate(format, sampleRate, channels, render)
	if err != nil {
		m.logger.Error().Err(err).Msg("The requested audio format is unsupported")
		return err
	}

	var deviceFormat malgo.FormatType
	switch {
	case info.Float():
		deviceFormat = malgo.FormatF32
	case info.BitsPerChannel == 32:
		deviceFormat = malgo.FormatS32
	default:
		deviceFormat = malgo.FormatS16
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.malgoCtx == nil {
		return fmt.Errorf("%w: malgo output is closed", audio.ErrDevice)
	}

	// Replace any previous stream
	m.closeDevice()

	m.render = render
	m.bytesPerFrame = sf.BytesPerFrame()
	m.swap = swapWidth(info)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = deviceFormat
	deviceConfig.Playback.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: m.dataCallback,
	})
	if err != nil {
		m.logger.Error().Err(err).Msg("Failed to set stream format")
		return fmt.Errorf("%w: failed to initialize playback device: %w", audio.ErrDevice, err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		m.logger.Error().Err(err).Msg("Unable to start audio device")
		return fmt.Errorf("%w: failed to start device: %w", audio.ErrDevice, err)
	}

	m.device = device
	m.format = sf
	m.running = true

	logStreamFormat(m.logger, sf)
	return nil
}

// dataCallback is called by malgo to fill the audio output buffer
func (m *Malgo) dataCallback(pOutput, _ []byte, frameCount uint32) {
	n := int(frameCount) * m.bytesPerFrame
	if n > len(pOutput) {
		n = len(pOutput)
	}
	m.render(pOutput[:n], int(frameCount))
	if m.swap != 0 {
		swapBytes(pOutput[:n], m.swap)
	}
}

// Stop halts the device
func (m *Malgo) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return notStarted(BackendMalgo)
	}
	m.running = false
	if err := m.device.Stop(); err != nil {
		return fmt.Errorf("%w: failed to stop device: %w", audio.ErrDevice, err)
	}
	return nil
}

// Pause stops the device or restarts it; a failed restart leaves it stopped
func (m *Malgo) Pause(paused bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return notStarted(BackendMalgo)
	}

	if paused {
		m.running = false
		if err := m.device.Stop(); err != nil {
			return fmt.Errorf("%w: failed to pause device: %w", audio.ErrDevice, err)
		}
		return nil
	}

	if m.running {
		return nil
	}
	if err := m.device.Start(); err != nil {
		m.logger.Error().Err(err).Msg("Unable to restart audio device after pausing")
		if stopErr := m.device.Stop(); stopErr != nil {
			m.logger.Warn().Err(stopErr).Msg("Device stop error")
		}
		return fmt.Errorf("%w: failed to restart device: %w", audio.ErrDevice, err)
	}
	m.running = true
	return nil
}

// Format returns the negotiated stream format
func (m *Malgo) Format() audio.StreamFormat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.format
}

// Close releases the device and the miniaudio context
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeDevice()

	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			m.logger.Warn().Err(err).Msg("Malgo context uninit error")
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	return nil
}

// closeDevice stops and uninitializes the device (must hold m.mu)
func (m *Malgo) closeDevice() {
	if m.device == nil {
		return
	}
	if err := m.device.Stop(); err != nil {
		m.logger.Warn().Err(err).Msg("Device stop error")
	}
	m.device.Uninit()
	m.device = nil
	m.running = false
}
