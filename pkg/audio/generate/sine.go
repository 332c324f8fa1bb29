// ABOUTME: Sine wave generator
// ABOUTME: Quantizes a sine of given frequency and amplitude to int16 samples
package generate

import (
	"fmt"
	"math"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

const (
	// DefaultAmplitude is half of full scale
	DefaultAmplitude = 0.5

	// fullScale is |math.MinInt16|
	fullScale = 32768.0

	// MaxFrames caps the length of a generated buffer
	MaxFrames = math.MaxInt32
)

// Sine returns trunc(sampleRate*duration) samples of
// amplitude * 32768 * sin(2*pi*frequency*t/sampleRate), truncated toward zero.
// Values beyond the int16 range saturate.
func Sine(sampleRate, frequency, duration, amplitude float64) ([]int16, error) {
	if err := checkFinite(sampleRate, frequency, duration, amplitude); err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %g", audio.ErrInvalidInput, sampleRate)
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative, got %g", audio.ErrInvalidInput, duration)
	}

	frames := sampleRate * duration
	if frames > MaxFrames {
		return nil, fmt.Errorf("%w: %g frames exceeds the limit of %d", audio.ErrInvalidInput, frames, MaxFrames)
	}

	samples := make([]int16, int(frames))

	for t := range samples {
		samples[t] = quantize(amplitude * fullScale * math.Sin(2*math.Pi*frequency*float64(t)/sampleRate))
	}

	return samples, nil
}

// Tone is Sine at DefaultAmplitude
func Tone(sampleRate, frequency, duration float64) ([]int16, error) {
	return Sine(sampleRate, frequency, duration, DefaultAmplitude)
}

// Channels generates one Tone per channel, channel c at baseFrequency*(c+1)
func Channels(sampleRate, baseFrequency, duration float64, channels int) ([][]int16, error) {
	return ChannelsWithAmplitude(sampleRate, baseFrequency, duration, DefaultAmplitude, channels)
}

// ChannelsWithAmplitude is Channels with an explicit amplitude
func ChannelsWithAmplitude(sampleRate, baseFrequency, duration, amplitude float64, channels int) ([][]int16, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count must be positive, got %d", audio.ErrInvalidInput, channels)
	}

	buffers := make([][]int16, channels)
	for ch := range buffers {
		buf, err := Sine(sampleRate, baseFrequency*float64(ch+1), duration, amplitude)
		if err != nil {
			return nil, err
		}
		buffers[ch] = buf
	}
	return buffers, nil
}

// quantize truncates toward zero and saturates at the int16 bounds
func quantize(v float64) int16 {
	v = math.Trunc(v)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func checkFinite(values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite argument %g", audio.ErrInvalidInput, v)
		}
	}
	return nil
}
