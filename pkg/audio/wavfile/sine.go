// ABOUTME: Multi-channel sine WAV helper
// ABOUTME: Generates one tone per channel, interleaves and writes at 48 kHz
package wavfile

import (
	"github.com/Resonate-Protocol/pcmtone/pkg/audio/generate"
)

const (
	SineSampleRate   = 48000
	DefaultFrequency = 200.0
	DefaultDuration  = 2.0
)

// SineWave writes a channels-wide sine WAV where channel c plays frequency*(c+1)
func SineWave(path string, channels int, frequency, duration float64) error {
	return SineWaveAt(path, SineSampleRate, channels, frequency, duration, generate.DefaultAmplitude)
}

// SineWaveAt is SineWave with an explicit sample rate and amplitude
func SineWaveAt(path string, sampleRate, channels int, frequency, duration, amplitude float64) error {
	buffers, err := generate.ChannelsWithAmplitude(float64(sampleRate), frequency, duration, amplitude, channels)
	if err != nil {
		return err
	}

	samples, err := generate.Interleave(buffers)
	if err != nil {
		return err
	}

	return Write(path, samples, channels, sampleRate)
}
