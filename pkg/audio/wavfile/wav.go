// ABOUTME: WAV writer and reader built on go-audio/wav
// ABOUTME: Converts between interleaved int16 buffers and 16-bit PCM files
package wavfile

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

const (
	// BitsPerChannel is the only sample width written
	BitsPerChannel = 16

	// wavFormatPCM is the WAVE_FORMAT_PCM format tag
	wavFormatPCM = 1
)

// Clip is the decoded content of a WAV file
type Clip struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Samples    []int16 // interleaved
}

// Frames returns the number of frames in the clip
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// BytesPerFrame returns channels * 2
func (c *Clip) BytesPerFrame() int {
	return c.Channels * c.BitDepth / 8
}

// Write stores interleaved samples as a 16-bit PCM WAV file, replacing any existing file
func Write(path string, samples []int16, channels, sampleRate int) error {
	if channels < 1 {
		return fmt.Errorf("%w: channel count must be positive, got %d", audio.ErrInvalidInput, channels)
	}
	if sampleRate < 1 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", audio.ErrInvalidInput, sampleRate)
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples do not divide into %d channels",
			audio.ErrInvalidInput, len(samples), channels)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", audio.ErrIO, path, err)
	}

	enc := wav.NewEncoder(f, sampleRate, BitsPerChannel, channels, wavFormatPCM)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: BitsPerChannel,
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("%w: failed to write %s: %w", audio.ErrIO, path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("%w: failed to finalize %s: %w", audio.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", audio.ErrIO, path, err)
	}

	return nil
}

// Read loads a 16-bit PCM WAV file
func Read(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", audio.ErrIO, path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a valid WAV file", audio.ErrIO, path)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: %s has format tag %d, want linear PCM",
			audio.ErrUnsupportedFormat, path, dec.WavAudioFormat)
	}
	if dec.BitDepth != BitsPerChannel {
		return nil, fmt.Errorf("%w: %s has %d bits per sample, want %d",
			audio.ErrUnsupportedFormat, path, dec.BitDepth, BitsPerChannel)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", audio.ErrIO, path, err)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}

	return &Clip{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Samples:    samples,
	}, nil
}
