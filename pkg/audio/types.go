// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats and sample widening helpers
package audio

import "fmt"

// StreamFormat describes a linear PCM stream with one frame per packet
type StreamFormat struct {
	SampleRate int
	Channels   int
	Format     SampleFormat
}

// NewStreamFormat validates and builds a stream format
func NewStreamFormat(sampleRate, channels int, format SampleFormat) (StreamFormat, error) {
	if sampleRate <= 0 {
		return StreamFormat{}, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidInput, sampleRate)
	}
	if channels <= 0 {
		return StreamFormat{}, fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidInput, channels)
	}
	if _, err := format.Info(); err != nil {
		return StreamFormat{}, err
	}
	return StreamFormat{
		SampleRate: sampleRate,
		Channels:   channels,
		Format:     format,
	}, nil
}

// BitsPerChannel returns the sample bit depth
func (s StreamFormat) BitsPerChannel() int {
	info, _ := s.Format.Info()
	return info.BitsPerChannel
}

// BytesPerFrame returns the size of one frame across all channels
func (s StreamFormat) BytesPerFrame() int {
	info, _ := s.Format.Info()
	return s.Channels * info.BytesPerSample
}

// BytesPerPacket equals BytesPerFrame since every packet carries one frame
func (s StreamFormat) BytesPerPacket() int {
	return s.BytesPerFrame()
}

func (s StreamFormat) String() string {
	return fmt.Sprintf("%dHz %dch %s", s.SampleRate, s.Channels, s.Format)
}

// SampleToInt32 left-justifies a 16-bit sample in a 32-bit container
func SampleToInt32(sample int16) int32 {
	return int32(sample) << 16
}

// SampleToFloat32 scales a 16-bit sample into [-1, 1)
func SampleToFloat32(sample int16) float32 {
	return float32(sample) / 32768
}
