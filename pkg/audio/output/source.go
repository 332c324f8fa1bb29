// ABOUTME: Precomputed buffer source for render callbacks
// ABOUTME: Pre-encodes an interleaved buffer so the audio thread only copies bytes
package output

import (
	"fmt"
	"sync/atomic"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
	"github.com/Resonate-Protocol/pcmtone/pkg/audio/encode"
)

// BufferSource serves an interleaved buffer, encoded ahead of time, to a Device
type BufferSource struct {
	data          []byte
	bytesPerFrame int
	frames        int
	loop          bool

	pos      atomic.Int64 // next frame to render
	rendered atomic.Int64 // frames of buffer data handed to the device
}

// NewBufferSource encodes samples for the given channel count and sample format
func NewBufferSource(samples []int16, channels int, format audio.SampleFormat, loop bool) (*BufferSource, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count must be positive, got %d", audio.ErrInvalidInput, channels)
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not divide into %d channels",
			audio.ErrInvalidInput, len(samples), channels)
	}

	encoder, err := encode.NewPCM(format)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()

	data, err := encoder.Encode(samples)
	if err != nil {
		return nil, err
	}

	info, _ := format.Info()
	return &BufferSource{
		data:          data,
		bytesPerFrame: channels * info.BytesPerSample,
		frames:        len(samples) / channels,
		loop:          loop,
	}, nil
}

// Render implements RenderFunc. Output past the end of a non-looping buffer is silence.
func (s *BufferSource) Render(out []byte, frames int) {
	n := frames * s.bytesPerFrame
	if n > len(out) {
		n = len(out) - len(out)%s.bytesPerFrame
	}

	start := s.pos.Load()
	pos := int(start) * s.bytesPerFrame
	written := 0
	for written < n {
		if pos >= len(s.data) {
			if !s.loop || len(s.data) == 0 {
				break
			}
			pos = 0
		}
		c := copy(out[written:n], s.data[pos:])
		written += c
		pos += c
	}
	clear(out[written:n])

	// a concurrent Reset wins over this render's position
	s.pos.CompareAndSwap(start, int64(pos/s.bytesPerFrame))
	s.rendered.Add(int64(written / s.bytesPerFrame))
}

// Done reports whether a non-looping source has rendered its whole buffer
func (s *BufferSource) Done() bool {
	return !s.loop && int(s.pos.Load()) >= s.frames
}

// Position returns the next frame to be rendered
func (s *BufferSource) Position() int {
	return int(s.pos.Load())
}

// FramesRendered returns the number of buffer frames rendered so far, including loops
func (s *BufferSource) FramesRendered() int64 {
	return s.rendered.Load()
}

// Frames returns the buffer length in frames
func (s *BufferSource) Frames() int {
	return s.frames
}

// Loop reports whether the source wraps at its end
func (s *BufferSource) Loop() bool {
	return s.loop
}

// Reset rewinds the source to its first frame
func (s *BufferSource) Reset() {
	s.pos.Store(0)
}
