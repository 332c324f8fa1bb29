// ABOUTME: Linear PCM encoder
// ABOUTME: Encodes int16 samples to 16/32-bit integer or float bytes in either byte order
package encode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

// PCMEncoder encodes linear PCM audio
type PCMEncoder struct {
	format audio.SampleFormat
	info   audio.FormatInfo
	order  binary.ByteOrder
}

// NewPCM creates a new PCM encoder for the given sample format
func NewPCM(format audio.SampleFormat) (Encoder, error) {
	info, err := format.Info()
	if err != nil {
		return nil, fmt.Errorf("invalid format for PCM encoder: %w", err)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if info.BigEndian() {
		order = binary.BigEndian
	}

	return &PCMEncoder{
		format: format,
		info:   info,
		order:  order,
	}, nil
}

// Encode converts int16 samples to PCM bytes
func (e *PCMEncoder) Encode(samples []int16) ([]byte, error) {
	output := make([]byte, len(samples)*e.info.BytesPerSample)
	e.encodeInto(output, samples)
	return output, nil
}

// encodeInto writes as many whole samples as fit into dst and returns the bytes written
func (e *PCMEncoder) encodeInto(dst []byte, samples []int16) int {
	width := e.info.BytesPerSample
	n := len(dst) / width
	if n > len(samples) {
		n = len(samples)
	}

	switch {
	case e.info.Float():
		for i := 0; i < n; i++ {
			e.order.PutUint32(dst[i*4:], math.Float32bits(audio.SampleToFloat32(samples[i])))
		}
	case width == 4:
		for i := 0; i < n; i++ {
			e.order.PutUint32(dst[i*4:], uint32(audio.SampleToInt32(samples[i])))
		}
	default:
		for i := 0; i < n; i++ {
			e.order.PutUint16(dst[i*2:], uint16(samples[i]))
		}
	}

	return n * width
}

// Format returns the sample format this encoder produces
func (e *PCMEncoder) Format() audio.SampleFormat {
	return e.format
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
