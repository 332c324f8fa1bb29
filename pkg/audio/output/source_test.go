// ABOUTME: Tests for BufferSource
// ABOUTME: Covers encoding, partial renders, end-of-buffer silence and looping
package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

func TestNewBufferSourceInvalid(t *testing.T) {
	if _, err := NewBufferSource([]int16{1, 2, 3}, 2, audio.FormatS16LE, false); !errors.Is(err, audio.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for partial frame, got %v", err)
	}
	if _, err := NewBufferSource([]int16{1, 2}, 0, audio.FormatS16LE, false); !errors.Is(err, audio.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero channels, got %v", err)
	}
	if _, err := NewBufferSource([]int16{1, 2}, 2, audio.SampleFormat(17), false); !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestBufferSourceRender(t *testing.T) {
	samples := []int16{1, -1, 2, -2, 3, -3}
	src, err := NewBufferSource(samples, 2, audio.FormatS16LE, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Frames() != 3 {
		t.Fatalf("expected 3 frames, got %d", src.Frames())
	}

	out := make([]byte, 2*4)
	src.Render(out, 2)
	for i := 0; i < 4; i++ {
		if got := int16(binary.LittleEndian.Uint16(out[i*2:])); got != samples[i] {
			t.Errorf("sample %d: expected %d, got %d", i, samples[i], got)
		}
	}
	if src.Position() != 2 {
		t.Errorf("expected position 2, got %d", src.Position())
	}
	if src.Done() {
		t.Error("expected source not done after 2 of 3 frames")
	}

	// one frame of data, then silence
	for i := range out {
		out[i] = 0xAA
	}
	src.Render(out, 2)
	if got := int16(binary.LittleEndian.Uint16(out[0:])); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := int16(binary.LittleEndian.Uint16(out[2:])); got != -3 {
		t.Errorf("expected -3, got %d", got)
	}
	if !bytes.Equal(out[4:], make([]byte, 4)) {
		t.Errorf("expected trailing silence, got %v", out[4:])
	}
	if !src.Done() {
		t.Error("expected source done")
	}
	if src.FramesRendered() != 3 {
		t.Errorf("expected 3 frames rendered, got %d", src.FramesRendered())
	}

	// further renders are silent
	for i := range out {
		out[i] = 0xAA
	}
	src.Render(out, 2)
	if !bytes.Equal(out, make([]byte, len(out))) {
		t.Errorf("expected silence after end, got %v", out)
	}
}

func TestBufferSourceLoop(t *testing.T) {
	samples := []int16{10, 20, 30}
	src, err := NewBufferSource(samples, 1, audio.FormatS16BE, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := make([]byte, 7*2)
	src.Render(out, 7)

	expected := []int16{10, 20, 30, 10, 20, 30, 10}
	for i, want := range expected {
		if got := int16(binary.BigEndian.Uint16(out[i*2:])); got != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, got)
		}
	}
	if src.Position() != 1 {
		t.Errorf("expected position 1 after wrapping, got %d", src.Position())
	}
	if src.Done() {
		t.Error("looping source should never be done")
	}
	if src.FramesRendered() != 7 {
		t.Errorf("expected 7 frames rendered, got %d", src.FramesRendered())
	}
}

func TestBufferSourceShortOutput(t *testing.T) {
	src, err := NewBufferSource([]int16{1, 2, 3, 4}, 2, audio.FormatS32LE, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// asks for 2 frames but only one fits
	out := make([]byte, 8+3)
	src.Render(out, 2)
	if src.Position() != 1 {
		t.Errorf("expected position 1, got %d", src.Position())
	}
	if got := int32(binary.LittleEndian.Uint32(out[0:])); got != 1<<16 {
		t.Errorf("expected %d, got %d", 1<<16, got)
	}
}

func TestBufferSourceReset(t *testing.T) {
	src, err := NewBufferSource([]int16{5, 6}, 1, audio.FormatFloat32, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := make([]byte, 8)
	src.Render(out, 2)
	if !src.Done() {
		t.Fatal("expected source done")
	}

	src.Reset()
	if src.Done() || src.Position() != 0 {
		t.Errorf("expected rewind, got position %d", src.Position())
	}
}

func TestBufferSourceEmpty(t *testing.T) {
	src, err := NewBufferSource(nil, 2, audio.FormatS16LE, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := []byte{1, 2, 3, 4}
	src.Render(out, 1)
	if !bytes.Equal(out, make([]byte, 4)) {
		t.Errorf("expected silence from empty looping source, got %v", out)
	}
}
