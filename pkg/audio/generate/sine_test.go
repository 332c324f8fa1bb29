// ABOUTME: Tests for the sine generator
// ABOUTME: Covers length, bounds, periodicity, quantization and validation
package generate

import (
	"errors"
	"math"
	"testing"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

func TestSineLength(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		duration   float64
	}{
		{"one second 48k", 48000, 1},
		{"half second 44.1k", 44100, 0.5},
		{"quarter second 8k", 8000, 0.25},
		{"fractional frames", 44100, 0.01234},
		{"odd rate", 22050.5, 1.3},
		{"zero duration", 48000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, err := Sine(tt.sampleRate, 440, tt.duration, DefaultAmplitude)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			expected := int(math.Floor(tt.sampleRate * tt.duration))
			if len(samples) != expected {
				t.Errorf("expected %d samples, got %d", expected, len(samples))
			}
		})
	}
}

func TestSineZeroDurationIsEmpty(t *testing.T) {
	samples, err := Tone(48000, 440, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if samples == nil {
		t.Fatal("expected an empty buffer, got nil")
	}
	if len(samples) != 0 {
		t.Errorf("expected 0 samples, got %d", len(samples))
	}
}

func TestSineZeroAmplitude(t *testing.T) {
	samples, err := Sine(48000, 1000, 0.125, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 6000 {
		t.Fatalf("expected 6000 samples, got %d", len(samples))
	}
	for i, s := range samples {
		if s != 0 {
			t.Fatalf("sample %d: expected 0, got %d", i, s)
		}
	}
}

func TestSineBounds(t *testing.T) {
	for _, amp := range []float64{0.1, 0.25, DefaultAmplitude, 0.9} {
		samples, err := Sine(44100, 997, 0.5, amp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		limit := amp * 32768
		for i, s := range samples {
			if math.Abs(float64(s)) > limit {
				t.Fatalf("amplitude %g: sample %d = %d exceeds %g", amp, i, s, limit)
			}
		}
	}
}

func TestSineFirstSamples(t *testing.T) {
	// one frame per quarter period
	samples, err := Sine(4, 1, 1, DefaultAmplitude)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []int16{0, 16384, 0, -16384}
	if len(samples) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(samples))
	}
	for i := range expected {
		if d := int(samples[i]) - int(expected[i]); d < -1 || d > 1 {
			t.Errorf("sample %d: expected %d, got %d", i, expected[i], samples[i])
		}
	}
}

func TestSineTruncatesTowardZero(t *testing.T) {
	samples, err := Sine(48000, 440, 0.05, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, s := range samples {
		exact := 0.3 * 32768 * math.Sin(2*math.Pi*440*float64(i)/48000)
		if math.Abs(float64(s)) > math.Abs(exact)+1e-3 {
			t.Fatalf("sample %d: %d rounded away from zero (exact %f)", i, s, exact)
		}
		if math.Abs(exact-float64(s)) >= 1+1e-3 {
			t.Fatalf("sample %d: %d is more than one step from %f", i, s, exact)
		}
	}
}

func TestSinePeriodicity(t *testing.T) {
	const (
		sampleRate = 48000.0
		frequency  = 480.0
		period     = int(sampleRate / frequency)
	)

	samples, err := Tone(sampleRate, frequency, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i+period < len(samples); i++ {
		d := int(samples[i]) - int(samples[i+period])
		if d < -1 || d > 1 {
			t.Fatalf("frame %d: %d vs %d one period later", i, samples[i], samples[i+period])
		}
	}
}

func TestSineSaturates(t *testing.T) {
	samples, err := Sine(4, 1, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if samples[1] != math.MaxInt16 {
		t.Errorf("expected positive peak to saturate at %d, got %d", math.MaxInt16, samples[1])
	}
	if samples[3] != math.MinInt16 {
		t.Errorf("expected negative peak to saturate at %d, got %d", math.MinInt16, samples[3])
	}
}

func TestSineInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		frequency  float64
		duration   float64
		amplitude  float64
	}{
		{"zero sample rate", 0, 440, 1, 0.5},
		{"negative sample rate", -48000, 440, 1, 0.5},
		{"negative duration", 48000, 440, -1, 0.5},
		{"NaN frequency", 48000, math.NaN(), 1, 0.5},
		{"infinite duration", 48000, 440, math.Inf(1), 0.5},
		{"NaN amplitude", 48000, 440, 1, math.NaN()},
		{"frame count overflow", 1e300, 440, 1e300, 0.5},
		{"frame count beyond int range", 1e10, 440, 1e10, 0.5},
		{"frame count just over limit", 1, 440, MaxFrames + 1, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, err := Sine(tt.sampleRate, tt.frequency, tt.duration, tt.amplitude)
			if !errors.Is(err, audio.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if samples != nil {
				t.Errorf("expected nil buffer on error, got %d samples", len(samples))
			}
		})
	}
}

func TestChannelsFrequencyMultiplier(t *testing.T) {
	buffers, err := Channels(48000, 200, 0.1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buffers) != 3 {
		t.Fatalf("expected 3 channels, got %d", len(buffers))
	}
	for ch, buf := range buffers {
		expected, err := Tone(48000, 200*float64(ch+1), 0.1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(buf) != len(expected) {
			t.Fatalf("channel %d: expected %d samples, got %d", ch, len(expected), len(buf))
		}
		for i := range buf {
			if buf[i] != expected[i] {
				t.Fatalf("channel %d sample %d: expected %d, got %d", ch, i, expected[i], buf[i])
			}
		}
	}
}

func TestChannelsInvalidCount(t *testing.T) {
	if _, err := Channels(48000, 200, 1, 0); !errors.Is(err, audio.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
