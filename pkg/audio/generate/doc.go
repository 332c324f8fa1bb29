// ABOUTME: Waveform generation package producing 16-bit channel buffers
// ABOUTME: Provides sine synthesis and frame-major channel interleaving
// Package generate synthesizes quantized test signals.
//
// Sine produces one channel of 16-bit samples; Interleave combines several
// equally long channels into the frame-major layout expected by PCM files
// and devices. Both are pure functions that allocate a fresh buffer per
// call and are safe for concurrent use.
//
// Example:
//
//	left, _ := generate.Tone(48000, 440, 1)
//	right, _ := generate.Tone(48000, 880, 1)
//	pcm, err := generate.Interleave([][]int16{left, right})
package generate
