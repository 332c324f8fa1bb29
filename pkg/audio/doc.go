// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines sample formats, stream formats and error kinds
// Package audio provides the fundamental types shared by the pcmtone packages.
//
// This package defines:
//   - SampleFormat: one of the five linear PCM layouts a device can negotiate
//   - FormatInfo: bit depth, sample width and flag set of a SampleFormat
//   - StreamFormat: sample rate, channel count and sample format of a stream
//
// It also provides the error kinds returned across the module
// (ErrInvalidInput, ErrUnsupportedFormat, ErrDevice, ErrIO) and helpers for
// widening 16-bit samples to the 32-bit integer and float layouts.
//
// Example:
//
//	sf, err := audio.NewStreamFormat(48000, 2, audio.FormatS16LE)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sf.BytesPerFrame()) // 4
package audio
