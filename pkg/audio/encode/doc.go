// ABOUTME: Audio encoder package for packing samples into device byte layouts
// ABOUTME: Provides Encoder interface and the linear PCM implementation
// Package encode converts 16-bit samples into the byte layout of a sample format.
//
// Supports every audio.SampleFormat: signed 16-bit and 32-bit integers in
// either byte order, and 32-bit float.
//
// Example:
//
//	encoder, err := encode.NewPCM(audio.FormatS32BE)
//	data, err := encoder.Encode(samples)
package encode
