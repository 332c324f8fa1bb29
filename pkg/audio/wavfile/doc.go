// ABOUTME: WAV file package for persisting interleaved 16-bit PCM
// ABOUTME: Provides Write, Read and the multi-channel SineWave helper
// Package wavfile reads and writes 16-bit linear PCM WAV files.
//
// Files are written signed, little-endian and packed, with
// bytesPerFrame = channels * 2. SineWave renders one tone per channel,
// channel c at frequency*(c+1), and writes the result at 48 kHz.
//
// Example:
//
//	err := wavfile.SineWave("sine.wav", 2, wavfile.DefaultFrequency, wavfile.DefaultDuration)
//	clip, err := wavfile.Read("sine.wav")
package wavfile
