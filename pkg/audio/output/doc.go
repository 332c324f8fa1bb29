// ABOUTME: Audio output package driving the default playback device
// ABOUTME: Provides the Device interface, render callbacks and backend implementations
// Package output opens the system's default playback device and drives it
// from a caller-supplied render callback.
//
// A Device negotiates one of the five audio.SampleFormat layouts, installs a
// RenderFunc that the backend invokes from its real-time audio thread, and
// exposes a Start/Stop/Pause lifecycle. Backends:
//   - Malgo (default): miniaudio, every sample format
//   - Oto: s16le and f32 only
//   - PortAudio: requires building with -tags portaudio
//
// BufferSource serves a precomputed interleaved buffer as a RenderFunc.
//
// Example:
//
//	dev, err := output.NewMalgo(logger)
//	defer dev.Close()
//	src, err := output.NewBufferSource(samples, 2, audio.FormatS16LE, false)
//	err = dev.Start(audio.FormatS16LE, 48000, 2, src.Render)
package output
