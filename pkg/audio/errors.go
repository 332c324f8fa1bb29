// ABOUTME: Error kinds shared by generator, file and device packages
// ABOUTME: Callers classify failures with errors.Is
package audio

import "errors"

var (
	// ErrInvalidInput reports arguments rejected before any work is done.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedFormat reports a sample format a table or backend cannot serve.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrDevice reports a failure of the audio output service.
	ErrDevice = errors.New("audio device error")
	// ErrIO reports a failure reading or writing an audio file.
	ErrIO = errors.New("audio i/o error")
)
