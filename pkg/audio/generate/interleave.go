// ABOUTME: Channel interleaver
// ABOUTME: Combines per-channel buffers into frame-major PCM order
package generate

import (
	"fmt"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

// Interleave lays out channels frame-major: out[frame*len(channels)+ch] = channels[ch][frame].
// All channels must have the same length as channels[0].
func Interleave(channels [][]int16) ([]int16, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels to interleave", audio.ErrInvalidInput)
	}

	numChannels := len(channels)
	numFrames := len(channels[0])
	for ch, buf := range channels {
		if len(buf) != numFrames {
			return nil, fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				audio.ErrInvalidInput, ch, len(buf), numFrames)
		}
	}

	interleaved := make([]int16, numChannels*numFrames)
	for frame := 0; frame < numFrames; frame++ {
		shift := frame * numChannels
		for ch := 0; ch < numChannels; ch++ {
			interleaved[shift+ch] = channels[ch][frame]
		}
	}

	return interleaved, nil
}
