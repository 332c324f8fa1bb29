// ABOUTME: Byte order helpers for devices that only accept native-endian samples
// ABOUTME: Swaps rendered big-endian samples in place on little-endian hosts
package output

import (
	"encoding/binary"

	"github.com/Resonate-Protocol/pcmtone/pkg/audio"
)

var nativeBigEndian = binary.NativeEndian.Uint16([]byte{0x12, 0x34}) == 0x1234

// swapWidth returns the sample width to byte-swap, or 0 when the format is already native
func swapWidth(info audio.FormatInfo) int {
	if info.BigEndian() == nativeBigEndian {
		return 0
	}
	return info.BytesPerSample
}

// swapBytes reverses the byte order of every width-sized sample in buf
func swapBytes(buf []byte, width int) {
	switch width {
	case 2:
		for i := 0; i+1 < len(buf); i += 2 {
			buf[i], buf[i+1] = buf[i+1], buf[i]
		}
	case 4:
		for i := 0; i+3 < len(buf); i += 4 {
			buf[i], buf[i+1], buf[i+2], buf[i+3] = buf[i+3], buf[i+2], buf[i+1], buf[i]
		}
	}
}
