// ABOUTME: Linear PCM sample format table
// ABOUTME: Maps each SampleFormat to its bit depth, width and flags
package audio

import (
	"fmt"
	"strings"
)

// SampleFormat identifies one of the linear PCM layouts an output device can negotiate
type SampleFormat int

const (
	FormatS16LE SampleFormat = iota
	FormatS16BE
	FormatS32LE
	FormatS32BE
	FormatFloat32
)

// FormatFlags describes the encoding of a sample format
type FormatFlags uint32

const (
	FlagSignedInteger FormatFlags = 1 << iota
	FlagBigEndian
	FlagFloat
	FlagPacked
)

// FormatInfo holds the attributes of a sample format
type FormatInfo struct {
	Name           string
	BitsPerChannel int
	BytesPerSample int
	Flags          FormatFlags
}

// BigEndian reports whether samples are stored most significant byte first
func (i FormatInfo) BigEndian() bool {
	return i.Flags&FlagBigEndian != 0
}

// Float reports whether samples are IEEE floats
func (i FormatInfo) Float() bool {
	return i.Flags&FlagFloat != 0
}

// Indexed by SampleFormat.
var formatTable = [...]FormatInfo{
	FormatS16LE:   {"s16le", 16, 2, FlagSignedInteger | FlagPacked},
	FormatS16BE:   {"s16be", 16, 2, FlagSignedInteger | FlagBigEndian | FlagPacked},
	FormatS32LE:   {"s32le", 32, 4, FlagSignedInteger | FlagPacked},
	FormatS32BE:   {"s32be", 32, 4, FlagSignedInteger | FlagBigEndian | FlagPacked},
	FormatFloat32: {"f32", 32, 4, FlagFloat | FlagPacked},
}

// Info returns the table entry for the format
func (f SampleFormat) Info() (FormatInfo, error) {
	if f < 0 || int(f) >= len(formatTable) {
		return FormatInfo{}, fmt.Errorf("%w: %d", ErrUnsupportedFormat, int(f))
	}
	return formatTable[f], nil
}

// Valid reports whether the format has a table entry
func (f SampleFormat) Valid() bool {
	return f >= 0 && int(f) < len(formatTable)
}

func (f SampleFormat) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
	return formatTable[f].Name
}

// AllFormats lists every supported format in table order
func AllFormats() []SampleFormat {
	formats := make([]SampleFormat, len(formatTable))
	for i := range formatTable {
		formats[i] = SampleFormat(i)
	}
	return formats
}

// ParseSampleFormat resolves a format name such as "s16le" or "f32"
func ParseSampleFormat(name string) (SampleFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "float32" || name == "float" {
		return FormatFloat32, nil
	}
	for i, info := range formatTable {
		if info.Name == name {
			return SampleFormat(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (supported: s16le, s16be, s32le, s32be, f32)", ErrUnsupportedFormat, name)
}
