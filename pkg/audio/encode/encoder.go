// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for sample encoders
package encode

// Encoder encodes int16 samples to a byte layout
type Encoder interface {
	// Encode converts samples to a newly allocated byte slice
	Encode(samples []int16) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
