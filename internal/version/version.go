// ABOUTME: Version information for pcmtone
// ABOUTME: Product, manufacturer and version strings reported by the CLI
package version

const (
	// Version is the release version
	Version = "0.1.0"

	// Product is the program name
	Product = "pcmtone"

	// Manufacturer identifies the publisher
	Manufacturer = "Resonate Protocol"
)

// String returns the version line printed by `pcmtone version`
func String() string {
	return Product + " " + Version + " (" + Manufacturer + ")"
}
