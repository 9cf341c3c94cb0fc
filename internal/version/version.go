// ABOUTME: Version constants
// ABOUTME: Identifies the client in logs and User-Agent headers
package version

const (
	// Version is the client version string.
	Version = "0.1.0"

	// Product is the client product name.
	Product = "pronounce-go"

	// Manufacturer is the project name reported alongside the product.
	Manufacturer = "Pronounce Labs"
)

// UserAgent returns the HTTP User-Agent value for this build.
func UserAgent() string {
	return Product + "/" + Version
}
