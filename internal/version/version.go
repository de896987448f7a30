package version

// toolVersion is the addonbump release version, overridable at build time via
// -ldflags "-X github.com/transtools/addonbump/internal/version.toolVersion=...".
var toolVersion = "0.3.0"

// GetVersion returns the current addonbump version.
func GetVersion() string {
	return toolVersion
}
