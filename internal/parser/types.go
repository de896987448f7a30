package parser

import "fmt"

// Format identifies how a sync target stores its version.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatRaw   Format = "raw"
	FormatRegex Format = "regex"
)

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex:
		return true
	}
	return false
}

// ParseFormat converts a config string into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unsupported sync format: %q", s)
	}
	return f, nil
}

// Target describes a file kept in lockstep with a bumped manifest version.
type Target struct {
	// Path is resolved relative to the add-on directory.
	Path string

	// Format selects the write strategy.
	Format Format

	// Field is the dot-notation field path for structured formats.
	Field string

	// Pattern is a regex with one capturing group for the regex format.
	Pattern string
}
