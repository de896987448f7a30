// Package semver handles the MAJOR.MINOR.PATCH version scheme used by
// add-on manifests.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SemVersion represents an add-on version (major.minor.patch+build).
// Kodi-style manifests allow trailing build metadata such as "+matrix.1";
// it is carried through bumps untouched.
type SemVersion struct {
	Major int
	Minor int
	Patch int
	Build string
}

var (
	// versionRegex matches add-on version strings. It captures:
	//   1. Major version
	//   2. Minor version
	//   3. Patch version
	//   4. (optional) Build metadata
	versionRegex = regexp.MustCompile(
		`^([0-9]+)\.([0-9]+)\.([0-9]+)` + // major.minor.patch
			`(?:\+([0-9A-Za-z\-\.]+))?$`, // optional build metadata
	)

	// ErrInvalidVersion is returned when a version string does not conform
	// to the expected format.
	ErrInvalidVersion = errors.New("invalid version format")
)

// maxVersionLength is the maximum allowed length for a version string.
// This prevents potential ReDoS attacks on the regex parser.
const maxVersionLength = 128

// String returns the string representation of the version.
func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(16)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// ParseVersion parses an add-on version string.
//
// Supported formats:
//   - "1.2.3" (basic version)
//   - "1.2.3+matrix.1" (with build metadata)
//
// Returns ErrInvalidVersion (wrapped) when the input exceeds maxVersionLength
// or does not match the major.minor.patch pattern.
func ParseVersion(s string) (SemVersion, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return SemVersion{}, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}

	matches := versionRegex.FindStringSubmatch(trimmed)
	if matches == nil {
		return SemVersion{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	major, err := strconv.Atoi(matches[1])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid major version: %s", ErrInvalidVersion, err.Error())
	}
	minor, err := strconv.Atoi(matches[2])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid minor version: %s", ErrInvalidVersion, err.Error())
	}
	patch, err := strconv.Atoi(matches[3])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid patch version: %s", ErrInvalidVersion, err.Error())
	}

	return SemVersion{Major: major, Minor: minor, Patch: patch, Build: matches[4]}, nil
}

// BumpPatch returns the version with the patch component incremented by one.
// Major, minor, and build metadata are preserved as-is.
func (v SemVersion) BumpPatch() SemVersion {
	return SemVersion{
		Major: v.Major,
		Minor: v.Minor,
		Patch: v.Patch + 1,
		Build: v.Build,
	}
}
