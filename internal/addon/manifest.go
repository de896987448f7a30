// Package addon reads and mutates add-on manifests (addon.xml). The version
// attribute is located through the XML token stream and rewritten with a byte
// splice, so every byte outside the attribute value survives the update.
package addon

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"

	"github.com/transtools/addonbump/internal/semver"
)

// Manifest file names. addon.xml sits inside each add-on directory;
// addon.xml.in is the template layout used by binary add-on repositories.
const (
	ManifestFile         = "addon.xml"
	TemplateManifestFile = "addon.xml.in"
)

// readFileFn and writeFileFn are function variables for testability.
var (
	readFileFn  = os.ReadFile
	writeFileFn = os.WriteFile
)

// ManifestNotFoundError indicates that an add-on directory has no manifest.
type ManifestNotFoundError struct {
	Dir string
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("no %s found in %q", ManifestFile, e.Dir)
}

// MalformedVersionError indicates that a manifest's version attribute cannot
// be parsed, so it cannot be incremented safely.
type MalformedVersionError struct {
	Path  string
	Value string
	Err   error
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("manifest %q has unparseable version %q: %v", e.Path, e.Value, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *MalformedVersionError) Unwrap() error {
	return e.Err
}

// versionAttrRegex locates the version attribute inside an already isolated
// addon start tag. The leading character class rejects attributes that merely
// end in "version".
var versionAttrRegex = regexp.MustCompile(`(?:^|[^\w:.-])version\s*=\s*"([^"]*)"`)

// Manifest is a loaded add-on manifest with the version attribute resolved
// to a byte range inside the raw document.
type Manifest struct {
	Path string

	// ID is the addon element's id attribute, "" when absent.
	ID string

	raw      []byte
	mode     fs.FileMode
	version  semver.SemVersion
	valStart int
	valEnd   int
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := readFileFn(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tagStart, tagEnd, elem, err := addonStartTag(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest %q: %w", path, err)
	}

	loc := versionAttrRegex.FindSubmatchIndex(raw[tagStart:tagEnd])
	if loc == nil {
		return nil, fmt.Errorf("manifest %q: addon element has no version attribute", path)
	}
	valStart := tagStart + loc[2]
	valEnd := tagStart + loc[3]

	value := string(raw[valStart:valEnd])
	version, err := semver.ParseVersion(value)
	if err != nil {
		return nil, &MalformedVersionError{Path: path, Value: value, Err: err}
	}

	var id string
	for _, attr := range elem.Attr {
		if attr.Name.Local == "id" {
			id = attr.Value
			break
		}
	}

	return &Manifest{
		Path:     path,
		ID:       id,
		raw:      raw,
		mode:     mode,
		version:  version,
		valStart: valStart,
		valEnd:   valEnd,
	}, nil
}

// addonStartTag returns the byte range of the root addon start tag along
// with the parsed element. Walking the token stream (instead of matching the
// whole document) keeps the XML declaration's own version pseudo-attribute
// out of consideration.
func addonStartTag(raw []byte) (int, int, xml.StartElement, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	var none xml.StartElement
	var prev int64
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return 0, 0, none, errors.New("no addon element found")
		}
		if err != nil {
			return 0, 0, none, fmt.Errorf("malformed XML: %w", err)
		}

		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "addon" {
				return 0, 0, none, fmt.Errorf("root element is <%s>, expected <addon>", se.Name.Local)
			}
			return int(prev), int(dec.InputOffset()), se.Copy(), nil
		}

		prev = dec.InputOffset()
	}
}

// Version returns the parsed manifest version.
func (m *Manifest) Version() semver.SemVersion {
	return m.version
}

// SetVersion replaces the version attribute value. All other bytes are left
// untouched.
func (m *Manifest) SetVersion(v semver.SemVersion) {
	value := []byte(v.String())

	updated := make([]byte, 0, len(m.raw)-(m.valEnd-m.valStart)+len(value))
	updated = append(updated, m.raw[:m.valStart]...)
	updated = append(updated, value...)
	updated = append(updated, m.raw[m.valEnd:]...)

	m.valEnd = m.valStart + len(value)
	m.raw = updated
	m.version = v
}

// InsertNews prepends entry to the manifest's <news> element, then collapses
// runs of blank lines the insertion may have produced. It is a no-op when the
// manifest has no news element.
func (m *Manifest) InsertNews(entry string) bool {
	marker := []byte("<news>")
	idx := bytes.Index(m.raw, marker)
	if idx < 0 {
		return false
	}

	var buf bytes.Buffer
	buf.Grow(len(m.raw) + len(entry) + 1)
	buf.Write(m.raw[:idx+len(marker)])
	buf.WriteByte('\n')
	buf.WriteString(entry)
	buf.Write(m.raw[idx+len(marker):])

	m.raw = bytes.ReplaceAll(buf.Bytes(), []byte("\n\n\n"), []byte("\n\n"))

	// The splice and the blank-line collapse may shift bytes ahead of the
	// version attribute, so its offsets are re-resolved.
	if tagStart, tagEnd, _, err := addonStartTag(m.raw); err == nil {
		if loc := versionAttrRegex.FindSubmatchIndex(m.raw[tagStart:tagEnd]); loc != nil {
			m.valStart = tagStart + loc[2]
			m.valEnd = tagStart + loc[3]
		}
	}
	return true
}

// Bytes returns the current manifest content.
func (m *Manifest) Bytes() []byte {
	return m.raw
}

// Save writes the manifest back to its original path, preserving the file
// mode observed at load time.
func (m *Manifest) Save() error {
	if err := writeFileFn(m.Path, m.raw, m.mode); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", m.Path, err)
	}
	return nil
}
