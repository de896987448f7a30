// Package report emits the machine-readable bump summary consumed by the
// downstream pull-request step.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/sjson"
)

// Function variables for testability.
var (
	writeFileFn = os.WriteFile
	nowFn       = time.Now
)

// Bump records a single add-on version change.
type Bump struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Previous string `json:"previous"`
	Version  string `json:"version"`
}

// Write renders the report document and writes it to path. The document is
// assembled field by field so the output key order stays stable across runs.
func Write(path string, bumps []Bump) error {
	doc := []byte("{}")

	var err error
	if doc, err = sjson.SetBytes(doc, "generated", nowFn().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if doc, err = sjson.SetBytes(doc, "count", len(bumps)); err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if doc, err = sjson.SetRawBytes(doc, "addons", []byte("[]")); err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	for i, b := range bumps {
		prefix := fmt.Sprintf("addons.%d.", i)
		fields := []struct {
			key   string
			value string
		}{
			{"id", b.ID},
			{"path", b.Path},
			{"previous", b.Previous},
			{"version", b.Version},
		}
		for _, f := range fields {
			if doc, err = sjson.SetBytes(doc, prefix+f.key, f.value); err != nil {
				return fmt.Errorf("failed to build report entry for %q: %w", b.ID, err)
			}
		}
	}

	doc = append(doc, '\n')
	if err := writeFileFn(path, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write report %q: %w", path, err)
	}

	return nil
}
