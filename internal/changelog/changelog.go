// Package changelog maintains the flat changelog.txt files shipped with
// add-ons: new entries go on top, previous entries are never touched.
package changelog

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Function variables for testability.
var (
	readFileFn  = os.ReadFile
	writeFileFn = os.WriteFile
	nowFn       = time.Now
)

// Entry renders a changelog block for a new version. The wording matches the
// entries Weblate-driven bumps have produced historically, so existing
// changelogs stay uniform:
//
//	v1.0.1 (2021-07-17)
//	- Translations updates from Weblate
//		- en_gb, en_us
func Entry(version string, languages []string, addDate bool) string {
	heading := "v" + version
	if addDate {
		heading += fmt.Sprintf(" (%s)", nowFn().Format("2006-01-02"))
	}

	return fmt.Sprintf("%s\n- Translations updates from Weblate\n\t- %s\n\n",
		heading, strings.Join(languages, ", "))
}

// Prepend writes entry to the top of the changelog at path, keeping all
// existing content below it.
func Prepend(path, entry string) error {
	content, err := readFileFn(path)
	if err != nil {
		return fmt.Errorf("failed to read changelog %q: %w", path, err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	updated := append([]byte(entry), content...)
	if err := writeFileFn(path, updated, mode); err != nil {
		return fmt.Errorf("failed to write changelog %q: %w", path, err)
	}

	return nil
}
