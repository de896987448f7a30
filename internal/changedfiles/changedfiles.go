// Package changedfiles parses the changed-file listing handed over by CI and
// derives the add-on directories and languages affected by a translation
// commit.
package changedfiles

import (
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// Language resource basenames that qualify a change for a version bump.
const (
	stringsFile  = "strings.po"
	langInfoFile = "langinfo.xml"
)

// readFileFn is a function variable for testability.
var readFileFn = os.ReadFile

// Load reads a changed-file listing from a JSON file. The document is either
// a bare array of paths or an object carrying the array under field.
func Load(jsonPath, field string) ([]string, error) {
	data, err := readFileFn(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read changed-file list %q: %w", jsonPath, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("malformed JSON in changed-file list %q", jsonPath)
	}

	doc := gjson.ParseBytes(data)
	arr := doc
	if !doc.IsArray() {
		arr = doc.Get(field)
		if !arr.IsArray() {
			return nil, fmt.Errorf("changed-file list %q: expected an array or an object with array field %q", jsonPath, field)
		}
	}

	var files []string
	for _, item := range arr.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("changed-file list %q: non-string entry %s", jsonPath, item.Raw)
		}
		files = append(files, item.String())
	}

	return files, nil
}

// isLanguageResource reports whether p is a translation file inside a
// language resource directory.
func isLanguageResource(p, prefix string) bool {
	if !strings.Contains(p, prefix) {
		return false
	}
	base := path.Base(p)
	return base == stringsFile || base == langInfoFile
}

// AddonDirs returns the sorted, de-duplicated top-level add-on directories
// that contain changed language resources. The add-on directory is the first
// path segment, which covers both language add-ons (resource.language.en_gb)
// and add-ons bundling language subfolders (metadata.universal).
func AddonDirs(files []string, prefix string) []string {
	seen := make(map[string]bool)
	var dirs []string

	for _, f := range files {
		if !isLanguageResource(f, prefix) {
			continue
		}
		dir, _, found := strings.Cut(f, "/")
		if !found || dir == "" {
			continue
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	slices.Sort(dirs)
	return dirs
}

// Languages returns the sorted language codes touched by the changed files.
// The code is the language resource directory name with prefix stripped,
// e.g. "resource.language.en_gb" -> "en_gb".
func Languages(files []string, prefix string) []string {
	seen := make(map[string]bool)
	var langs []string

	for _, f := range files {
		if !isLanguageResource(f, prefix) {
			continue
		}
		for _, seg := range strings.Split(path.Dir(f), "/") {
			if !strings.HasPrefix(seg, prefix) {
				continue
			}
			code := strings.TrimPrefix(seg, prefix)
			if code != "" && !seen[code] {
				seen[code] = true
				langs = append(langs, code)
			}
		}
	}

	slices.Sort(langs)
	return langs
}

// SynthesizeAll builds a changed-file list covering every language add-on
// directory under root, so "all" runs need no CI file list.
func SynthesizeAll(root, prefix string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", root, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		files = append(files, path.Join(entry.Name(), "resources", stringsFile))
	}

	return files, nil
}
