package addon

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// maxSearchDepth bounds the template manifest walk.
const maxSearchDepth = 4

// statFn is a function variable for testability.
var statFn = os.Stat

// FindManifest returns the manifest path for an add-on directory, or a
// ManifestNotFoundError when the directory carries no addon.xml.
func FindManifest(dir string) (string, error) {
	path := filepath.Join(dir, ManifestFile)
	if info, err := statFn(path); err == nil && !info.IsDir() {
		return path, nil
	}
	return "", &ManifestNotFoundError{Dir: dir}
}

// FindTemplateManifest walks root looking for an addon.xml.in, the manifest
// layout of binary add-on repositories. The first match wins; "" is returned
// when none exists.
func FindTemplateManifest(root string, excludes []string) string {
	return findFile(root, TemplateManifestFile, 0, excludes)
}

// FindChangelog walks root looking for a changelog.txt next to or below the
// template manifest.
func FindChangelog(root string, excludes []string) string {
	return findFile(root, "changelog.txt", 0, excludes)
}

func findFile(dir, name string, depth int, excludes []string) string {
	if depth > maxSearchDepth {
		return ""
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directories are skipped, not fatal.
		return ""
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.Name() == name {
			return filepath.Join(dir, entry.Name())
		}
	}

	for _, entry := range entries {
		if !entry.IsDir() || shouldExclude(entry.Name(), excludes) {
			continue
		}
		if found := findFile(filepath.Join(dir, entry.Name()), name, depth+1, excludes); found != "" {
			return found
		}
	}

	return ""
}

// shouldExclude checks if a directory should be skipped during the walk.
func shouldExclude(name string, excludes []string) bool {
	// Hidden directories never hold manifests.
	if strings.HasPrefix(name, ".") {
		return true
	}

	skipDirs := []string{"node_modules", "vendor", "__pycache__", "build", "dist", "target"}
	if slices.Contains(skipDirs, name) {
		return true
	}

	for _, pattern := range excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}

	return false
}
