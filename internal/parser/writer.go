// Package parser writes version values into sync-target files of various
// formats, preserving as much of the surrounding content as each format
// allows.
package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"
)

// Function variables for testability.
var (
	readFileFn  = os.ReadFile
	writeFileFn = os.WriteFile
)

// filePerm is the mode for rewritten sync targets.
const filePerm = os.FileMode(0o644)

// Write writes a version into the target file.
func Write(target Target, version string) error {
	if target.Path == "" {
		return fmt.Errorf("sync target path is required")
	}

	if !target.Format.IsValid() {
		return fmt.Errorf("invalid format: %s", target.Format)
	}

	switch target.Format {
	case FormatJSON:
		return writeJSON(target.Path, target.Field, version)
	case FormatYAML:
		return writeYAML(target.Path, target.Field, version)
	case FormatTOML:
		return writeTOML(target.Path, target.Field, version)
	case FormatRaw:
		return writeRaw(target.Path, version)
	case FormatRegex:
		return writeRegex(target.Path, target.Pattern, version)
	default:
		return fmt.Errorf("unsupported format: %s", target.Format)
	}
}

// writeJSON updates a JSON file using sjson to preserve formatting and
// field order.
func writeJSON(path, field, version string) error {
	if field == "" {
		return fmt.Errorf("field is required for JSON format")
	}

	data, err := readFileFn(path)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", path, err)
	}

	updated, err := sjson.SetBytes(data, field, version)
	if err != nil {
		return fmt.Errorf("failed to set version in %q: %w", path, err)
	}

	// Ensure trailing newline
	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}

	if err := writeFileFn(path, updated, filePerm); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}

	return nil
}

// writeYAML updates a YAML file.
func writeYAML(path, field, version string) error {
	if field == "" {
		return fmt.Errorf("field is required for YAML format")
	}

	data, err := readFileFn(path)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", path, err)
	}

	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}

	if err := setNestedValue(obj, field, version); err != nil {
		return fmt.Errorf("in file %q: %w", path, err)
	}

	updated, err := yaml.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML for %q: %w", path, err)
	}

	if err := writeFileFn(path, updated, filePerm); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}

	return nil
}

// writeTOML updates a TOML file.
func writeTOML(path, field, version string) error {
	if field == "" {
		return fmt.Errorf("field is required for TOML format")
	}

	data, err := readFileFn(path)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", path, err)
	}

	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}

	if err := setNestedValue(obj, field, version); err != nil {
		return fmt.Errorf("in file %q: %w", path, err)
	}

	updated, err := toml.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal TOML for %q: %w", path, err)
	}

	if err := writeFileFn(path, updated, filePerm); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}

	return nil
}

// writeRaw writes the version as the entire file contents.
func writeRaw(path, version string) error {
	content := version
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if err := writeFileFn(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}

	return nil
}

// writeRegex replaces the first capturing group of pattern with the version.
func writeRegex(path, pattern, version string) error {
	if pattern == "" {
		return fmt.Errorf("pattern is required for regex format")
	}

	data, err := readFileFn(path)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", path, err)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	if !re.Match(data) {
		return fmt.Errorf("pattern %q does not match contents of %q", pattern, path)
	}

	updated := re.ReplaceAllFunc(data, func(match []byte) []byte {
		submatches := re.FindSubmatch(match)
		if len(submatches) < 2 {
			return match
		}
		return []byte(strings.Replace(string(match), string(submatches[1]), version, 1))
	})

	if err := writeFileFn(path, updated, filePerm); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}

	return nil
}

// setNestedValue sets a value in a nested map using dot notation.
// Example: "package.version" sets obj["package"]["version"] = value
func setNestedValue(obj map[string]any, field string, value any) error {
	if field == "" {
		return fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := obj

	// Navigate to the parent of the target field
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]

		next, exists := current[part]
		if !exists {
			newMap := make(map[string]any)
			current[part] = newMap
			current = newMap
			continue
		}

		nextMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i+1], "."), part)
		}

		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}
