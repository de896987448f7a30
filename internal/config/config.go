package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ConfigFile is the name of the optional configuration file, looked up in
// the working directory.
const ConfigFile = ".addonbump.yaml"

// Defaults applied when no config file is present or fields are omitted.
const (
	DefaultFilesField     = "files"
	DefaultLanguagePrefix = "resource.language."
)

// SyncTargetConfig declares an extra file, relative to each bumped add-on
// directory, that mirrors the manifest version.
type SyncTargetConfig struct {
	Path    string `yaml:"path"`
	Format  string `yaml:"format"`
	Field   string `yaml:"field,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

// Config is the main configuration structure for addonbump.
type Config struct {
	// StrictVersions aborts the whole run when a manifest version cannot be
	// parsed, instead of skipping that add-on with a warning.
	StrictVersions bool `yaml:"strict-versions"`

	// FilesField is the object field holding the changed-file array when the
	// input JSON is not a bare array.
	FilesField string `yaml:"files-field,omitempty"`

	// LanguagePrefix identifies language resource directories.
	LanguagePrefix string `yaml:"language-prefix,omitempty"`

	// Report is a default path for the JSON bump report ("" disables it).
	Report string `yaml:"report,omitempty"`

	// Exclude lists directory name patterns skipped during manifest search.
	Exclude []string `yaml:"exclude,omitempty"`

	// Sync lists files kept in lockstep with each bumped manifest version.
	Sync []SyncTargetConfig `yaml:"sync,omitempty"`
}

// LoadConfigFn is kept as a function variable so tests can substitute
// loading behavior.
var LoadConfigFn = loadConfig

func loadConfig() (*Config, error) {
	cfg, err := readConfigFile()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{}
	}

	// ENV override wins over the file for strict mode, so CI can flip it
	// without committing a config change.
	if env := os.Getenv("ADDONBUMP_STRICT"); env != "" {
		cfg.StrictVersions = env != "0" && env != "false"
	}

	applyDefaults(cfg)
	return cfg, nil
}

func readConfigFile() (*Config, error) {
	data, err := os.ReadFile(ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // fallback to defaults
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.FilesField == "" {
		cfg.FilesField = DefaultFilesField
	}
	if cfg.LanguagePrefix == "" {
		cfg.LanguagePrefix = DefaultLanguagePrefix
	}
}
