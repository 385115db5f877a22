// Package config holds the runtime configuration for the toolkit.
// Defaults match the thresholds the tools shipped with; a YAML file can
// override any of them, and tests inject alternates directly.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Action selects what to do with a file once it has been classified as
// junk or as a duplicate.
type Action string

const (
	ActionIgnore Action = "ignore"
	ActionMove   Action = "move"
	ActionDelete Action = "delete"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionIgnore, ActionMove, ActionDelete:
		return true
	}
	return false
}

// Config carries every tunable the pipeline consults.
type Config struct {
	// MinFileSize is the junk filter's minimum byte size.
	MinFileSize int64 `yaml:"min_file_size"`
	// MinDimension is the junk filter's minimum pixel dimension; a file
	// fails only when both width and height are below it.
	MinDimension int `yaml:"min_dimension"`
	// SeparateNoMetadata routes images whose date came from the
	// filesystem into a dedicated bucket instead of the sorted tree.
	SeparateNoMetadata bool `yaml:"separate_no_metadata"`
	// SaveInterval is the number of successful routings between periodic
	// index saves.
	SaveInterval int `yaml:"save_interval"`
	// IgnoreDirs are directory names the traversal never descends into.
	// Dot-prefixed entries are always skipped regardless of this list.
	IgnoreDirs []string `yaml:"ignore_dirs"`

	// Bucket names, created lazily under the destination root.
	DuplicatesDir   string `yaml:"duplicates_dir"`
	JunkDir         string `yaml:"junk_dir"`
	NoMetadataDir   string `yaml:"no_metadata_dir"`
	CorruptVideoDir string `yaml:"corrupt_video_dir"`
}

// Default returns the configuration the original tools shipped with.
func Default() Config {
	return Config{
		MinFileSize:        100 * 1024,
		MinDimension:       600,
		SeparateNoMetadata: true,
		SaveInterval:       50,
		IgnoreDirs: []string{
			"$RECYCLE.BIN",
			"System Volume Information",
			"Recycled",
			".Trashes",
		},
		DuplicatesDir:   "Duplicates",
		JunkDir:         "Skipped_Junk",
		NoMetadataDir:   "No_Metadata_Images",
		CorruptVideoDir: "Corrupt_Videos",
	}
}

// Load reads a YAML file over the defaults. A missing path argument ("")
// returns the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the invariants the pipeline relies on.
func (c Config) Validate() error {
	if c.MinFileSize < 0 {
		return fmt.Errorf("min_file_size must not be negative, got %d", c.MinFileSize)
	}
	if c.MinDimension < 0 {
		return fmt.Errorf("min_dimension must not be negative, got %d", c.MinDimension)
	}
	if c.SaveInterval < 1 {
		return fmt.Errorf("save_interval must be at least 1, got %d", c.SaveInterval)
	}
	return nil
}

// IgnoreSet returns the ignore list as a lookup set.
func (c Config) IgnoreSet() map[string]bool {
	set := make(map[string]bool, len(c.IgnoreDirs))
	for _, d := range c.IgnoreDirs {
		set[d] = true
	}
	return set
}
