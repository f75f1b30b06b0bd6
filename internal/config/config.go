package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-makechap"
	"github.com/alnah/go-makechap/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// MaxInputSize limits config files to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

// Field length limits.
const (
	MaxSuffixLength = 32   // ".bak", ".orig"
	MaxClassLength  = 64   // CSS class token
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxTitleLength  = 200  // Contents page title
	MaxWorkers      = 64
)

// Defaults applied by DefaultConfig.
const (
	DefaultBackupSuffix = ".bak"
	DefaultIndexClass   = makechap.DefaultIndexClass
	DefaultChapters     = "chapters"
	DefaultOutput       = "Contents.html"
	DefaultTitle        = "Contents"
	DefaultFirstNumber  = 1
)

// configDirName is the directory searched under the user config dir.
const configDirName = "go-makechap"

// Config holds all configuration for chapter renumbering.
type Config struct {
	Backup   BackupConfig   `yaml:"backup"`
	Index    IndexConfig    `yaml:"index"`
	Contents ContentsConfig `yaml:"contents"`
}

// BackupConfig controls the copy written before a chapter is rewritten.
type BackupConfig struct {
	Disabled bool   `yaml:"disabled"`
	Suffix   string `yaml:"suffix"` // Appended to the chapter file name (default: ".bak")
}

// IndexConfig controls the generated chapter index.
type IndexConfig struct {
	Class string `yaml:"class"` // CSS class of the index <div> (default: "sectiontoc")
}

// ContentsConfig controls the aggregated contents page.
type ContentsConfig struct {
	Chapters    string `yaml:"chapters"`    // Chapter list file (default: "chapters")
	Output      string `yaml:"output"`      // Contents page, relative to the chapter list (default: "Contents.html")
	Title       string `yaml:"title"`       // Page title (default: "Contents")
	FirstNumber *int   `yaml:"firstNumber"` // Number of the first chapter (default: 1)
	Workers     int    `yaml:"workers"`     // 0 = auto
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("backup.suffix", c.Backup.Suffix, MaxSuffixLength); err != nil {
		return err
	}
	if c.Backup.Suffix != "" {
		if err := fileutil.ValidateSuffix(c.Backup.Suffix); err != nil {
			return fmt.Errorf("%w: backup.suffix %q: %w", ErrInvalidField, c.Backup.Suffix, err)
		}
	}

	if err := validateFieldLength("index.class", c.Index.Class, MaxClassLength); err != nil {
		return err
	}
	if c.Index.Class != "" {
		if err := makechap.ValidateIndexClass(c.Index.Class); err != nil {
			return fmt.Errorf("%w: index.class: %w", ErrInvalidField, err)
		}
	}

	if err := validateFieldLength("contents.chapters", c.Contents.Chapters, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("contents.output", c.Contents.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("contents.title", c.Contents.Title, MaxTitleLength); err != nil {
		return err
	}
	if c.Contents.FirstNumber != nil && *c.Contents.FirstNumber < 0 {
		return fmt.Errorf("%w: contents.firstNumber must be >= 0, got %d", ErrInvalidField, *c.Contents.FirstNumber)
	}
	if c.Contents.Workers < 0 || c.Contents.Workers > MaxWorkers {
		return fmt.Errorf("%w: contents.workers must be between 0 and %d, got %d", ErrInvalidField, MaxWorkers, c.Contents.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	first := DefaultFirstNumber
	return &Config{
		Backup: BackupConfig{Disabled: false, Suffix: DefaultBackupSuffix},
		Index:  IndexConfig{Class: DefaultIndexClass},
		Contents: ContentsConfig{
			Chapters:    DefaultChapters,
			Output:      DefaultOutput,
			Title:       DefaultTitle,
			FirstNumber: &first,
			Workers:     0,
		},
	}
}

// FirstChapter returns the number of the first chapter, applying the default.
func (c *ContentsConfig) FirstChapter() int {
	if c.FirstNumber == nil {
		return DefaultFirstNumber
	}
	return *c.FirstNumber
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file get their default values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := decodeStrict(data, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills empty fields with their default values.
func (c *Config) ApplyDefaults() {
	if c.Backup.Suffix == "" {
		c.Backup.Suffix = DefaultBackupSuffix
	}
	if c.Index.Class == "" {
		c.Index.Class = DefaultIndexClass
	}
	if c.Contents.Chapters == "" {
		c.Contents.Chapters = DefaultChapters
	}
	if c.Contents.Output == "" {
		c.Contents.Output = DefaultOutput
	}
	if c.Contents.Title == "" {
		c.Contents.Title = DefaultTitle
	}
	if c.Contents.FirstNumber == nil {
		first := DefaultFirstNumber
		c.Contents.FirstNumber = &first
	}
}

// decodeStrict unmarshals YAML into v, rejecting unknown keys.
// An empty document leaves v unchanged.
func decodeStrict(data []byte, v any) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxInputSize)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-makechap/
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}

	return paths
}
