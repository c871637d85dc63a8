// Package config holds runtime configuration: defaults, the optional YAML
// config file, .env and environment overrides, CLI flag binding and
// validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REVIEWTOOL_"

// DigitsPolicy selects how the page-number width of a run is derived.
type DigitsPolicy string

const (
	DigitsCount DigitsPolicy = "count" // Digits of the item count (default).
	DigitsFixed DigitsPolicy = "fixed" // Digits.Width.
	DigitsScan  DigitsPolicy = "scan"  // Longest trailing digit run among source names.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DigitsConfig controls name padding.
type DigitsConfig struct {
	Policy DigitsPolicy `yaml:"policy"`
	Width  int          `yaml:"width"` // Used by DigitsFixed. Default: 3.
	Min    int          `yaml:"min"`   // Floor for count and scan. Default: 3.
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then [Load], then [Flags.Apply] before being passed (by pointer) to
// packages that need it.
type Config struct {
	// Naming.
	Digits DigitsConfig `yaml:"digits"`

	// Session metadata written to the mapping file.
	Reviewer string `yaml:"reviewer"`
	BookID   string `yaml:"book_id"`

	// Output layout.
	OutputSuffix string `yaml:"output_suffix"` // Default: "_IR".
	RejectedDir  string `yaml:"rejected_dir"`  // Default: "Rejected".
	Workers      int    `yaml:"workers"`       // Parallel copies. Default: 4.

	// Audit journal (SQLite). Empty disables it.
	JournalPath string `yaml:"journal_path"`

	// Display and logging.
	Verbose   bool      `yaml:"verbose"`
	ColorMode ColorMode `yaml:"color"`
	LogFile   string    `yaml:"log_file"` // Optional JSON log file.

	// Per-run settings (flags only).
	OutputDir   string `yaml:"-"` // Default: <source><OutputSuffix>.
	MappingPath string `yaml:"-"` // Default: <source>/<folder>.tsv.
	DryRun      bool   `yaml:"-"`
	Force       bool   `yaml:"-"` // Clear a non-empty output folder.
	Resume      bool   `yaml:"-"` // Keep a non-empty output folder and seed names from it.
	MappingOnly bool   `yaml:"-"` // Write mapping and stats, copy nothing.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [Load] applies the config file and environment.
func DefaultConfig() Config {
	return Config{
		Digits: DigitsConfig{
			Policy: DigitsCount,
			Width:  3,
			Min:    3,
		},
		OutputSuffix: "_IR",
		RejectedDir:  "Rejected",
		Workers:      4,
		ColorMode:    ColorAuto,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), a .env file in the working directory and REVIEWTOOL_*
// environment variables, in that order. The result is not yet validated;
// call [Config.Validate] once flags are applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
		if cfg.JournalPath != "" {
			cfg.JournalPath = ResolveRelativePath(path, cfg.JournalPath)
		}
	}

	_ = godotenv.Load() // .env is optional

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides copies REVIEWTOOL_* variables into cfg.
func applyEnvOverrides(cfg *Config) error {
	strs := map[string]*string{
		"REVIEWER":      &cfg.Reviewer,
		"BOOK_ID":       &cfg.BookID,
		"OUTPUT_SUFFIX": &cfg.OutputSuffix,
		"REJECTED_DIR":  &cfg.RejectedDir,
		"JOURNAL":       &cfg.JournalPath,
		"LOG_FILE":      &cfg.LogFile,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"DIGITS_WIDTH": &cfg.Digits.Width,
		"DIGITS_MIN":   &cfg.Digits.Min,
		"WORKERS":      &cfg.Workers,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: invalid integer %q", EnvPrefix, key, v)
		}
		*dst = n
	}

	if v := os.Getenv(EnvPrefix + "DIGITS_POLICY"); v != "" {
		cfg.Digits.Policy = DigitsPolicy(strings.ToLower(v))
	}
	if v := os.Getenv(EnvPrefix + "COLOR"); v != "" {
		cfg.ColorMode = ColorMode(strings.ToLower(v))
	}
	if v := os.Getenv(EnvPrefix + "VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sVERBOSE: invalid boolean %q", EnvPrefix, v)
		}
		cfg.Verbose = b
	}
	return nil
}

// Validate checks enum fields and numeric ranges.
func (c *Config) Validate() error {
	switch c.Digits.Policy {
	case DigitsCount, DigitsFixed, DigitsScan:
		// valid
	default:
		return errors.New("invalid digits policy (use 'count', 'fixed' or 'scan')")
	}
	if c.Digits.Width < 1 {
		return fmt.Errorf("digits width must be at least 1, got %d", c.Digits.Width)
	}
	if c.Digits.Min < 1 {
		return fmt.Errorf("digits min must be at least 1, got %d", c.Digits.Min)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if err := validateFolderName("output suffix", c.OutputSuffix); err != nil {
		return err
	}
	if err := validateFolderName("rejected dir", c.RejectedDir); err != nil {
		return err
	}
	if c.Force && c.Resume {
		return errors.New("--force and --resume are mutually exclusive")
	}
	return nil
}

func validateFolderName(what, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s must not be empty", what)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%s %q must not contain path separators", what, name)
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved source directory, so a later scan never picks up renamed
// copies. Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(sourceAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == sourceAbs || strings.HasPrefix(outputAbs+sep, sourceAbs+sep) {
		return errors.New("output directory must not be inside source directory")
	}
	return nil
}

// ResolveRelativePath resolves targetPath against the directory of
// configPath. Absolute targets are returned unchanged.
func ResolveRelativePath(configPath, targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	return filepath.Join(filepath.Dir(configPath), targetPath)
}
