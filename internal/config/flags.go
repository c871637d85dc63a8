package config

// This file binds CLI flags and applies them over a loaded Config.
// Flags are grouped into global, output and finalize sets; only flags the
// user actually set override file and environment values.

import (
	"github.com/spf13/pflag"
)

// Flags holds raw flag values until [Flags.Apply] merges them into a Config.
type Flags struct {
	ConfigPath  string
	Verbose     bool
	ForceColor  bool
	NoColor     bool
	LogFile     string
	JournalPath string

	OutputDir string
	Force     bool
	DryRun    bool

	MappingPath string
	Digits      int
	Workers     int
	Resume      bool
	MappingOnly bool
}

// DefineGlobalFlags registers -c/--config, -v/--verbose, --color,
// --no-color, -l/--log and --journal.
func DefineGlobalFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "YAML config file")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&f.ForceColor, "color", false, "Force colored output")
	fs.BoolVar(&f.NoColor, "no-color", false, "Disable colored output")
	fs.StringVarP(&f.LogFile, "log", "l", "", "Append JSON log records to this file")
	fs.StringVar(&f.JournalPath, "journal", "", "SQLite journal of finalization runs")
}

// DefineOutputFlags registers -o/--output, --force and --dry-run.
func DefineOutputFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVarP(&f.OutputDir, "output", "o", "", "Output folder (default <source>_IR)")
	fs.BoolVarP(&f.Force, "force", "f", false, "Clear a non-empty output folder")
	fs.BoolVarP(&f.DryRun, "dry-run", "d", false, "Show the plan without writing files")
}

// DefineFinalizeFlags registers --mapping, --digits, --workers, --resume
// and --mapping-only.
func DefineFinalizeFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVar(&f.MappingPath, "mapping", "", "Mapping file (default <source>/<folder>.tsv)")
	fs.IntVar(&f.Digits, "digits", 0, "Fixed page-number width (overrides the digits policy)")
	fs.IntVarP(&f.Workers, "workers", "j", 0, "Parallel file copies")
	fs.BoolVar(&f.Resume, "resume", false, "Keep existing output and continue numbering around it")
	fs.BoolVar(&f.MappingOnly, "mapping-only", false, "Write mapping and stats only, copy nothing")
}

// Apply copies every flag set on fs into cfg. Flags that were not passed
// leave cfg untouched.
func (f *Flags) Apply(fs *pflag.FlagSet, cfg *Config) {
	changed := func(name string) bool {
		fl := fs.Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("verbose") {
		cfg.Verbose = f.Verbose
	}
	if changed("color") && f.ForceColor {
		cfg.ColorMode = ColorAlways
	}
	if changed("no-color") && f.NoColor {
		cfg.ColorMode = ColorNever
	}
	if changed("log") {
		cfg.LogFile = f.LogFile
	}
	if changed("journal") {
		cfg.JournalPath = f.JournalPath
	}

	if changed("output") {
		cfg.OutputDir = NormalizeDirArg(f.OutputDir)
	}
	if changed("force") {
		cfg.Force = f.Force
	}
	if changed("dry-run") {
		cfg.DryRun = f.DryRun
	}

	if changed("mapping") {
		cfg.MappingPath = f.MappingPath
	}
	if changed("digits") {
		cfg.Digits.Policy = DigitsFixed
		cfg.Digits.Width = f.Digits
	}
	if changed("workers") {
		cfg.Workers = f.Workers
	}
	if changed("resume") {
		cfg.Resume = f.Resume
	}
	if changed("mapping-only") {
		cfg.MappingOnly = f.MappingOnly
	}
}
