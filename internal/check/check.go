// Package check provides the diagnostics behind "reviewtool check": the
// configuration, the source folder, where the review folder would go and
// the journal database.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/journal"
	"github.com/backmassage/reviewtool/internal/naming"
	"github.com/backmassage/reviewtool/internal/pipeline"
	"github.com/backmassage/reviewtool/internal/term"
)

// Sentinel errors reported by the individual checks.
var (
	ErrSourceNotFound = errors.New("source folder not found")
	ErrNoImages       = errors.New("source folder holds no images")
	ErrNotWritable    = errors.New("output location is not writable")
)

// Logger is the minimal logging interface needed by Run.
// Defined here (rather than importing the logging package) so that check
// stays testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Run logs every diagnostic and reports whether all of them passed.
// sourceDir may be empty, in which case the folder checks are skipped.
func Run(ctx context.Context, cfg *config.Config, sourceDir string, log Logger) bool {
	log.Info("=== System Check ===")
	ok := true

	if err := cfg.Validate(); err != nil {
		log.Error("Config: %v", err)
		ok = false
	} else {
		log.Success("Config: digits=%s workers=%d suffix=%s", cfg.Digits.Policy, cfg.Workers, cfg.OutputSuffix)
	}

	if sourceDir != "" {
		sourceDir = config.NormalizeDirArg(sourceDir)
		n, err := SourceFolder(sourceDir)
		if err != nil {
			log.Error("Source: %v", err)
			ok = false
		} else {
			log.Success("Source: %d images in %s", n, sourceDir)
		}

		out := cfg.OutputDir
		if out == "" {
			out = naming.ReviewFolderPath(sourceDir, cfg.OutputSuffix)
		}
		if err := Writable(out); err != nil {
			log.Error("Output: %v", err)
			ok = false
		} else {
			log.Success("Output: %s", out)
		}
	}

	if cfg.JournalPath == "" {
		log.Info("Journal: disabled")
	} else if err := Journal(ctx, cfg.JournalPath); err != nil {
		log.Error("Journal: %v", err)
		ok = false
	} else {
		log.Success("Journal: %s", cfg.JournalPath)
	}

	log.Info("Color: %v, stdout terminal: %v", term.Enabled(), term.IsTerminal(os.Stdout))
	return ok
}

// SourceFolder returns the number of images in dir.
func SourceFolder(dir string) (int, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
	}
	files, err := pipeline.Discover(dir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoImages, dir)
	}
	return len(files), nil
}

// Writable verifies that files can be created in dir, or in its nearest
// existing parent when dir does not exist yet.
func Writable(dir string) error {
	probe := dir
	for {
		fi, err := os.Stat(probe)
		if err == nil {
			if !fi.IsDir() {
				return fmt.Errorf("%w: %s is a file", ErrNotWritable, probe)
			}
			break
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return fmt.Errorf("%w: %s", ErrNotWritable, dir)
		}
		probe = parent
	}
	f, err := os.CreateTemp(probe, ".reviewtool-check-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotWritable, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// Journal opens the journal database, creating it when missing.
func Journal(ctx context.Context, path string) error {
	j, err := journal.Open(ctx, path)
	if err != nil {
		return err
	}
	return j.Close()
}
