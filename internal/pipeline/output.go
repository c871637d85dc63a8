package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/logging"
	"github.com/backmassage/reviewtool/internal/naming"
)

// ErrOutputExists is returned when the output folder already holds files
// and neither --force nor --resume was given.
var ErrOutputExists = errors.New("output folder is not empty (use --force to replace it or --resume to continue)")

// outputDir returns cfg.OutputDir, or the review folder beside sourceDir.
func outputDir(cfg *config.Config, sourceDir string) string {
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	return naming.ReviewFolderPath(sourceDir, cfg.OutputSuffix)
}

// checkPaths rejects an output folder that sits inside the source folder.
func checkPaths(cfg *config.Config, sourceDir, out string) error {
	srcAbs, err := absPath(sourceDir)
	if err != nil {
		return fmt.Errorf("resolve source folder: %w", err)
	}
	outAbs, err := absPath(out)
	if err != nil {
		return fmt.Errorf("resolve output folder: %w", err)
	}
	return cfg.ValidatePaths(srcAbs, outAbs)
}

// absPath returns the absolute, symlink-resolved path. A path that does not
// exist yet is resolved through its parent.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs, nil
	}
	return filepath.Join(parent, filepath.Base(abs)), nil
}

// prepareOutput makes out ready to receive files. created reports whether
// this call created the folder.
func prepareOutput(cfg *config.Config, log *logging.Logger, out string) (created bool, err error) {
	entries, err := os.ReadDir(out)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if cfg.DryRun {
			return false, nil
		}
		if err := os.MkdirAll(out, 0o755); err != nil {
			return false, fmt.Errorf("create output folder: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("read output folder: %w", err)
	case len(entries) == 0:
		return false, nil
	case cfg.Resume:
		log.Info("Resuming into %s (%d entries kept)", out, len(entries))
		return false, nil
	case cfg.Force:
		if cfg.DryRun {
			log.Warn("[DRY] Would clear %d entries in %s", len(entries), out)
			return false, nil
		}
		log.Warn("Clearing %d entries in %s", len(entries), out)
		for _, e := range entries {
			if err := os.RemoveAll(filepath.Join(out, e.Name())); err != nil {
				return false, fmt.Errorf("clear output folder: %w", err)
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", out, ErrOutputExists)
	}
}

// existingImages lists the images already in out and its rejected folder.
func existingImages(out, rejectedDir string) ([]string, error) {
	var all []string
	for _, dir := range []string{out, filepath.Join(out, rejectedDir)} {
		files, err := Discover(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	return all, nil
}
