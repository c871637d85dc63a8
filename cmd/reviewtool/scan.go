package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/pipeline"
	"github.com/backmassage/reviewtool/internal/review"
)

type scanOptions struct {
	session  string
	suggest  bool
	bookID   string
	reviewer string
	force    bool
}

func newScanCmd(a *app) *cobra.Command {
	var opts scanOptions
	cmd := &cobra.Command{
		Use:   "scan <source_dir>",
		Short: "Create a review session for a folder of scans",
		Long: `Scan lists the images of a folder in natural order and writes a review
session file with one pending item per image. Edit the labels and statuses,
then run "reviewtool finalize" on the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scan(args[0], opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.session, "session", "o", "", "Session file (default <source>/<folder>.review.yaml)")
	fs.BoolVar(&opts.suggest, "suggest", false, "Prefill labels with sequential page numbers")
	fs.StringVar(&opts.bookID, "book-id", "", "Book identifier recorded in the mapping file")
	fs.StringVar(&opts.reviewer, "reviewer", "", "Reviewer name recorded in the mapping file")
	fs.BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing session file")
	return cmd
}

func (a *app) scan(sourceDir string, opts scanOptions) error {
	sourceDir = config.NormalizeDirArg(sourceDir)
	files, err := pipeline.Discover(sourceDir)
	if err != nil {
		return fmt.Errorf("list source folder: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no images in %s", sourceDir)
	}

	path := opts.session
	if path == "" {
		clean := filepath.Clean(sourceDir)
		path = filepath.Join(clean, filepath.Base(clean)+".review.yaml")
	}
	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	sess := review.Scaffold(sourceDir, files, opts.suggest)
	sess.BookID = firstSet(opts.bookID, a.cfg.BookID)
	sess.Reviewer = firstSet(opts.reviewer, a.cfg.Reviewer)
	sess.SourceDir = sessionSourceDir(path, sourceDir)

	if err := review.Save(path, sess); err != nil {
		return err
	}
	a.log.Success("Wrote %s (%d images)", path, len(files))
	return nil
}

// sessionSourceDir stores the source folder relative to the session file
// when possible, so the pair can be moved together.
func sessionSourceDir(sessionPath, sourceDir string) string {
	absSession, err1 := filepath.Abs(sessionPath)
	absSource, err2 := filepath.Abs(sourceDir)
	if err1 != nil || err2 != nil {
		return sourceDir
	}
	rel, err := filepath.Rel(filepath.Dir(absSession), absSource)
	if err != nil {
		return absSource
	}
	return filepath.ToSlash(rel)
}

func firstSet(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
