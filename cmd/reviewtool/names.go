package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backmassage/reviewtool/internal/display"
	"github.com/backmassage/reviewtool/internal/naming"
	"github.com/backmassage/reviewtool/internal/pipeline"
)

type namesOptions struct {
	ext      string
	existing string
}

func newNamesCmd(a *app) *cobra.Command {
	var opts namesOptions
	cmd := &cobra.Command{
		Use:   "names [labels...]",
		Short: "Preview the file names a list of labels would get",
		Long: `Names runs labels through the naming rules in order and prints one
"label<TAB>name" line per label. Without arguments, labels are read from
stdin, one per line; empty lines are empty labels.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := args
			if len(labels) == 0 {
				var err error
				if labels, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			return a.names(labels, opts)
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&a.flags.Digits, "digits", 0, "Fixed page-number width")
	fs.StringVar(&opts.ext, "ext", ".jpg", "Extension of the named files")
	fs.StringVar(&opts.existing, "existing", "", "Folder whose images are treated as already named")
	return cmd
}

func (a *app) names(labels []string, opts namesOptions) error {
	ext := opts.ext
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	sources := make([]string, len(labels))
	for i := range labels {
		sources[i] = fmt.Sprintf("%d%s", i+1, ext)
	}
	width := pipeline.ResolveWidth(a.cfg.Digits, sources)
	b, err := naming.NewBuilder(width)
	if err != nil {
		return err
	}
	if opts.existing != "" {
		existing, err := pipeline.Discover(opts.existing)
		if err != nil {
			return fmt.Errorf("list existing folder: %w", err)
		}
		b.Reset(existing)
	}

	names, missing := previewNames(b, labels, sources)
	w := bufio.NewWriter(a.stdout)
	for i, label := range labels {
		fmt.Fprintf(w, "%s\t%s\n", label, names[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(missing) > 0 {
		a.log.Warn("Missing %s: %s", display.Plural(len(missing), "page"), display.FormatPageList(missing))
	}
	return nil
}

// previewNames builds one name per label and tracks pages the same way a
// finalization does: every built name is observed.
func previewNames(b *naming.Builder, labels, sources []string) (names []string, missing []int) {
	pages := naming.NewPageTracker()
	names = make([]string, len(labels))
	for i, label := range labels {
		names[i], _ = b.BuildReviewedFileName(sources[i], label)
		pages.Observe(names[i])
	}
	return names, pages.Missing()
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}
