package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/journal"
	"github.com/backmassage/reviewtool/internal/logging"
	"github.com/backmassage/reviewtool/internal/naming"
	"github.com/backmassage/reviewtool/internal/report"
)

// ErrMappingMismatch is returned by Apply when the image files of the
// source folder are not exactly the OriginalName values of the mapping.
var ErrMappingMismatch = errors.New("original file names do not match the mapping file")

// Apply replays a mapping file against sourceDir: every listed file is
// copied into the review folder under its recorded NewName, routed by its
// recorded status. Names are used verbatim; nothing is renumbered.
// mappingPath is only used for logging and the journal. rec may be nil.
func Apply(ctx context.Context, cfg *config.Config, log *logging.Logger, sourceDir string, m *report.Mapping, mappingPath string, rec Recorder) (*RunStats, error) {
	started := now()
	sourceDir = config.NormalizeDirArg(sourceDir)
	files, err := Discover(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("list source folder: %w", err)
	}
	folder, err := matchMapping(files, m)
	if err != nil {
		return nil, err
	}

	out := outputDir(cfg, sourceDir)
	if err := checkPaths(cfg, sourceDir, out); err != nil {
		return nil, err
	}

	stats := &RunStats{OutputDir: out, MappingPath: mappingPath}
	plan := newPlan(out, cfg.RejectedDir)
	for i, row := range m.Rows {
		if strings.TrimSpace(row.OriginalName) == "" || strings.TrimSpace(row.NewName) == "" {
			continue
		}
		if !plainFileName(row.NewName) {
			return nil, fmt.Errorf("mapping row %d: new name %q is not a plain file name", i+1, row.NewName)
		}
		stats.Total++
		_, hasPage := naming.LeadingPageNumber(row.NewName)
		plan.add(filepath.Join(sourceDir, folder[strings.ToLower(row.OriginalName)]), row.NewName, row.Verdict(), hasPage)
	}
	stats.Report = plan.collector.Report()
	stats.Issues = plan.collector.Issues()
	log.Info("Applying %s to %s", filepath.Base(mappingPath), sourceDir)
	log.Info("Out: %s", out)

	if cfg.DryRun {
		if _, err := prepareOutput(cfg, log, out); err != nil {
			return nil, err
		}
		stats.Skipped = dropMissing(plan, log)
		logPlan(log, plan)
		logSummary(cfg, log, stats)
		return stats, nil
	}

	if _, err := execute(ctx, cfg, log, plan, stats); err != nil {
		return nil, err
	}

	record(ctx, log, rec, stats, m, journal.RunInfo{
		Kind:        journal.KindApply,
		StartedAt:   started,
		SourceDir:   sourceDir,
		OutputDir:   out,
		MappingPath: mappingPath,
		BookID:      m.BookID,
		Items:       stats.Total,
		Missing:     stats.Missing(),
	})

	logSummary(cfg, log, stats)
	return stats, nil
}

// matchMapping compares the folder's image names with the mapping's
// OriginalName set, case-insensitively. It returns the folder names keyed
// by their lower-case form.
func matchMapping(files []string, m *report.Mapping) (map[string]string, error) {
	folder := make(map[string]string, len(files))
	for _, f := range files {
		name := filepath.Base(f)
		folder[strings.ToLower(name)] = name
	}
	mapped := make(map[string]string, len(m.Rows))
	for _, r := range m.Rows {
		if strings.TrimSpace(r.OriginalName) == "" {
			continue
		}
		mapped[strings.ToLower(r.OriginalName)] = r.OriginalName
	}

	unmapped := difference(folder, mapped)
	absent := difference(mapped, folder)
	if len(unmapped) == 0 && len(absent) == 0 {
		return folder, nil
	}
	var parts []string
	if len(unmapped) > 0 {
		parts = append(parts, fmt.Sprintf("%d not in mapping (%s)", len(unmapped), sample(unmapped)))
	}
	if len(absent) > 0 {
		parts = append(parts, fmt.Sprintf("%d not in folder (%s)", len(absent), sample(absent)))
	}
	return nil, fmt.Errorf("%w: %s", ErrMappingMismatch, strings.Join(parts, "; "))
}

// difference returns the values of a whose keys are missing from b, sorted.
func difference(a, b map[string]string) []string {
	var out []string
	for k, v := range a {
		if _, ok := b[k]; !ok {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// plainFileName reports whether name is a single path element.
func plainFileName(name string) bool {
	return name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func sample(names []string) string {
	const maxShown = 3
	if len(names) <= maxShown {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:maxShown], ", ") + ", ..."
}
