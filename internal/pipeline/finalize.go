package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/journal"
	"github.com/backmassage/reviewtool/internal/logging"
	"github.com/backmassage/reviewtool/internal/naming"
	"github.com/backmassage/reviewtool/internal/report"
	"github.com/backmassage/reviewtool/internal/review"
)

// Recorder persists a finished run; *journal.Journal implements it.
type Recorder interface {
	Record(ctx context.Context, m *report.Mapping, info journal.RunInfo) (string, error)
}

// now is replaced in tests.
var now = time.Now

// Finalize names every item of sess, copies the files into the review
// folder and writes the mapping and stats files. rec may be nil.
//
// Naming runs sequentially on one builder before any file is copied. If
// copying fails or ctx is cancelled, every file created by this run is
// removed and no mapping is written.
func Finalize(ctx context.Context, cfg *config.Config, log *logging.Logger, sess *review.Session, rec Recorder) (*RunStats, error) {
	started := now()
	sourceDir := config.NormalizeDirArg(sess.SourceDir)
	if fi, err := os.Stat(sourceDir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("source folder not found: %s", sourceDir)
	}
	out := outputDir(cfg, sourceDir)
	if !cfg.MappingOnly {
		if err := checkPaths(cfg, sourceDir, out); err != nil {
			return nil, err
		}
	}
	mappingPath := cfg.MappingPath
	if mappingPath == "" {
		mappingPath = DefaultMappingPath(sourceDir)
	}

	items := sess.Review()
	sources := make([]string, len(items))
	for i, it := range items {
		sources[i] = it.SourcePath
	}
	width := ResolveWidth(cfg.Digits, sources)
	builder, err := naming.NewBuilder(width)
	if err != nil {
		return nil, err
	}

	stats := &RunStats{
		Total:       len(items),
		MaxDigits:   width,
		OutputDir:   out,
		MappingPath: mappingPath,
		StatsPath:   report.StatsPath(mappingPath),
	}
	logRunHeader(cfg, log, sourceDir, stats)

	if cfg.Resume && !cfg.MappingOnly {
		existing, err := existingImages(out, cfg.RejectedDir)
		if err != nil {
			return nil, fmt.Errorf("scan output folder: %w", err)
		}
		builder.Reset(existing)
		log.Info("Seeded %d existing names from %s", len(existing), out)
	}

	// --- Naming pass ---
	bookID := firstNonEmpty(sess.BookID, cfg.BookID)
	reviewer := firstNonEmpty(sess.Reviewer, cfg.Reviewer)
	date := started.UTC().Format(report.DateLayout)
	mapping := &report.Mapping{BookID: bookID}
	plan := newPlan(out, cfg.RejectedDir)
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, hasPage := builder.BuildReviewedFileName(it.SourcePath, it.Label)
		log.Debug("[%d/%d] %s -> %s %s", i+1, len(items), it.FileName, name, it.Verdict.Code())
		plan.add(it.SourcePath, name, it.Verdict, hasPage)
		mapping.Rows = append(mapping.Rows, report.MappingRow{
			OriginalName: it.FileName,
			NewName:      name,
			Status:       it.Verdict.Status,
			Reason:       it.Verdict.Reason,
			ReviewDate:   date,
			ReviewerName: reviewer,
		})
	}
	stats.Report = plan.collector.Report()
	stats.Issues = plan.collector.Issues()

	if cfg.DryRun {
		if !cfg.MappingOnly {
			if _, err := prepareOutput(cfg, log, out); err != nil {
				return nil, err
			}
			stats.Skipped = dropMissing(plan, log)
			logPlan(log, plan)
		}
		logSummary(cfg, log, stats)
		return stats, nil
	}

	// --- Copy pass ---
	var c *copier
	if !cfg.MappingOnly {
		c, err = execute(ctx, cfg, log, plan, stats)
		if err != nil {
			return nil, err
		}
	}

	// --- Mapping and stats ---
	if err := report.SaveMapping(mappingPath, mapping); err != nil {
		if c != nil {
			c.rollback(log)
		}
		return nil, err
	}
	if err := report.SaveStats(stats.StatsPath, stats.Report); err != nil {
		log.Warn("Stats file not written: %v", err)
		stats.StatsPath = ""
	}

	record(ctx, log, rec, stats, mapping, journal.RunInfo{
		Kind:        journal.KindFinalize,
		StartedAt:   started,
		SourceDir:   sourceDir,
		OutputDir:   out,
		MappingPath: mappingPath,
		BookID:      bookID,
		Reviewer:    reviewer,
		MaxDigits:   width,
		Items:       stats.Total,
		Missing:     stats.Missing(),
	})

	logSummary(cfg, log, stats)
	return stats, nil
}

// execute prepares the output folder and copies the plan's files. On
// failure everything this run created is removed. The returned copier can
// still roll back if a later step fails.
func execute(ctx context.Context, cfg *config.Config, log *logging.Logger, plan *Plan, stats *RunStats) (*copier, error) {
	created, err := prepareOutput(cfg, log, plan.OutputDir)
	if err != nil {
		return nil, err
	}
	c := &copier{log: log}
	if created {
		c.dirs = append(c.dirs, plan.OutputDir)
	}

	stats.Skipped = dropMissing(plan, log)
	if plan.hasRejected() {
		if err := c.mkdir(plan.RejectedDir); err != nil {
			c.rollback(log)
			return nil, fmt.Errorf("create rejected folder: %w", err)
		}
	}

	if err := c.run(ctx, plan.Jobs, cfg.Workers); err != nil {
		c.rollback(log)
		return nil, err
	}
	stats.Copied = c.copied
	stats.Bytes = c.bytes
	return c, nil
}

// record stores the run in the journal. Journal failures are logged, not
// returned: the output and mapping are already complete.
func record(ctx context.Context, log *logging.Logger, rec Recorder, stats *RunStats, m *report.Mapping, info journal.RunInfo) {
	if rec == nil {
		return
	}
	id, err := rec.Record(ctx, m, info)
	if err != nil {
		log.Warn("Journal not updated: %v", err)
		return
	}
	stats.RunID = id
	log.Debug("Journal run %s", id)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
