package pipeline

import (
	"path/filepath"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/display"
	"github.com/backmassage/reviewtool/internal/logging"
)

func logRunHeader(cfg *config.Config, log *logging.Logger, sourceDir string, stats *RunStats) {
	log.Info("Found %s in %s", display.Plural(stats.Total, "item"), sourceDir)
	log.Info("Page digits: %d (%s policy)", stats.MaxDigits, cfg.Digits.Policy)
	if cfg.MappingOnly {
		log.Info("Mode: mapping only, no files copied")
	} else {
		log.Info("Out: %s", stats.OutputDir)
	}
	log.Info("Mapping: %s", stats.MappingPath)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
}

func logPlan(log *logging.Logger, plan *Plan) {
	for _, j := range plan.Jobs {
		rel, err := filepath.Rel(plan.OutputDir, j.Dst)
		if err != nil {
			rel = j.Dst
		}
		log.Debug("[DRY] %s -> %s", filepath.Base(j.Src), rel)
	}
	log.Success("[DRY] Would copy %s into %s", display.Plural(len(plan.Jobs), "file"), plan.OutputDir)
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("")
	log.Info("=== Summary ===")
	log.Info("Items:        %d", stats.Total)
	log.Info("Approved:     %d", stats.Approved())
	log.Info("Rejected:     %d", stats.Rejected())
	if n := stats.NotReviewed(); n > 0 {
		log.Warn("Not reviewed: %d", n)
	} else {
		log.Info("Not reviewed: 0")
	}
	if n := stats.Missing(); n > 0 {
		log.Warn("Missing:      %d (%s)", n, display.FormatPageList(stats.Report.MissingPages))
	} else {
		log.Info("Missing:      0")
	}
	if stats.Report.MaxPageNumber > 0 {
		log.Info("Last page:    %d", stats.Report.MaxPageNumber)
	}
	if stats.Skipped > 0 {
		log.Warn("Skipped:      %d (source file missing)", stats.Skipped)
	}
	if !cfg.DryRun && !cfg.MappingOnly {
		log.Info("Copied:       %s (%s)", display.Plural(stats.Copied, "file"), display.FormatBytes(stats.Bytes))
	}
	if stats.RunID != "" {
		log.Info("Journal run:  %s", stats.RunID)
	}
	if !cfg.DryRun {
		log.Success("Done")
	}
}
