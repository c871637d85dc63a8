package pipeline

import (
	"github.com/backmassage/reviewtool/internal/report"
)

// RunStats describes a finished (or planned, for dry runs) finalization
// or mapping replay.
type RunStats struct {
	RunID     string // journal run id; empty without a journal
	Total     int    // items named
	Copied    int    // files written
	Skipped   int    // items whose source file was missing
	Bytes     int64  // bytes written
	MaxDigits int

	OutputDir   string
	MappingPath string
	StatsPath   string

	Report *report.Report
	Issues []report.Issue
}

// Approved returns the number of approved items.
func (s *RunStats) Approved() int {
	if s.Report == nil {
		return 0
	}
	return len(s.Report.Approved)
}

// Rejected returns the number of rejected items.
func (s *RunStats) Rejected() int {
	if s.Report == nil {
		return 0
	}
	return s.Report.Rejected
}

// NotReviewed returns the number of items that were never reviewed.
func (s *RunStats) NotReviewed() int {
	if s.Report == nil {
		return 0
	}
	return len(s.Report.NotReviewed)
}

// Missing returns the number of missing pages.
func (s *RunStats) Missing() int {
	if s.Report == nil {
		return 0
	}
	return len(s.Report.MissingPages)
}
