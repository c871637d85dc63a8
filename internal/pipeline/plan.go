package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/naming"
	"github.com/backmassage/reviewtool/internal/report"
	"github.com/backmassage/reviewtool/internal/review"
)

// CopyJob is one file copy of a plan.
type CopyJob struct {
	Src string
	Dst string
}

// Plan is every output of a run, computed before any file is touched.
type Plan struct {
	OutputDir   string
	RejectedDir string
	Jobs        []CopyJob
	collector   *report.Collector
}

func newPlan(outputDir, rejectedDir string) *Plan {
	return &Plan{
		OutputDir:   outputDir,
		RejectedDir: filepath.Join(outputDir, rejectedDir),
		collector:   report.NewCollector(),
	}
}

// add routes one named item by its verdict:
//
//	Pending   → <out>/_nr_<original base><ext>
//	Accepted  → <out>/<name>
//	Rejected  → <out>/<rejected>/<name> and <out>/<name base><reason suffix><ext>
func (p *Plan) add(src, name string, v review.Verdict, hasPageNumber bool) {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	p.collector.Add(name, base, v, hasPageNumber)

	switch v.Status {
	case review.Pending:
		p.Jobs = append(p.Jobs, CopyJob{Src: src, Dst: filepath.Join(p.OutputDir, naming.NotReviewedName(src))})
	case review.Accepted:
		p.Jobs = append(p.Jobs, CopyJob{Src: src, Dst: filepath.Join(p.OutputDir, name)})
	case review.Rejected:
		p.Jobs = append(p.Jobs,
			CopyJob{Src: src, Dst: filepath.Join(p.RejectedDir, name)},
			CopyJob{Src: src, Dst: filepath.Join(p.OutputDir, naming.WithSuffix(name, rejectSuffix(v.Reason)))},
		)
	}
}

// hasRejected reports whether any job writes into the rejected folder.
func (p *Plan) hasRejected() bool {
	for _, j := range p.Jobs {
		if filepath.Dir(j.Dst) == p.RejectedDir {
			return true
		}
	}
	return false
}

func rejectSuffix(r review.RejectReason) string {
	switch r {
	case review.ReasonBadOriginal:
		return naming.SuffixBadOriginal
	case review.ReasonRescan:
		return naming.SuffixRescan
	default:
		return naming.SuffixRejected
	}
}

// ResolveWidth picks the page-number width for a batch of source files.
func ResolveWidth(d config.DigitsConfig, sources []string) int {
	switch d.Policy {
	case config.DigitsFixed:
		return max(d.Width, 1)
	case config.DigitsScan:
		return naming.TrailingDigitsWidth(sources, d.Min)
	default:
		return naming.CountWidth(len(sources), d.Min)
	}
}

// DefaultMappingPath returns <source>/<folder>.tsv.
func DefaultMappingPath(sourceDir string) string {
	clean := filepath.Clean(sourceDir)
	return filepath.Join(clean, filepath.Base(clean)+".tsv")
}
