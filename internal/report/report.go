// Package report accumulates the outcome of a finalization pass and
// serializes it: the per-item mapping TSV, the stats TSV and the plain-text
// issue report.
package report

import (
	"github.com/backmassage/reviewtool/internal/naming"
	"github.com/backmassage/reviewtool/internal/review"
)

// Report summarizes one finalization or mapping replay.
type Report struct {
	Approved    []string // new names
	NotReviewed []string // original base names
	BadOriginal []string // new names with an explicit page number
	Rescan      []string // new names with an explicit page number
	Rejected    int      // every rejected item, any reason

	MissingPages  []int
	MaxPageNumber int
}

// Total returns the number of items the report covers.
func (r *Report) Total() int {
	return len(r.Approved) + len(r.NotReviewed) + r.Rejected
}

// Issue is one line of the issue report.
type Issue struct {
	Name string
	Text string
}

// Issue texts.
const (
	IssueNotReviewed = "Not Reviewed"
	IssueRejected    = "Rejected"
	IssueMissing     = "Missing"
)

// Collector builds a Report item by item, in display order.
type Collector struct {
	r      Report
	pages  *naming.PageTracker
	issues []Issue
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{pages: naming.NewPageTracker()}
}

// Add records one item. newName is the built file name, originalBase the
// source file name without extension, hasPageNumber the flag returned by
// the builder.
func (c *Collector) Add(newName, originalBase string, v review.Verdict, hasPageNumber bool) {
	c.pages.Observe(newName)
	switch v.Status {
	case review.Pending:
		c.r.NotReviewed = append(c.r.NotReviewed, originalBase)
		c.issues = append(c.issues, Issue{Name: newName, Text: IssueNotReviewed})
	case review.Accepted:
		c.r.Approved = append(c.r.Approved, newName)
	case review.Rejected:
		c.r.Rejected++
		text := IssueRejected
		switch v.Reason {
		case review.ReasonBadOriginal:
			text = v.Reason.String()
			if hasPageNumber {
				c.r.BadOriginal = append(c.r.BadOriginal, newName)
			}
		case review.ReasonRescan:
			text = v.Reason.String()
			if hasPageNumber {
				c.r.Rescan = append(c.r.Rescan, newName)
			}
		}
		c.issues = append(c.issues, Issue{Name: newName, Text: text})
	}
}

// Report closes the pass and returns the summary with missing pages filled in.
func (c *Collector) Report() *Report {
	r := c.r
	r.MissingPages = c.pages.Missing()
	r.MaxPageNumber = c.pages.Max()
	return &r
}

// Issues returns the per-item issues followed by one line per missing page.
func (c *Collector) Issues() []Issue {
	out := make([]Issue, 0, len(c.issues))
	out = append(out, c.issues...)
	for _, n := range c.pages.Missing() {
		out = append(out, Issue{Name: itoa(n), Text: IssueMissing})
	}
	return out
}
