package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/backmassage/reviewtool/internal/review"
)

// DateLayout is the format of the ReviewDate column.
const DateLayout = "2006-01-02"

const (
	bookIDKey     = "BookID"
	mappingHeader = "OriginalName\tNewName\tReviewStatus\tRejectReason\tReviewDate"
	reviewerCol   = "ReviewerName"
	statsHeader   = "Parameter\tCount\tPagesList"
	utf8BOM       = "\uFEFF"
)

// MappingRow is one line of the mapping file.
type MappingRow struct {
	OriginalName string
	NewName      string
	Status       review.Status
	Reason       review.RejectReason
	ReviewDate   string
	ReviewerName string
}

// Verdict returns the row's status and reason as a review verdict.
func (r MappingRow) Verdict() review.Verdict {
	v := review.Verdict{Status: r.Status}
	if r.Status == review.Rejected {
		v.Reason = r.Reason
	}
	return v
}

// Mapping is the audit record of a finalization: the original and new name
// of every item plus its review outcome.
type Mapping struct {
	BookID string
	Rows   []MappingRow
}

func (m *Mapping) hasReviewer() bool {
	for _, r := range m.Rows {
		if r.ReviewerName != "" {
			return true
		}
	}
	return false
}

// Sanitize replaces the TSV separators tab, CR and LF with spaces.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\r', '\n':
			return ' '
		}
		return r
	}, s)
}

// WriteMapping writes m as TSV: an optional BookID line, the header, then
// one row per item. The ReviewerName column is present only when some row
// carries a reviewer.
func WriteMapping(w io.Writer, m *Mapping) error {
	bw := bufio.NewWriter(w)
	if m.BookID != "" {
		fmt.Fprintf(bw, "%s\t%s\n", bookIDKey, Sanitize(m.BookID))
	}
	withReviewer := m.hasReviewer()
	bw.WriteString(mappingHeader)
	if withReviewer {
		bw.WriteString("\t" + reviewerCol)
	}
	bw.WriteByte('\n')
	for _, r := range m.Rows {
		fields := []string{
			Sanitize(r.OriginalName),
			Sanitize(r.NewName),
			r.Status.String(),
			r.Reason.String(),
			Sanitize(r.ReviewDate),
		}
		if withReviewer {
			fields = append(fields, Sanitize(r.ReviewerName))
		}
		bw.WriteString(strings.Join(fields, "\t"))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadMapping parses a mapping file written by WriteMapping or by earlier
// tools that omit the BookID line and the ReviewerName column. Blank lines
// and rows with fewer than five fields are skipped; unknown status and
// reason values read as Pending and None.
func ReadMapping(r io.Reader) (*Mapping, error) {
	m := &Mapping{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	header := true
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
			first = false
			if k, v, ok := strings.Cut(line, "\t"); ok && k == bookIDKey {
				m.BookID = v
				continue
			}
		}
		if header {
			header = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 5 {
			continue
		}
		status, _ := review.ParseStatus(parts[2])
		reason, _ := review.ParseRejectReason(parts[3])
		row := MappingRow{
			OriginalName: parts[0],
			NewName:      parts[1],
			Status:       status,
			Reason:       reason,
			ReviewDate:   parts[4],
		}
		if len(parts) > 5 {
			row.ReviewerName = parts[5]
		}
		m.Rows = append(m.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	return m, nil
}

// LoadMapping reads the mapping file at path.
func LoadMapping(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()
	return ReadMapping(f)
}

// SaveMapping writes m to path, replacing any existing file.
func SaveMapping(path string, m *Mapping) error {
	return writeFile(path, func(w io.Writer) error { return WriteMapping(w, m) })
}

// WriteStats writes the per-category counts and lists of r.
func WriteStats(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(statsHeader + "\n")
	writeStatsRow(bw, "Approved", r.Approved)
	writeStatsRow(bw, "Not reviewed", r.NotReviewed)
	writeStatsRow(bw, "Bad originals", r.BadOriginal)
	writeStatsRow(bw, "Rescan", r.Rescan)
	missing := make([]string, len(r.MissingPages))
	for i, n := range r.MissingPages {
		missing[i] = itoa(n)
	}
	writeStatsRow(bw, "Missing pages", missing)
	return bw.Flush()
}

func writeStatsRow(w *bufio.Writer, name string, items []string) {
	fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(items), Sanitize(strings.Join(items, ", ")))
}

// SaveStats writes the stats file for r to path.
func SaveStats(path string, r *Report) error {
	return writeFile(path, func(w io.Writer) error { return WriteStats(w, r) })
}

// StatsPath returns the stats file path that accompanies a mapping file:
// "book01.tsv" → "book01_stats.tsv".
func StatsPath(mappingPath string) string {
	return strings.TrimSuffix(mappingPath, ".tsv") + "_stats.tsv"
}

// WriteIssues writes one "<name>\t<text>" line per issue.
func WriteIssues(w io.Writer, issues []Issue) error {
	bw := bufio.NewWriter(w)
	for _, is := range issues {
		fmt.Fprintf(bw, "%s\t%s\n", Sanitize(is.Name), is.Text)
	}
	return bw.Flush()
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }
