package naming

import (
	"sort"
	"strconv"
)

// LeadingPageNumber parses the run of ASCII digits at the start of name.
// ok is false when there is no such run, when it overflows int, or when it
// is zero (the "no page" placeholder).
func LeadingPageNumber(name string) (page int, ok bool) {
	i := 0
	for i < len(name) && name[i] >= '0' && name[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(name[:i])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// PageTracker accumulates the page numbers of built file names so gaps in
// the sequence can be reported once a batch is named.
type PageTracker struct {
	seen map[int]struct{}
	max  int
}

// NewPageTracker creates an empty tracker.
func NewPageTracker() *PageTracker {
	return &PageTracker{seen: make(map[int]struct{})}
}

// Observe records the leading page number of name, if it has one.
func (t *PageTracker) Observe(name string) (int, bool) {
	n, ok := LeadingPageNumber(name)
	if !ok {
		return 0, false
	}
	t.seen[n] = struct{}{}
	if n > t.max {
		t.max = n
	}
	return n, true
}

// Max returns the highest page number observed, or 0.
func (t *PageTracker) Max() int { return t.max }

// Pages returns the distinct observed page numbers in ascending order.
func (t *PageTracker) Pages() []int {
	out := make([]int, 0, len(t.seen))
	for n := range t.seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Missing returns every page in 1..Max that was never observed, ascending.
func (t *PageTracker) Missing() []int {
	var out []int
	for n := 1; n <= t.max; n++ {
		if _, ok := t.seen[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// MissingPages runs a tracker over names and returns the gaps and the
// highest page number.
func MissingPages(names []string) (missing []int, maxPage int) {
	t := NewPageTracker()
	for _, n := range names {
		t.Observe(n)
	}
	return t.Missing(), t.Max()
}
