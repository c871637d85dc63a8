package naming

import (
	"fmt"
	"strconv"
)

// CountWidth returns the number of decimal digits needed to write count,
// never less than floor (and never less than 1).
func CountWidth(count, floor int) int {
	w := 1
	if count > 0 {
		w = len(strconv.Itoa(count))
	}
	return max(w, floor, 1)
}

// TrailingDigitsWidth returns the longest run of trailing ASCII digits
// among the base names of paths ("scan_0042.tif" → 4), never less than
// floor (and never less than 1).
func TrailingDigitsWidth(paths []string, floor int) int {
	w := 0
	for _, p := range paths {
		name := baseNameWithoutExt(p)
		n := 0
		for i := len(name) - 1; i >= 0 && name[i] >= '0' && name[i] <= '9'; i-- {
			n++
		}
		w = max(w, n)
	}
	return max(w, floor, 1)
}

// Suggester proposes sequential page labels for operators to accept or
// edit: three digits for batches under 1000 items, four otherwise.
type Suggester struct {
	next  int
	width int
}

// NewSuggester starts suggestions at start for a batch of total items.
func NewSuggester(start, total int) *Suggester {
	w := 3
	if total >= 1000 {
		w = 4
	}
	return &Suggester{next: start, width: w}
}

// Next returns the current suggestion and advances.
func (s *Suggester) Next() string {
	label := fmt.Sprintf("%0*d", s.width, s.next)
	s.next++
	return label
}

// Follow continues the sequence after an operator-entered label that
// starts with a page number; other labels leave the sequence unchanged.
func (s *Suggester) Follow(label string) {
	if n, ok := LeadingPageNumber(label); ok {
		s.next = n + 1
	}
}
