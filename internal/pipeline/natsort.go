package pipeline

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
)

// SortNatural orders paths by base name in natural order: runs of digits
// compare by value ("p2" < "p10"), letters case-insensitively.
func SortNatural(paths []string) {
	slices.SortStableFunc(paths, func(a, b string) int {
		return naturalCompare(filepath.Base(a), filepath.Base(b))
	})
}

// naturalCompare compares two strings using natural sort ordering.
// Strings equal under that ordering fall back to a byte comparison so the
// result is total.
func naturalCompare(a, b string) int {
	al, bl := strings.ToLower(a), strings.ToLower(b)
	ai, bi := 0, 0
	for ai < len(al) && bi < len(bl) {
		if isDigit(al[ai]) && isDigit(bl[bi]) {
			aEnd, bEnd := digitRunEnd(al, ai), digitRunEnd(bl, bi)
			if c := compareNumeric(al[ai:aEnd], bl[bi:bEnd]); c != 0 {
				return c
			}
			// Same value: fewer leading zeros first ("01" < "001").
			if c := cmp.Compare(aEnd-ai, bEnd-bi); c != 0 {
				return c
			}
			ai, bi = aEnd, bEnd
			continue
		}
		if al[ai] != bl[bi] {
			return cmp.Compare(al[ai], bl[bi])
		}
		ai++
		bi++
	}
	if c := cmp.Compare(len(al)-ai, len(bl)-bi); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// compareNumeric compares two ASCII digit runs by value without parsing,
// so arbitrarily long runs never overflow.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func digitRunEnd(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
