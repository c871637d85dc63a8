package naming

import (
	"regexp"
	"strings"
	"unicode"
)

// Candidate is a normalized base name before collision resolution.
type Candidate struct {
	Base          string
	HasPageNumber bool // false only for empty and all-zero labels
}

// LabelRule pairs a label pattern with a builder for the candidate base
// name. Rules are evaluated in order by [Normalize]; first match wins.
type LabelRule struct {
	Name    string
	Pattern *regexp.Regexp
	Build   func(maxDigits int, m []string) Candidate
}

var (
	reDigits        = regexp.MustCompile(`^([0-9]+)$`)
	reLetters       = regexp.MustCompile(`^([A-Za-z]+)$`)
	reDigitsLetters = regexp.MustCompile(`^([0-9]+)([A-Za-z]+)$`)
)

// LabelRules is the ordered classification table. Empty labels are handled
// before the table; anything no rule matches takes the underscore fallback.
var LabelRules = []LabelRule{
	{
		Name:    "digits",
		Pattern: reDigits,
		Build: func(maxDigits int, m []string) Candidate {
			num, nonZero := padNumber(m[1], maxDigits)
			return Candidate{Base: num, HasPageNumber: nonZero}
		},
	},
	{
		Name:    "letters",
		Pattern: reLetters,
		Build: func(maxDigits int, m []string) Candidate {
			return Candidate{Base: zeros(maxDigits) + m[1], HasPageNumber: true}
		},
	},
	{
		Name:    "digits+letters",
		Pattern: reDigitsLetters,
		Build: func(maxDigits int, m []string) Candidate {
			num, _ := padNumber(m[1], maxDigits)
			return Candidate{Base: num + m[2], HasPageNumber: true}
		},
	},
}

// Normalize turns an operator-entered label into a candidate base name
// padded to maxDigits. It never fails: labels that fit no rule become
// "_" + label, with path separators, characters reserved in file names and
// control characters replaced by "_".
func Normalize(maxDigits int, label string) Candidate {
	label = strings.TrimSpace(label)
	if label == "" {
		return Candidate{Base: zeros(maxDigits)}
	}
	for _, rule := range LabelRules {
		m := rule.Pattern.FindStringSubmatch(label)
		if m == nil {
			continue
		}
		return rule.Build(maxDigits, m)
	}
	return Candidate{Base: "_" + fileSafe(label), HasPageNumber: true}
}

// fileSafe makes s usable as a single path element on any platform.
func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, s)
}

// padNumber left-pads an ASCII digit string with zeros to width. Digit
// strings at least width long are returned unchanged. An all-zero string
// collapses to zeros(width) and reports nonZero false.
func padNumber(digits string, width int) (num string, nonZero bool) {
	if strings.TrimLeft(digits, "0") == "" {
		return zeros(width), false
	}
	if len(digits) >= width {
		return digits, true
	}
	return zeros(width-len(digits)) + digits, true
}

func zeros(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("0", n)
}
