// Package review holds the operator's review decisions for a batch of
// scans: per-image status, reject reason and page label, and the YAML
// session file they are recorded in.
package review

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Status is the operator's decision for one image.
type Status int

const (
	Pending Status = iota
	Accepted
	Rejected
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	default:
		return "Pending"
	}
}

// ParseStatus parses a status name case-insensitively. "Approved" is
// accepted as an older spelling of Accepted. ok is false for unknown
// values, which map to Pending.
func ParseStatus(s string) (status Status, ok bool) {
	switch normalizeToken(s) {
	case "pending", "":
		return Pending, true
	case "accepted", "approved", "ok":
		return Accepted, true
	case "rejected":
		return Rejected, true
	}
	return Pending, false
}

// RejectReason qualifies a Rejected status.
type RejectReason int

const (
	ReasonNone RejectReason = iota
	ReasonBadOriginal
	ReasonRescan
)

func (r RejectReason) String() string {
	switch r {
	case ReasonBadOriginal:
		return "BadOriginal"
	case ReasonRescan:
		return "Rescan"
	default:
		return "None"
	}
}

// ParseRejectReason parses a reason name case-insensitively; "overcut" is
// a Rescan. Unknown values map to ReasonNone with ok false.
func ParseRejectReason(s string) (reason RejectReason, ok bool) {
	switch normalizeToken(s) {
	case "none", "":
		return ReasonNone, true
	case "badoriginal", "bo":
		return ReasonBadOriginal, true
	case "rescan", "overcut", "rs":
		return ReasonRescan, true
	}
	return ReasonNone, false
}

// normalizeToken lowercases s and drops separators so "Bad Original",
// "bad_original" and "BadOriginal" compare equal.
func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// Verdict is the final decision for an image. Reason is meaningful only
// when Status is Rejected.
type Verdict struct {
	Status Status
	Reason RejectReason
}

// Code returns the two-letter status code shown in item lists: AC, BO, RS,
// RE, or "" for pending.
func (v Verdict) Code() string {
	switch v.Status {
	case Accepted:
		return "AC"
	case Rejected:
		switch v.Reason {
		case ReasonBadOriginal:
			return "BO"
		case ReasonRescan:
			return "RS"
		default:
			return "RE"
		}
	default:
		return ""
	}
}

// MarshalYAML writes the status as its lowercase name.
func (s Status) MarshalYAML() (interface{}, error) {
	return strings.ToLower(s.String()), nil
}

// UnmarshalYAML reads a status name; unknown names are an error so typos in
// hand-edited sessions are caught before finalization.
func (s *Status) UnmarshalYAML(value *yaml.Node) error {
	v, ok := ParseStatus(value.Value)
	if !ok {
		return fmt.Errorf("line %d: unknown status %q", value.Line, value.Value)
	}
	*s = v
	return nil
}

// MarshalYAML writes the reason in snake case.
func (r RejectReason) MarshalYAML() (interface{}, error) {
	switch r {
	case ReasonBadOriginal:
		return "bad_original", nil
	case ReasonRescan:
		return "rescan", nil
	default:
		return "none", nil
	}
}

// UnmarshalYAML reads a reason name.
func (r *RejectReason) UnmarshalYAML(value *yaml.Node) error {
	v, ok := ParseRejectReason(value.Value)
	if !ok {
		return fmt.Errorf("line %d: unknown reject reason %q", value.Line, value.Value)
	}
	*r = v
	return nil
}
