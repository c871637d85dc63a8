package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   Status
		wantOK bool
	}{
		{"Pending", Pending, true},
		{"", Pending, true},
		{"accepted", Accepted, true},
		{"Approved", Accepted, true},
		{"REJECTED", Rejected, true},
		{"flagged", Pending, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseRejectReason(t *testing.T) {
	tests := []struct {
		in     string
		want   RejectReason
		wantOK bool
	}{
		{"None", ReasonNone, true},
		{"BadOriginal", ReasonBadOriginal, true},
		{"bad_original", ReasonBadOriginal, true},
		{"Bad Original", ReasonBadOriginal, true},
		{"Rescan", ReasonRescan, true},
		{"overcut", ReasonRescan, true},
		{"blurry", ReasonNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRejectReason(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestStatusStringRoundTrip(t *testing.T) {
	for _, s := range []Status{Pending, Accepted, Rejected} {
		got, ok := ParseStatus(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	for _, r := range []RejectReason{ReasonNone, ReasonBadOriginal, ReasonRescan} {
		got, ok := ParseRejectReason(r.String())
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}
}

func TestVerdictCode(t *testing.T) {
	tests := []struct {
		v    Verdict
		want string
	}{
		{Verdict{Status: Pending}, ""},
		{Verdict{Status: Accepted}, "AC"},
		{Verdict{Status: Rejected, Reason: ReasonBadOriginal}, "BO"},
		{Verdict{Status: Rejected, Reason: ReasonRescan}, "RS"},
		{Verdict{Status: Rejected}, "RE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.Code(), "%+v", tt.v)
	}
}
