package naming

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewFolderPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute", "/scans/book01", filepath.Join("/scans", "book01_IR")},
		{"trailing slash", "/scans/book01/", filepath.Join("/scans", "book01_IR")},
		{"relative nested", "scans/book01", filepath.Join("scans", "book01_IR")},
		{"bare name", "book01", "book01_IR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReviewFolderPath(tt.in, "_IR"))
		})
	}
}

func TestNotReviewedName(t *testing.T) {
	assert.Equal(t, "_nr_IMG_0001.tif", NotReviewedName("/scans/IMG_0001.tif"))
	assert.Equal(t, "_nr_scan", NotReviewedName("/scans/scan"))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "012_bo.jpg", WithSuffix("012.jpg", SuffixBadOriginal))
	assert.Equal(t, "001A_rs.tif", WithSuffix("001A.tif", SuffixRescan))
	assert.Equal(t, "000_rejected", WithSuffix("000", SuffixRejected))
}
