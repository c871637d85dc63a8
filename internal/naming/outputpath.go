package naming

import (
	"path/filepath"
	"strings"
)

// Suffixes appended to the base name of rejected pages in the review folder.
const (
	SuffixBadOriginal = "_bo"
	SuffixRescan      = "_rs"
	SuffixRejected    = "_rejected"

	// NotReviewedPrefix marks pages the operator never reviewed; they keep
	// their original base name.
	NotReviewedPrefix = "_nr_"
)

// ReviewFolderPath returns the output folder that sits beside sourceDir:
//
//	/scans/book01  →  /scans/book01<suffix>   (suffix e.g. "_IR")
func ReviewFolderPath(sourceDir, suffix string) string {
	trimmed := strings.TrimRight(sourceDir, `/\`)
	if trimmed == "" {
		trimmed = sourceDir
	}
	name := filepath.Base(trimmed)
	parent := filepath.Dir(trimmed)
	if parent == "." && !strings.ContainsAny(sourceDir, `/\`) {
		return name + suffix
	}
	return filepath.Join(parent, name+suffix)
}

// NotReviewedName returns "_nr_<base><ext>" for an unreviewed source file.
func NotReviewedName(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return NotReviewedPrefix + baseNameWithoutExt(sourcePath) + ext
}

// WithSuffix inserts suffix between the base name and extension of
// fileName: ("012.jpg", "_bo") → "012_bo.jpg".
func WithSuffix(fileName, suffix string) string {
	ext := filepath.Ext(fileName)
	return strings.TrimSuffix(fileName, ext) + suffix + ext
}
