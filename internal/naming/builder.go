package naming

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrInvalidDigits is returned by [NewBuilder] for a non-positive width.
var ErrInvalidDigits = errors.New("digit width must be positive")

// Builder assigns reviewed file names for one batch. Every name it returns
// is unique (case-insensitively) among the names it issued and the names
// it was seeded with. Calls must be made sequentially, in display order.
type Builder struct {
	maxDigits int
	registry  *Registry
}

// NewBuilder creates a builder that pads page numbers to maxDigits.
func NewBuilder(maxDigits int) (*Builder, error) {
	if maxDigits <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDigits, maxDigits)
	}
	return &Builder{maxDigits: maxDigits, registry: NewRegistry()}, nil
}

// MaxDigits returns the padding width fixed at construction.
func (b *Builder) MaxDigits() int { return b.maxDigits }

// Reset forgets every issued name and seeds the registry with the base
// names of existingPaths, e.g. files already present in an output folder
// from an earlier partial run.
func (b *Builder) Reset(existingPaths []string) {
	b.registry.Seed(existingPaths)
}

// BuildReviewedFileName returns the unique file name for the image at
// sourcePath labeled label, keeping the source extension. hasPageNumber is
// false when the label was empty or all zeros.
func (b *Builder) BuildReviewedFileName(sourcePath, label string) (fileName string, hasPageNumber bool) {
	ext := filepath.Ext(sourcePath)
	c := Normalize(b.maxDigits, label)
	base := b.registry.Allocate(c.Base)
	b.registry.Register(base)
	return base + ext, c.HasPageNumber
}
