// Package naming assigns canonical, collision-free page file names to
// reviewed scans and tracks which page numbers a batch produced.
//
// Components:
//   - NextSuffix: bijective base-26 letter suffixes (A, B, …, Z, AA, AB, …).
//   - Normalize: classifies an operator label (empty, digits, letters,
//     digits+letters, anything else) and pads the numeric part.
//   - Registry: case-insensitive set of issued base names; resolves
//     collisions by appending letter suffixes.
//   - Builder: the per-batch facade (Normalize + Registry) used during
//     finalization.
//   - PageTracker: collects leading page numbers of built names and reports
//     the gaps between 1 and the highest page seen.
//
// A Builder owns its Registry and is meant for sequential use by one
// finalization pass. Two sessions need two builders.
package naming
