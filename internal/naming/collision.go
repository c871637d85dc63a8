package naming

import (
	"path/filepath"
	"strings"
)

// Registry tracks base names already issued in one naming session and
// resolves collisions by appending letter suffixes ("001" → "001A" →
// "001B" …). Comparison is case-insensitive. Names are never released.
//
// A Registry is not safe for concurrent use; it belongs to one Builder.
type Registry struct {
	issued map[string]struct{} // folded base name → present
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{issued: make(map[string]struct{})}
}

// Seed clears the registry and registers the base name (no directory, no
// extension) of every path. Whitespace-only names are ignored.
func (r *Registry) Seed(paths []string) {
	clear(r.issued)
	for _, p := range paths {
		base := baseNameWithoutExt(p)
		if strings.TrimSpace(base) == "" {
			continue
		}
		r.Register(base)
	}
}

// Allocate returns candidate if it has not been issued, otherwise the first
// candidate+suffix (A, B, …, Z, AA, …) that is free. The caller registers
// the result; [Builder] does both steps together.
func (r *Registry) Allocate(candidate string) string {
	if !r.Contains(candidate) {
		return candidate
	}
	suffix := ""
	for {
		suffix = NextSuffix(suffix)
		name := candidate + suffix
		if !r.Contains(name) {
			return name
		}
	}
}

// Register marks name as issued.
func (r *Registry) Register(name string) {
	r.issued[fold(name)] = struct{}{}
}

// Contains reports whether name (in any letter case) has been issued.
func (r *Registry) Contains(name string) bool {
	_, ok := r.issued[fold(name)]
	return ok
}

// Len returns the number of distinct issued names.
func (r *Registry) Len() int { return len(r.issued) }

func fold(s string) string { return strings.ToLower(s) }

// baseNameWithoutExt returns the last path element without its extension.
// Both slash styles are accepted so seed lists recorded on another OS work.
func baseNameWithoutExt(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		p = p[i+1:]
	}
	return strings.TrimSuffix(p, filepath.Ext(p))
}
