package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AllocateFreeName(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "001", r.Allocate("001"))
	assert.Equal(t, 0, r.Len(), "Allocate must not register")
}

func TestRegistry_AllocateAppendsSuffixes(t *testing.T) {
	r := NewRegistry()
	want := []string{"001", "001A", "001B", "001C"}
	for _, w := range want {
		got := r.Allocate("001")
		r.Register(got)
		assert.Equal(t, w, got)
	}
	assert.Equal(t, len(want), r.Len())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register("001a")
	assert.True(t, r.Contains("001A"))
	r.Register("001")
	assert.Equal(t, "001B", r.Allocate("001"))
}

func TestRegistry_SuffixCarry(t *testing.T) {
	tests := []struct {
		name       string
		wantSuffix string
	}{
		{"first", "A"},
		{"second", "B"},
		{"after Z", "AA"},
		{"after ZZ", "AAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.Register("001")
			for s := NextSuffix(""); s != tt.wantSuffix; s = NextSuffix(s) {
				r.Register("001" + s)
			}
			assert.Equal(t, "001"+tt.wantSuffix, r.Allocate("001"))
		})
	}
}

func TestRegistry_Seed(t *testing.T) {
	r := NewRegistry()
	r.Register("stale")

	r.Seed([]string{
		"/existing/001.jpg",
		"/existing/001.tif",
		`C:\existing\002.png`,
		"/existing/   .jpg",
		"noext",
	})

	require.Equal(t, 3, r.Len())
	assert.False(t, r.Contains("stale"), "Seed must clear earlier names")
	assert.True(t, r.Contains("001"))
	assert.True(t, r.Contains("002"))
	assert.True(t, r.Contains("NOEXT"))
}
