package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "page.jpg")
	touch(t, dir, "scan.TIF")
	touch(t, dir, "notes.txt")
	touch(t, dir, "book.tsv")
	touch(t, dir, "cover.png")
	touch(t, dir, "thumb.webp")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"cover.png", "page.jpg", "scan.TIF", "thumb.webp"}, basenames(files))
}

func TestDiscover_AllImageExtensions(t *testing.T) {
	dir := t.TempDir()
	exts := []string{".bmp", ".gif", ".jpg", ".jpeg", ".png", ".tif", ".tiff", ".webp"}
	for _, ext := range exts {
		touch(t, dir, "file"+ext)
	}
	touch(t, dir, "file.pdf")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Len(t, files, len(exts))
}

func TestDiscover_NotRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "top.jpg")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Rejected"), 0o755))
	touch(t, filepath.Join(dir, "Rejected"), "inner.jpg")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "folder.jpg"), 0o755))

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"top.jpg"}, basenames(files))
}

func TestDiscover_NaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"p10.jpg", "p2.jpg", "P1.jpg", "p100.jpg", "p20.jpg"} {
		touch(t, dir, n)
	}
	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1.jpg", "p2.jpg", "p10.jpg", "p20.jpg", "p100.jpg"}, basenames(files))
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNaturalCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a2", "a10", -1},
		{"a10", "a2", 1},
		{"A1", "a1", -1}, // equal naturally, byte order breaks the tie
		{"a01", "a001", -1},
		{"a1b", "a1c", -1},
		{"img", "img1", -1},
		{"x99999999999999999999999", "x100000000000000000000000", -1},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, naturalCompare(tt.a, tt.b))
		})
	}
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("/x/scan.JPEG"))
	assert.True(t, IsImage("a.tiff"))
	assert.False(t, IsImage("a.tsv"))
	assert.False(t, IsImage("jpg"))
}
