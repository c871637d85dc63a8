package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/reviewtool/internal/journal"
	"github.com/backmassage/reviewtool/internal/logging"
	"github.com/backmassage/reviewtool/internal/report"
	"github.com/backmassage/reviewtool/internal/review"
)

func TestApply_ReplaysFinalize(t *testing.T) {
	root, sess := newBook(t)
	first, err := Finalize(context.Background(), testConfig(), logging.Nop(), sess, nil)
	require.NoError(t, err)
	out := filepath.Join(root, "book_IR")
	want := listTree(t, out)
	require.NoError(t, os.RemoveAll(out))

	m, err := report.LoadMapping(first.MappingPath)
	require.NoError(t, err)
	rec := &fakeRecorder{}
	stats, err := Apply(context.Background(), testConfig(), logging.Nop(), filepath.Join(root, "book"), m, first.MappingPath, rec)
	require.NoError(t, err)

	assert.ElementsMatch(t, want, listTree(t, out))
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Approved())
	assert.Equal(t, 1, stats.Rejected())
	assert.Equal(t, []int{3}, stats.Report.MissingPages)
	assert.Equal(t, journal.KindApply, rec.info.Kind)
	assert.Equal(t, "BK-1", rec.info.BookID)
}

func TestApply_CaseInsensitiveNames(t *testing.T) {
	src := filepath.Join(t.TempDir(), "book")
	writeFile(t, src, "Scan1.JPG", "x")
	m := &report.Mapping{Rows: []report.MappingRow{
		{OriginalName: "scan1.jpg", NewName: "001.JPG", Status: review.Accepted},
	}}
	stats, err := Apply(context.Background(), testConfig(), logging.Nop(), src, m, "m.tsv", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Copied)
	assert.Equal(t, []string{"001.JPG"}, listTree(t, filepath.Join(filepath.Dir(src), "book_IR")))
}

func TestApply_Mismatch(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		rows  []string
	}{
		{"extra file in folder", []string{"a.jpg", "b.jpg"}, []string{"a.jpg"}},
		{"extra row in mapping", []string{"a.jpg"}, []string{"a.jpg", "b.jpg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			src := filepath.Join(root, "book")
			for _, f := range tt.files {
				touch(t, src, f)
			}
			m := &report.Mapping{}
			for _, r := range tt.rows {
				m.Rows = append(m.Rows, report.MappingRow{OriginalName: r, NewName: "x_" + r, Status: review.Accepted})
			}
			_, err := Apply(context.Background(), testConfig(), logging.Nop(), src, m, "m.tsv", nil)
			assert.ErrorIs(t, err, ErrMappingMismatch)
			assert.NoDirExists(t, filepath.Join(root, "book_IR"))
		})
	}
}

func TestApply_SkipsBlankRows(t *testing.T) {
	src := filepath.Join(t.TempDir(), "book")
	touch(t, src, "a.jpg")
	m := &report.Mapping{Rows: []report.MappingRow{
		{OriginalName: "a.jpg", NewName: "001.jpg", Status: review.Accepted},
		{OriginalName: " ", NewName: "002.jpg", Status: review.Accepted},
		{OriginalName: "a.jpg", NewName: "", Status: review.Accepted},
	}}
	stats, err := Apply(context.Background(), testConfig(), logging.Nop(), src, m, "m.tsv", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Copied)
}

func TestApply_NoRejectedFolderWithoutRejects(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "book")
	touch(t, src, "a.jpg")
	m := &report.Mapping{Rows: []report.MappingRow{{OriginalName: "a.jpg", NewName: "001.jpg", Status: review.Accepted}}}
	_, err := Apply(context.Background(), testConfig(), logging.Nop(), src, m, "m.tsv", nil)
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(root, "book_IR", "Rejected"))
}

func TestApply_RejectsPathNewNames(t *testing.T) {
	for _, newName := range []string{"../x.jpg", "sub/x.jpg", `sub\x.jpg`, ".."} {
		t.Run(newName, func(t *testing.T) {
			root := t.TempDir()
			src := filepath.Join(root, "book")
			touch(t, src, "a.jpg")
			m := &report.Mapping{Rows: []report.MappingRow{{OriginalName: "a.jpg", NewName: newName, Status: review.Accepted}}}
			_, err := Apply(context.Background(), testConfig(), logging.Nop(), src, m, "m.tsv", nil)
			assert.ErrorContains(t, err, "not a plain file name")
			assert.NoDirExists(t, filepath.Join(root, "book_IR"))
		})
	}
}
