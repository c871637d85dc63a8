package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/reviewtool/internal/naming"
	"github.com/backmassage/reviewtool/internal/review"
)

// execute runs the command line args against a fresh app and returns what
// the commands wrote to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(&out, &errOut)
	t.Cleanup(a.close)
	root := newRootCmd(a)
	root.SetArgs(append(args, "--no-color"))
	root.SetIn(strings.NewReader(stdin))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newBookDir(t *testing.T, files ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "book")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte(f), 0o644))
	}
	return dir
}

func TestScanFinalizeHistory(t *testing.T) {
	book := newBookDir(t, "scan10.jpg", "scan2.jpg", "scan1.jpg")
	journalPath := filepath.Join(t.TempDir(), "journal.db")

	_, err := execute(t, "", "scan", book, "--suggest", "--book-id", "B-7")
	require.NoError(t, err)

	sessionPath := filepath.Join(book, "book.review.yaml")
	sess, err := review.Load(sessionPath)
	require.NoError(t, err)
	require.Len(t, sess.Items, 3)
	assert.Equal(t, "scan1.jpg", sess.Items[0].File)
	assert.Equal(t, "scan10.jpg", sess.Items[2].File)
	assert.Equal(t, "B-7", sess.BookID)
	for i := range sess.Items {
		sess.Items[i].Status = review.Accepted
	}
	sess.Items[2].Status = review.Rejected
	sess.Items[2].Reason = review.ReasonRescan
	require.NoError(t, review.Save(sessionPath, sess))

	out, err := execute(t, "", "finalize", sessionPath, "--journal", journalPath)
	require.NoError(t, err)
	assert.Equal(t, "003.jpg\tRescan\n", out)

	reviewDir := filepath.Join(filepath.Dir(book), "book_IR")
	for _, name := range []string{"001.jpg", "002.jpg", "003_rs.jpg", filepath.Join("Rejected", "003.jpg")} {
		assert.FileExists(t, filepath.Join(reviewDir, name))
	}
	assert.FileExists(t, filepath.Join(book, "book.tsv"))

	out, err = execute(t, "", "history", "--journal", journalPath)
	require.NoError(t, err)
	assert.Contains(t, out, "finalize")
	assert.Contains(t, out, "B-7")
}

func TestScan_RefusesToOverwrite(t *testing.T) {
	book := newBookDir(t, "1.jpg")
	_, err := execute(t, "", "scan", book)
	require.NoError(t, err)

	_, err = execute(t, "", "scan", book)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "", "scan", book, "--force")
	assert.NoError(t, err)
}

func TestScan_EmptyFolder(t *testing.T) {
	_, err := execute(t, "", "scan", newBookDir(t, "notes.txt"))
	assert.ErrorContains(t, err, "no images")
}

func TestApply_FromMapping(t *testing.T) {
	book := newBookDir(t, "a.jpg", "b.jpg")
	mapping := filepath.Join(t.TempDir(), "map.tsv")
	require.NoError(t, os.WriteFile(mapping, []byte(
		"OriginalName\tNewName\tReviewStatus\tRejectReason\tReviewDate\n"+
			"a.jpg\t001.jpg\tAccepted\tNone\t2026-10-17\n"+
			"b.jpg\t003.jpg\tAccepted\tNone\t2026-10-17\n"), 0o644))

	out, err := execute(t, "", "apply", book, mapping)
	require.NoError(t, err)
	assert.Equal(t, "2\tMissing\n", out)
	assert.FileExists(t, filepath.Join(filepath.Dir(book), "book_IR", "003.jpg"))
}

func TestNames(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "stdin labels",
			stdin: "1\n1\n\n3\n",
			args:  []string{"names"},
			want:  "1\t001.jpg\n1\t001A.jpg\n\t000.jpg\n3\t003.jpg\n",
		},
		{
			name: "fixed digits",
			args: []string{"names", "--digits", "4", "7", "12ab"},
			want: "7\t0007.jpg\n12ab\t0012ab.jpg\n",
		},
		{
			name: "extension without dot",
			args: []string{"names", "--ext", "tif", "AB"},
			want: "AB\t000AB.tif\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPreviewNames_TracksEveryName(t *testing.T) {
	b, err := naming.NewBuilder(3)
	require.NoError(t, err)
	labels := []string{"3", "", "0", "1", "0012"}
	sources := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}

	names, missing := previewNames(b, labels, sources)
	assert.Equal(t, []string{"003.jpg", "000.jpg", "000A.jpg", "001.jpg", "0012.jpg"}, names)
	assert.Equal(t, []int{2, 4, 5, 6, 7, 8, 9, 10, 11}, missing)
}

func TestNames_Existing(t *testing.T) {
	existing := newBookDir(t, "001.tif")
	out, err := execute(t, "", "names", "--existing", existing, "1")
	require.NoError(t, err)
	assert.Equal(t, "1\t001A.jpg\n", out)
}

func TestHistory_RequiresJournal(t *testing.T) {
	_, err := execute(t, "", "history")
	assert.ErrorIs(t, err, errNoJournal)
}

func TestConfigErrors(t *testing.T) {
	_, err := execute(t, "", "names", "--digits", "0", "1")
	assert.Error(t, err)

	_, err = execute(t, "", "check")
	assert.NoError(t, err, "check reports problems itself")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}
