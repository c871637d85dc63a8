package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/reviewtool/internal/report"
	"github.com/backmassage/reviewtool/internal/review"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func sampleMapping() *report.Mapping {
	return &report.Mapping{
		BookID: "BK-1",
		Rows: []report.MappingRow{
			{OriginalName: "a.tif", NewName: "001.tif", Status: review.Accepted, ReviewDate: "2026-10-17"},
			{OriginalName: "b.tif", NewName: "002.tif", Status: review.Rejected, Reason: review.ReasonBadOriginal, ReviewDate: "2026-10-17"},
			{OriginalName: "c.tif", NewName: "000.tif", Status: review.Pending, ReviewDate: "2026-10-17"},
		},
	}
}

func TestRecordAndEntries(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)

	id, err := j.Record(ctx, sampleMapping(), RunInfo{
		Kind:        KindFinalize,
		SourceDir:   "/scans/book",
		OutputDir:   "/scans/book_IR",
		MappingPath: "/scans/book/book.tsv",
		BookID:      "BK-1",
		MaxDigits:   3,
		Items:       3,
		Missing:     0,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "run ids are UUIDs")

	entries, err := j.Entries(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Seq)
	assert.Equal(t, "001.tif", entries[0].NewName)
	assert.Equal(t, review.Rejected, entries[1].Status)
	assert.Equal(t, review.ReasonBadOriginal, entries[1].Reason)
	assert.Equal(t, review.Pending, entries[2].Status)
}

func TestRuns_NewestFirst(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := j.Record(ctx, &report.Mapping{}, RunInfo{
			Kind:      KindApply,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			SourceDir: "/s", OutputDir: "/o", MappingPath: "/m.tsv",
			MaxDigits: 3,
			Items:     i,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := j.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, 2, runs[0].Items)
	assert.Equal(t, KindApply, runs[0].Kind)
	assert.True(t, runs[0].StartedAt.Equal(base.Add(2*time.Hour)))

	limited, err := j.Runs(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestEntries_UnknownRun(t *testing.T) {
	j := openTemp(t)
	_, err := j.Entries(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(ctx, path)
	require.NoError(t, err)
	id, err := j.Record(ctx, sampleMapping(), RunInfo{Kind: KindFinalize, MaxDigits: 3})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j2, err := Open(ctx, path)
	require.NoError(t, err)
	defer j2.Close()
	entries, err := j2.Entries(ctx, id)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
