// Package journal keeps an SQLite audit trail of finalization runs: one
// row per run and one row per named item, so earlier mappings can be
// inspected after the TSV files have moved on.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/backmassage/reviewtool/internal/report"
	"github.com/backmassage/reviewtool/internal/review"
)

// ErrRunNotFound is returned by Entries for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Run kinds.
const (
	KindFinalize = "finalize"
	KindApply    = "apply"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	kind         TEXT NOT NULL,
	started_at   TIMESTAMP NOT NULL,
	source_dir   TEXT NOT NULL,
	output_dir   TEXT NOT NULL,
	mapping_path TEXT NOT NULL,
	book_id      TEXT NOT NULL DEFAULT '',
	reviewer     TEXT NOT NULL DEFAULT '',
	max_digits   INTEGER NOT NULL,
	items        INTEGER NOT NULL,
	missing      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
	run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq           INTEGER NOT NULL,
	original_name TEXT NOT NULL,
	new_name      TEXT NOT NULL,
	status        TEXT NOT NULL,
	reason        TEXT NOT NULL,
	review_date   TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// RunInfo describes one run.
type RunInfo struct {
	Kind        string
	StartedAt   time.Time
	SourceDir   string
	OutputDir   string
	MappingPath string
	BookID      string
	Reviewer    string
	MaxDigits   int
	Items       int
	Missing     int
}

// Run is a recorded run.
type Run struct {
	ID string
	RunInfo
}

// Entry is one recorded mapping row.
type Entry struct {
	Seq int
	report.MappingRow
}

// Journal is an open journal database. Safe for concurrent use.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal folder: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores a run and its mapping rows in one transaction and returns
// the new run id.
func (j *Journal) Record(ctx context.Context, m *report.Mapping, info RunInfo) (string, error) {
	id := uuid.NewString()
	if info.StartedAt.IsZero() {
		info.StartedAt = time.Now()
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, kind, started_at, source_dir, output_dir, mapping_path, book_id, reviewer, max_digits, items, missing)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, info.Kind, info.StartedAt.UTC(), info.SourceDir, info.OutputDir, info.MappingPath,
		info.BookID, info.Reviewer, info.MaxDigits, info.Items, info.Missing)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries
		(run_id, seq, original_name, new_name, status, reason, review_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare entries: %w", err)
	}
	defer stmt.Close()
	for i, r := range m.Rows {
		if _, err := stmt.ExecContext(ctx, id, i+1, r.OriginalName, r.NewName,
			r.Status.String(), r.Reason.String(), r.ReviewDate); err != nil {
			return "", fmt.Errorf("insert entry %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (j *Journal) Runs(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, kind, started_at, source_dir, output_dir, mapping_path, book_id, reviewer, max_digits, items, missing
		FROM runs ORDER BY started_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Kind, &r.StartedAt, &r.SourceDir, &r.OutputDir, &r.MappingPath,
			&r.BookID, &r.Reviewer, &r.MaxDigits, &r.Items, &r.Missing); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Entries returns the mapping rows of a run in their original order.
func (j *Journal) Entries(ctx context.Context, runID string) ([]Entry, error) {
	var exists int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}

	rows, err := j.db.QueryContext(ctx, `SELECT seq, original_name, new_name, status, reason, review_date
		FROM entries WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e              Entry
			status, reason string
		)
		if err := rows.Scan(&e.Seq, &e.OriginalName, &e.NewName, &status, &reason, &e.ReviewDate); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Status, _ = review.ParseStatus(status)
		e.Reason, _ = review.ParseRejectReason(reason)
		out = append(out, e)
	}
	return out, rows.Err()
}
