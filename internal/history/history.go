// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an append-only SQLite ledger of download
// attempts. The ledger is reporting-only: duplicate detection stays
// path-based in the download stage and never consults the database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "downloads.db"
)

// Ledger records download attempts in SQLite.
type Ledger struct {
	db *sql.DB
}

// Open creates or opens the ledger at baseDir/index/downloads.db and
// ensures the schema exists.
func Open(baseDir string) (*Ledger, error) {
	dir := filepath.Join(baseDir, indexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			arxiv_id TEXT NOT NULL,
			title TEXT,
			path TEXT,
			status TEXT NOT NULL,
			error TEXT,
			bytes INTEGER,
			attempted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_time ON attempts(attempted_at)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_id ON attempts(arxiv_id)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one attempt to the ledger.
func (l *Ledger) Record(ctx context.Context, r types.DownloadResult) error {
	at := r.AttemptedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO attempts (arxiv_id, title, path, status, error, bytes, attempted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ArxivID, r.Title, r.Path, string(r.Status), r.Error, r.Bytes,
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording attempt for %s: %w", r.ArxivID, err)
	}
	return nil
}

// Recent returns the n most recent attempts, newest first.
func (l *Ledger) Recent(ctx context.Context, n int) ([]types.DownloadResult, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT arxiv_id, title, path, status, error, bytes, attempted_at
		 FROM attempts ORDER BY rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying recent attempts: %w", err)
	}
	defer rows.Close()

	var results []types.DownloadResult
	for rows.Next() {
		var r types.DownloadResult
		var status, at string
		if err := rows.Scan(&r.ArxivID, &r.Title, &r.Path, &status, &r.Error, &r.Bytes, &at); err != nil {
			return nil, fmt.Errorf("scanning attempt row: %w", err)
		}
		r.Status = types.DownloadStatus(status)
		if t, parseErr := time.Parse(time.RFC3339Nano, at); parseErr == nil {
			r.AttemptedAt = t
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// StatusCounts tallies attempts by terminal status.
func (l *Ledger) StatusCounts(ctx context.Context) (map[types.DownloadStatus]int, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM attempts GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting attempts: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.DownloadStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning count row: %w", err)
		}
		counts[types.DownloadStatus(status)] = n
	}
	return counts, rows.Err()
}
