// Package journal provides a SQLite-backed, append-only record of past
// release and build runs. It is advisory only: pipelines write to it after
// the fact and never read it, so all release decisions still derive from git
// and the registry.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run kinds.
const (
	KindRelease = "release"
	KindBuild   = "build"
)

// Run statuses.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Entry is one recorded pipeline run.
type Entry struct {
	ID              int64
	Kind            string
	Version         string
	PreviousVersion string
	CommitSHA       string
	Status          string
	Detail          string
	Timestamp       time.Time
}

// Journal represents the SQLite run history.
type Journal struct {
	db *sql.DB
}

// Open opens (and initializes if needed) the journal database.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) initialize() error {
	schema := `
	-- Run history (append-only)
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		kind TEXT NOT NULL,
		version TEXT NOT NULL,
		previous_version TEXT,
		commit_sha TEXT,
		status TEXT NOT NULL,
		detail TEXT
	);
	`
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return nil
}

// Record appends one run entry.
func (j *Journal) Record(e Entry) error {
	_, err := j.db.Exec(
		`INSERT INTO runs (kind, version, previous_version, commit_sha, status, detail)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Kind, e.Version, e.PreviousVersion, e.CommitSHA, e.Status, e.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. A limit of 0 means all.
func (j *Journal) List(limit int) ([]*Entry, error) {
	query := `SELECT id, timestamp, kind, version, previous_version, commit_sha, status, detail
	          FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var prev, sha, detail sql.NullString
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Kind, &e.Version, &prev, &sha, &e.Status, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		e.PreviousVersion = prev.String
		e.CommitSHA = sha.String
		e.Detail = detail.String
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
