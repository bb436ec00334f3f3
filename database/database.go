// Package database keeps an optional history of resolved tracks. It is a
// diagnostic log read only by the /history endpoint; the resolution path
// never consults it, so every request still re-resolves from upstream.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB
}

type ResolveRecord struct {
	ID              int64     `json:"id"`
	VideoID         string    `json:"video_id"`
	Title           string    `json:"title"`
	Uploader        string    `json:"uploader"`
	URL             string    `json:"url"`
	ResolvedAt      time.Time `json:"resolved_at"`
	DurationSeconds int       `json:"duration_seconds"`
}

// New opens (or creates) the history database at dbPath.
func New(dbPath string) (*Database, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL for concurrent reads while a resolve is being recorded
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Infof("history database initialized at %s", dbPath)
	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS resolve_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			video_id TEXT NOT NULL,
			title TEXT NOT NULL,
			uploader TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			resolved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			duration_seconds INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resolve_history_resolved_at ON resolve_history(resolved_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_resolve_history_video_id ON resolve_history(video_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// RecordResolve inserts one resolved-track record.
func (d *Database) RecordResolve(videoID, title, uploader, url string, durationSeconds int) error {
	_, err := d.db.Exec(
		`INSERT INTO resolve_history (video_id, title, uploader, url, resolved_at, duration_seconds)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		videoID, title, uploader, url, time.Now().UTC().Format(time.RFC3339Nano), durationSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to record resolve: %w", err)
	}
	return nil
}

// Recent returns the most recently resolved tracks, newest first.
func (d *Database) Recent(limit int) ([]ResolveRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := d.db.Query(
		`SELECT id, video_id, title, uploader, url, resolved_at, duration_seconds
		 FROM resolve_history
		 ORDER BY resolved_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []ResolveRecord
	for rows.Next() {
		var r ResolveRecord
		var resolvedAt string
		if err := rows.Scan(&r.ID, &r.VideoID, &r.Title, &r.Uploader, &r.URL, &resolvedAt, &r.DurationSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		r.ResolvedAt = parseStoredTime(resolvedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

func parseStoredTime(value string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t
		}
	}
	log.Warnf("failed to parse resolved_at timestamp %q", value)
	return time.Time{}
}
