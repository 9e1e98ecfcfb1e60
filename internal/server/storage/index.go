package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one row of the save index.
type Entry struct {
	WorldID uuid.UUID
	Backend Backend
	Path    string
	Seed    int64
	Edits   int
	SavedAt time.Time
}

// Index records saves in a SQLite database so they can be listed without
// opening every store.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates the index database at path.
func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty index path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			world_id TEXT NOT NULL,
			backend TEXT NOT NULL,
			path TEXT NOT NULL,
			seed INTEGER NOT NULL,
			edits INTEGER NOT NULL,
			saved_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS saves_world ON saves(world_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init index: %w", err)
		}
	}
	return &Index{db: db}, nil
}

// Record appends a save to the index.
func (ix *Index) Record(ctx context.Context, e Entry) error {
	_, err := ix.db.ExecContext(ctx,
		`INSERT INTO saves (world_id, backend, path, seed, edits, saved_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.WorldID.String(), string(e.Backend), e.Path, e.Seed, e.Edits, e.SavedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record save: %w", err)
	}
	return nil
}

// List returns up to limit saves, newest first. A limit <= 0 returns all.
func (ix *Index) List(ctx context.Context, limit int) ([]Entry, error) {
	q := `SELECT world_id, backend, path, seed, edits, saved_at FROM saves ORDER BY saved_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := ix.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			id      string
			backend string
			savedAt int64
		)
		if err := rows.Scan(&id, &backend, &e.Path, &e.Seed, &e.Edits, &savedAt); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		if e.WorldID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		e.Backend = Backend(backend)
		e.SavedAt = time.Unix(0, savedAt).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (ix *Index) Close() error { return ix.db.Close() }

// EntryFor builds the index row for a snapshot written to path.
func EntryFor(snap *Snapshot, backend Backend, path string) Entry {
	return Entry{
		WorldID: snap.WorldID,
		Backend: backend,
		Path:    path,
		Seed:    snap.Params.Seed,
		Edits:   snap.Overlay.Len(),
		SavedAt: snap.SavedAt,
	}
}
