// Package store keeps the imported passage library in SQLite.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/typerpunk/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for library passages.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS passages (
			id INTEGER PRIMARY KEY,
			content TEXT NOT NULL UNIQUE,
			attribution TEXT NOT NULL,
			category TEXT NOT NULL,
			added_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_passages_category ON passages(category);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertPassages adds passages to the library and returns how many were new.
// Passages whose content is already stored are skipped.
func (s *Store) InsertPassages(ctx context.Context, passages []model.Passage) (int, error) {
	if len(passages) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO passages (content, attribution, category, added_at)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	addedAt := s.now().UTC().Format(time.RFC3339Nano)
	added := 0
	for _, p := range passages {
		res, err := stmt.ExecContext(ctx, p.Content, p.Attribution, p.Category, addedAt)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return added, nil
}

// ListPassages returns every stored passage in insertion order.
func (s *Store) ListPassages(ctx context.Context) ([]model.Passage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content, attribution, category
		 FROM passages
		 ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Passage
	for rows.Next() {
		var p model.Passage
		if err := rows.Scan(&p.Content, &p.Attribution, &p.Category); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountPassages returns the number of stored passages.
func (s *Store) CountPassages(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passages`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
