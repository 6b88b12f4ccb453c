package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	_ "modernc.org/sqlite"
)

const metaDepth = "depth"

// Store persists meta progression: the current depth and the item ids the
// player has unlocked for good. Reads are served from memory; writes go
// straight to the database.
type Store struct {
	db *sql.DB

	mu       sync.RWMutex
	depth    int
	unlocked map[string]bool
}

// Open opens or creates the progression database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db, unlocked: map[string]bool{}}
	if err := s.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS unlocked_items (
			item_id TEXT PRIMARY KEY,
			unlocked_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, metaDepth).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("reading depth: %w", err)
	default:
		d, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("parsing depth %q: %w", raw, err)
		}
		s.depth = d
	}

	rows, err := s.db.QueryContext(ctx, `SELECT item_id FROM unlocked_items`)
	if err != nil {
		return fmt.Errorf("reading unlocked items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scanning unlocked item: %w", err)
		}
		s.unlocked[id] = true
	}
	return rows.Err()
}

// Depth satisfies game.Progression.
func (s *Store) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.depth
}

// SetDepth records the depth the player has reached.
func (s *Store) SetDepth(depth int) error {
	if depth < 0 {
		return fmt.Errorf("depth must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaDepth, strconv.Itoa(depth))
	if err != nil {
		return fmt.Errorf("saving depth: %w", err)
	}
	s.depth = depth
	return nil
}

// IsUnlocked satisfies game.Progression.
func (s *Store) IsUnlocked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unlocked[id]
}

// Unlock permanently unlocks id. Unlocking twice is a no-op.
func (s *Store) Unlock(id string) error {
	if id == "" {
		return fmt.Errorf("item id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unlocked[id] {
		return nil
	}

	if _, err := s.db.Exec(`INSERT OR IGNORE INTO unlocked_items (item_id) VALUES (?)`, id); err != nil {
		return fmt.Errorf("unlocking %q: %w", id, err)
	}
	s.unlocked[id] = true
	return nil
}

// Unlocked returns every unlocked id in sorted order.
func (s *Store) Unlocked() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.unlocked))
	for id := range s.unlocked {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Reset forgets every unlock and returns to the hub.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM unlocked_items`); err != nil {
		return fmt.Errorf("clearing unlocks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM meta WHERE key = ?`, metaDepth); err != nil {
		return fmt.Errorf("clearing depth: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reset: %w", err)
	}

	s.depth = 0
	s.unlocked = map[string]bool{}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
