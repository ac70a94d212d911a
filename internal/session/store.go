package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

var timeNow = time.Now

// Store persists encoded interview snapshots by session id.
type Store interface {
	Save(id string, snapshot []byte) error
	Load(id string) ([]byte, error)
	Delete(id string) error
	List() ([]Record, error)
	Close() error
}

// Record describes one persisted session.
type Record struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// StoreConfig holds snapshot store configuration.
type StoreConfig struct {
	DataDir string
}

// DefaultStoreConfig stores sessions under ~/.flameo.
func DefaultStoreConfig() StoreConfig {
	home, _ := os.UserHomeDir()
	return StoreConfig{DataDir: filepath.Join(home, ".flameo")}
}

// ─── SQLite ──────────────────────────────────────────────────────────────────

// SQLiteStore keeps one row per session in sessions.db.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the data directory if needed, opens SQLite with
// WAL mode and runs migrations.
func NewSQLiteStore(cfg StoreConfig) (*SQLiteStore, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("session: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "sessions.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("session: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("session: pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("session: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_sessions (
			id         TEXT PRIMARY KEY,
			snapshot   TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_audit_sessions_updated ON audit_sessions(updated_at);
	`)
	return err
}

// Save inserts or replaces the snapshot of session id.
func (s *SQLiteStore) Save(id string, snapshot []byte) error {
	now := timeNow().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO audit_sessions (id, snapshot, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		id, string(snapshot), now, now,
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", id, err)
	}
	return nil
}

// Load returns the stored snapshot of session id, or ErrNotFound.
func (s *SQLiteStore) Load(id string) ([]byte, error) {
	var snapshot string
	err := s.db.QueryRow(`SELECT snapshot FROM audit_sessions WHERE id = ?`, id).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	return []byte(snapshot), nil
}

// Delete removes session id. Deleting an unknown id is not an error.
func (s *SQLiteStore) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM audit_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

// List returns every stored session, most recently updated first.
func (s *SQLiteStore) List() ([]Record, error) {
	rows, err := s.db.Query(`SELECT id, created_at, updated_at FROM audit_sessions ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
