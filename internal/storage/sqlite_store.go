package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists records in a single SQLite table. The database is
// opened lazily on first use; concurrent callers share one initialization
// attempt, so the schema is never created twice.
type SQLiteStore struct {
	path string

	once    sync.Once
	db      *sql.DB
	openErr error
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	s.once.Do(func() {
		dir := filepath.Dir(s.path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				s.openErr = fmt.Errorf("create db dir: %w", err)
				return
			}
		}
		db, err := sql.Open("sqlite3", s.path)
		if err != nil {
			s.openErr = fmt.Errorf("open sqlite: %w", err)
			return
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			s.openErr = fmt.Errorf("ping sqlite: %w", err)
			return
		}
		if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			_ = db.Close()
			s.openErr = fmt.Errorf("set busy timeout: %w", err)
			return
		}
		if err := MigrateUp(db); err != nil {
			_ = db.Close()
			s.openErr = err
			return
		}
		s.db = db
	})
	if s.openErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, s.openErr)
	}
	return s.db, nil
}

// Open forces initialization so callers can detect an unusable database up
// front instead of on the first read.
func (s *SQLiteStore) Open() error {
	_, err := s.open()
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	var value string
	row := db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return json.RawMessage(value), nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value any) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(payload),
	)
	return err
}

func (s *SQLiteStore) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM records`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		out[key] = json.RawMessage(value)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ReplaceAll(ctx context.Context, records map[string]json.RawMessage) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (key, value) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for key, value := range records {
		if _, err := stmt.ExecContext(ctx, key, string(value)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
