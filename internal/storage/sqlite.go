package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteKeyValue stores keys in a single kv_entries table. Writes are
// single upsert statements, so each Set is all-or-nothing.
type SQLiteKeyValue struct {
	db *sql.DB
}

func NewSQLiteKeyValue(db *sql.DB) (*SQLiteKeyValue, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable wal mode: %w", err)
	}
	return &SQLiteKeyValue{db: db}, nil
}

// OpenSQLite opens (or creates) the database at path and applies the
// schema migrations.
func OpenSQLite(path string) (*SQLiteKeyValue, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	kv, err := NewSQLiteKeyValue(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

func (s *SQLiteKeyValue) Close() error {
	return s.db.Close()
}

func (s *SQLiteKeyValue) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLiteKeyValue) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (s *SQLiteKeyValue) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func MigrateUp(db *sql.DB) error {
	return applyMigrations(db, ".up.sql")
}

func MigrateDown(db *sql.DB) error {
	return applyMigrations(db, ".down.sql")
}

func applyMigrations(db *sql.DB, suffix string) error {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return nil
}
