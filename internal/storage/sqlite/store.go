// Package sqlite provides a SQLite-backed save store. Each key is one save slot.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tatianab/step-quest/internal/models"
	"github.com/tatianab/step-quest/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB is an open save database.
type DB struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &DB{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (d *DB) Close() error {
	if d == nil || d.sqlDB == nil {
		return nil
	}
	return d.sqlDB.Close()
}

// Store returns the save slot for key.
func (d *DB) Store(key string) *Store {
	return &Store{db: d, key: key}
}

// Keys lists the save slots in the database.
func (d *DB) Keys(ctx context.Context) ([]string, error) {
	rows, err := d.sqlDB.QueryContext(ctx, `SELECT slot FROM saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan save key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Store persists one player record under a fixed key.
type Store struct {
	db  *DB
	key string
}

// Save upserts the record for the store's key.
func (s *Store) Save(ctx context.Context, r models.PlayerRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil || s.db.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	data, err := models.MarshalRecord(r)
	if err != nil {
		return err
	}
	_, err = s.db.sqlDB.ExecContext(ctx,
		`INSERT INTO saves (slot, record, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		s.key,
		string(data),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save record %s: %w", s.key, err)
	}
	return nil
}

// Load returns the record for the store's key or models.ErrNoSave.
func (s *Store) Load(ctx context.Context) (*models.PlayerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil || s.db.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var data string
	err := s.db.sqlDB.QueryRowContext(ctx, `SELECT record FROM saves WHERE slot = ?`, s.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", s.key, err)
	}
	r, err := models.UnmarshalRecord([]byte(data))
	if err != nil {
		return nil, err
	}
	return &r, nil
}
