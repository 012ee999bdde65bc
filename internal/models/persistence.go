package models

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const DefaultSaveDir = ".saves"

const playerFile = "player.yaml"

// FileStore keeps one player record as YAML under Dir/Key/player.yaml.
type FileStore struct {
	Dir string
	Key string
}

// NewFileStore returns a store for key rooted at dir.
func NewFileStore(dir, key string) *FileStore {
	if dir == "" {
		dir = DefaultSaveDir
	}
	return &FileStore{Dir: dir, Key: key}
}

func (s *FileStore) path() string {
	return filepath.Join(s.Dir, s.Key, playerFile)
}

// Save overwrites the stored record.
func (s *FileStore) Save(ctx context.Context, r PlayerRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := MarshalRecord(r)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path()), 0755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	// Readers never observe a partially written record.
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

// Load returns the stored record or ErrNoSave.
func (s *FileStore) Load(ctx context.Context) (*PlayerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	r, err := UnmarshalRecord(data)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListSaves returns the keys under dir that hold a player record.
func ListSaves(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, entry.Name(), playerFile)); err == nil {
			keys = append(keys, entry.Name())
		}
	}
	return keys, nil
}
