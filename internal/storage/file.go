package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/taskr/internal/logger"
)

// File stores each key as <dir>/<key>.json.
type File struct {
	dir string
}

// NewFile creates the directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &File{dir: dir}, nil
}

func (s *File) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Put writes through a temp file and rename so readers never see a torn value.
func (s *File) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", key, err)
	}

	logger.Debug("Stored %s to %s", key, s.path(key))
	return nil
}

func (s *File) Close() error { return nil }
