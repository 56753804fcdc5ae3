// Package storage provides the durable key-value stores task lists persist to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/mark3labs/taskr/internal/config"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// DefaultKey holds the default task list.
const DefaultKey = "tasks"

// Storage is a synchronous key-value store that survives process restarts.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// KeyForList maps a user-facing list name to a storage key.
// The empty name is the default list.
func KeyForList(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultKey, nil
	}
	s := slug.Make(name)
	if s == "" {
		return "", fmt.Errorf("invalid list name: %q", name)
	}
	return DefaultKey + "." + s, nil
}

// Open opens the backend selected by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage {
	case config.StorageNATS:
		return OpenKV(ctx, filepath.Join(cfg.DataDir, "nats"))
	case config.StorageFile:
		return NewFile(cfg.DataDir)
	case config.StorageMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage)
	}
}
