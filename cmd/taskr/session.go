package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/taskr/internal/config"
	"github.com/mark3labs/taskr/internal/logger"
	"github.com/mark3labs/taskr/internal/storage"
	"github.com/mark3labs/taskr/internal/task"
	"github.com/spf13/cobra"
)

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, cfg)
}

// session bundles the open backend and the store hydrated from it.
type session struct {
	cfg     *config.Config
	storage storage.Storage
	store   *task.Store
}

// openSession resolves configuration for cmd, opens the configured backend
// and hydrates the store for the selected list.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok {
		var err error
		if cfg, err = config.Load(cmd.Flags()); err != nil {
			return nil, err
		}
	}

	key, err := storage.KeyForList(cfg.List)
	if err != nil {
		return nil, err
	}

	st, err := storage.Open(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}

	store := task.Open(cmd.Context(), st, key)
	logger.Debug("Opened list %s on %s storage", store.Key(), cfg.Storage)

	return &session{
		cfg:     cfg,
		storage: st,
		store:   store,
	}, nil
}

// Close releases the backend.
func (s *session) Close() {
	if err := s.storage.Close(); err != nil {
		logger.Warn("Failed to close storage: %v", err)
	}
}
