package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/taskr/internal/logger"
	"github.com/mark3labs/taskr/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

// KV stores values in a JetStream key-value bucket served by an embedded
// NATS server. Processes sharing a data dir share one server: the first
// runs it and the rest attach.
type KV struct {
	embedded *nats.Embedded
	kv       jetstream.KeyValue
}

// OpenKV opens the bucket stored under dir, starting the embedded server
// or attaching to the one another process already runs there.
func OpenKV(ctx context.Context, dir string) (*KV, error) {
	e, err := nats.Open(ctx, dir)
	if err != nil {
		return nil, err
	}
	return &KV{embedded: e, kv: e.KV}, nil
}

// NewKV wraps an existing bucket. Close is a no-op for the bucket's owner.
func NewKV(kv jetstream.KeyValue) *KV {
	return &KV{kv: kv}
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return entry.Value(), nil
}

func (s *KV) Put(ctx context.Context, key string, value []byte) error {
	rev, err := s.kv.Put(ctx, key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	logger.Debug("Stored %s at revision %d (%d bytes)", key, rev, len(value))
	return nil
}

func (s *KV) Close() error {
	if s.embedded == nil {
		return nil
	}
	return s.embedded.Close()
}
