package nats

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/taskr/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// BucketName is the JetStream key-value bucket holding every task list.
	BucketName = "taskr"

	attachAttempts = 25
	attachBackoff  = 200 * time.Millisecond
)

// SetupBucket creates or updates the key-value bucket used for task lists.
// Only the latest value of each key is kept; the store always writes the
// whole collection, so older revisions carry no information.
func SetupBucket(ctx context.Context, js jetstream.JetStream) (jetstream.KeyValue, error) {
	return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      BucketName,
		Description: "taskr task lists",
		History:     1,
		Storage:     jetstream.FileStorage,
	})
}

// Embedded is an open task bucket. The primary process for a data dir
// holds its lock and runs the server; later processes attach to that
// server over loopback and leave Server nil.
type Embedded struct {
	Server  *server.Server
	Conn    *nats.Conn
	KV      jetstream.KeyValue
	Primary bool

	dataDir string
	lock    *dirLock
}

// Open opens the task bucket stored under dataDir. The first caller takes
// the data dir lock and starts a server; callers that find the lock held
// connect to the running server through the port file. Partially started
// resources are torn down on failure.
func Open(ctx context.Context, dataDir string) (*Embedded, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating nats data dir: %w", err)
	}

	var lastErr error
	for range attachAttempts {
		lock, err := tryLock(filepath.Join(dataDir, lockFileName))
		switch {
		case err == nil:
			return openPrimary(ctx, dataDir, lock)
		case !errors.Is(err, errLocked):
			return nil, fmt.Errorf("locking %s: %w", dataDir, err)
		}

		e, err := openAttached(ctx, dataDir)
		if err == nil {
			return e, nil
		}
		lastErr = err
		logger.Debug("Waiting for primary taskr on %s: %v", dataDir, err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("taskr is already running on %s: %w", dataDir, ctx.Err())
		case <-time.After(attachBackoff):
		}
	}
	return nil, fmt.Errorf("taskr is already running on %s: %w", dataDir, lastErr)
}

func openPrimary(ctx context.Context, dataDir string, lock *dirLock) (*Embedded, error) {
	token := uuid.NewString()

	ns, port, err := StartEmbeddedNATS(dataDir, token)
	if err != nil {
		_ = lock.unlock()
		return nil, fmt.Errorf("starting embedded nats: %w", err)
	}

	nc, err := ConnectInProcess(ns, token)
	if err != nil {
		_ = Shutdown(nil, ns)
		_ = lock.unlock()
		return nil, fmt.Errorf("connecting to embedded nats: %w", err)
	}

	kv, err := openBucket(ctx, nc)
	if err == nil {
		err = WritePort(dataDir, PortInfo{Port: port, Token: token})
	}
	if err != nil {
		_ = Shutdown(nc, ns)
		_ = lock.unlock()
		return nil, err
	}

	logger.Info("Started NATS server for %s on port %d", dataDir, port)
	return &Embedded{Server: ns, Conn: nc, KV: kv, Primary: true, dataDir: dataDir, lock: lock}, nil
}

func openAttached(ctx context.Context, dataDir string) (*Embedded, error) {
	info, err := ReadPort(dataDir)
	if err != nil {
		return nil, err
	}

	nc, err := ConnectToPort(info.Port, info.Token)
	if err != nil {
		return nil, fmt.Errorf("connecting to port %d: %w", info.Port, err)
	}

	kv, err := openBucket(ctx, nc)
	if err != nil {
		nc.Close()
		return nil, err
	}

	logger.Info("Attached to running taskr NATS server for %s on port %d", dataDir, info.Port)
	return &Embedded{Conn: nc, KV: kv, dataDir: dataDir}, nil
}

func openBucket(ctx context.Context, nc *nats.Conn) (jetstream.KeyValue, error) {
	js, err := CreateJetStream(nc)
	if err != nil {
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}
	kv, err := SetupBucket(ctx, js)
	if err != nil {
		return nil, fmt.Errorf("setting up bucket %s: %w", BucketName, err)
	}
	return kv, nil
}

// Close releases the bucket. The primary also withdraws its port file,
// stops the server and drops the data dir lock.
func (e *Embedded) Close() error {
	if !e.Primary {
		return Shutdown(e.Conn, nil)
	}
	removePort(e.dataDir)
	err := Shutdown(e.Conn, e.Server)
	if uerr := e.lock.unlock(); err == nil {
		err = uerr
	}
	return err
}
