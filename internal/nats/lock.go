package nats

import (
	"errors"
	"fmt"
	"os"
)

const lockFileName = "taskr.lock"

// errLocked reports that another process holds the data dir lock.
var errLocked = errors.New("data dir is locked by another process")

// dirLock is an exclusive advisory lock on a file inside the data dir.
// Whoever holds it runs the server; everyone else attaches.
type dirLock struct {
	f *os.File
}

// tryLock takes the lock at path without blocking. It returns errLocked
// when another holder has it.
func tryLock(path string) (*dirLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &dirLock{f: f}, nil
}

func (l *dirLock) unlock() error {
	if l == nil || l.f == nil {
		return nil
	}
	err := unlockFile(l.f)
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	l.f = nil
	return err
}
