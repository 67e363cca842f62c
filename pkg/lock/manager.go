package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

const (
	// DefaultTimeout bounds how long Acquire waits for a contended lock.
	DefaultTimeout = 10 * time.Second

	initialRetryDelay = 100 * time.Millisecond
	maxRetryDelay     = 2 * time.Second
)

// Manager acquires the advisory lock guarding a storage file. The lock
// lives in a sidecar file, so acquisition never opens or truncates the
// data file itself.
type Manager struct {
	path   string
	mode   os.FileMode
	locker FileLocker
	logger *slog.Logger

	mu           sync.RWMutex
	acquisitions uint64
	contentions  uint64
	timeouts     uint64
}

// NewManager creates a manager for the lock file at path.
func NewManager(path string, logger *slog.Logger) *Manager {
	return &Manager{path: path, mode: 0o644, locker: New(), logger: logger}
}

// Path returns the lock file location.
func (m *Manager) Path() string {
	return m.path
}

// Acquire takes the exclusive lock, retrying with doubling delays until
// timeout elapses or ctx is done. A timeout of zero or less falls back to
// DefaultTimeout. The elapsed window is checked after each failed attempt,
// so a held lock always gets at least one retry.
func (m *Manager) Acquire(ctx context.Context, timeout time.Duration) (*Handle, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f, err := os.OpenFile(m.path, os.O_CREATE|os.O_RDWR, m.mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	start := time.Now()
	delay := initialRetryDelay
	attempts := 0
	for {
		err := m.locker.TryLock(f)
		if err == nil {
			if attempts > 0 && m.logger != nil {
				m.logger.Debug("lock acquired after contention",
					"path", m.path,
					"attempts", attempts+1,
					"wait_ms", time.Since(start).Milliseconds())
			}
			m.recordAcquisition(attempts > 0)
			return &Handle{f: f, locker: m.locker}, nil
		}
		if !errors.Is(err, ErrFileLocked) {
			f.Close()
			return nil, fmt.Errorf("failed to lock %s: %w", m.path, err)
		}
		attempts++
		if time.Since(start) > timeout {
			f.Close()
			m.recordTimeout()
			return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, m.path, timeout)
		}
		select {
		case <-ctx.Done():
			f.Close()
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay *= 2; delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}

// Handle is a held lock. The lock file itself is left in place on release;
// removing it would race with concurrent openers of the same path.
type Handle struct {
	f      *os.File
	locker FileLocker
	once   sync.Once
}

// Release unlocks and closes the lock file. It is idempotent; repeated
// calls return nil.
func (h *Handle) Release() error {
	var err error
	h.once.Do(func() {
		err = h.locker.Unlock(h.f)
		if closeErr := h.f.Close(); err == nil {
			err = closeErr
		}
	})
	return err
}
