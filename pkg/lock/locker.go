// Package lock serializes access to a storage file through an advisory
// lock on a sidecar file. Acquisition retries with exponential backoff
// until a deadline, so concurrent writers queue up instead of failing
// immediately.
//
// The guarantee only covers processes sharing one local filesystem.
// Network filesystems may not honor advisory locks.
package lock

import (
	"errors"
	"os"
)

// ErrFileLocked reports that another holder currently owns the lock.
var ErrFileLocked = errors.New("file is locked by another process")

// ErrTimeout reports that the lock was not acquired within the allowed
// window.
var ErrTimeout = errors.New("timed out waiting for lock")

// FileLocker abstracts platform-specific advisory locking on an open
// file. Implementations are safe for concurrent use on different files.
type FileLocker interface {
	// TryLock attempts to take the exclusive lock without blocking,
	// returning ErrFileLocked when another holder owns it.
	TryLock(f *os.File) error

	// Unlock releases a previously acquired lock. Safe to call on an
	// unlocked file.
	Unlock(f *os.File) error
}

// New returns the locker for the current platform.
func New() FileLocker {
	return newPlatformLocker()
}
