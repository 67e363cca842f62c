//go:build unix

package lock

import (
	"os"
	"syscall"
)

type unixFileLocker struct{}

func (unixFileLocker) TryLock(f *os.File) error {
	err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		if err == syscall.EWOULDBLOCK {
			return ErrFileLocked
		}
		return err
	}
	return nil
}

func (unixFileLocker) Unlock(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}

func newPlatformLocker() FileLocker {
	return unixFileLocker{}
}
