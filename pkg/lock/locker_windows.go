//go:build windows

package lock

import (
	"os"

	"golang.org/x/sys/windows"
)

type windowsFileLocker struct{}

func (windowsFileLocker) TryLock(f *os.File) error {
	err := windows.LockFileEx(windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0, 1, 0, &windows.Overlapped{})
	if err != nil {
		if err == windows.ERROR_LOCK_VIOLATION {
			return ErrFileLocked
		}
		return err
	}
	return nil
}

func (windowsFileLocker) Unlock(f *os.File) error {
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, &windows.Overlapped{})
}

func newPlatformLocker() FileLocker {
	return windowsFileLocker{}
}
