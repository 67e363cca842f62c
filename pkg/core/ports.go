package core

import "context"

// Engine is the persistence port. Implementations own the storage file,
// its lock protocol and its backup lifecycle.
type Engine interface {
	// Load returns the current store without modifying it.
	Load(ctx context.Context) (*Store, error)

	// Mutate applies transform to the current store while holding the
	// storage lock, then persists the result atomically. If transform
	// returns an error nothing is written and the error is returned
	// unchanged. The returned store reflects the persisted state.
	Mutate(ctx context.Context, transform func(*Store) error) (*Store, error)
}

// Watchable is implemented by engines that can report external changes to
// the storage file.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// BackupLister is implemented by engines that keep backup snapshots.
type BackupLister interface {
	// Backups lists snapshots whose file name matches pattern, newest
	// first. An empty pattern matches all snapshots.
	Backups(ctx context.Context, pattern string) ([]BackupInfo, error)
}

// Checker is implemented by engines that can probe their own health.
type Checker interface {
	Verify(ctx context.Context) *Health
}

// Informer is implemented by engines that expose their storage layout.
type Informer interface {
	Info() (EngineInfo, error)
}

// EngineInfo describes the storage behind an engine.
type EngineInfo struct {
	Path       string `json:"path"`
	LockPath   string `json:"lock_path"`
	BackupDir  string `json:"backup_dir"`
	SizeBytes  int64  `json:"size_bytes"`
	MaxEntries int    `json:"max_entries"`
	Retention  int    `json:"retention"`
}
