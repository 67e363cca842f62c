package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/silo/pkg/core"
	"github.com/aretw0/silo/pkg/lock"
)

const (
	// DefaultRetention is how many backup snapshots are kept.
	DefaultRetention = 10
	// DefaultMaxEntries is the rotation cap applied at persist time.
	DefaultMaxEntries = 1000
)

// Config holds the configuration for the filesystem storage engine.
type Config struct {
	// Path is the storage file location.
	Path string
	// LockPath guards Path. Defaults to Path + ".lock".
	LockPath string
	// BackupDir holds snapshots. Defaults to a "backups" directory next
	// to Path.
	BackupDir string
	// Retention caps how many snapshots survive pruning. Zero means
	// DefaultRetention.
	Retention int
	// MaxEntries is the rotation cap. Zero means DefaultMaxEntries; a
	// negative value disables rotation.
	MaxEntries int
	// LockTimeout bounds how long operations wait for the storage lock.
	// Zero means lock.DefaultTimeout.
	LockTimeout time.Duration
	// FileMode applies to the storage file and its snapshots.
	FileMode os.FileMode
	// Codec overrides the on-disk format. Defaults to the JSON envelope.
	Codec Codec
	Logger *slog.Logger
	// ErrorHandler receives failures from the background watcher.
	ErrorHandler func(error)
}

// Engine implements core.Engine on a single storage file guarded by an
// advisory lock. Every mutation runs the same pipeline: acquire the lock,
// load, transform, snapshot the previous bytes, rotate, persist atomically,
// release.
type Engine struct {
	config  Config
	locks   *lock.Manager
	codec   Codec
	backups *backupKeeper

	mu            sync.RWMutex
	loads         uint64
	mutations     uint64
	recoveries    uint64
	watcherActive bool
	lastPersist   *time.Time
}

// New creates a storage engine for the file at config.Path. Call
// Initialize before use.
func New(config Config) *Engine {
	if config.LockPath == "" {
		config.LockPath = config.Path + ".lock"
	}
	if config.BackupDir == "" {
		config.BackupDir = filepath.Join(filepath.Dir(config.Path), "backups")
	}
	if config.Retention == 0 {
		config.Retention = DefaultRetention
	}
	if config.MaxEntries == 0 {
		config.MaxEntries = DefaultMaxEntries
	}
	if config.LockTimeout <= 0 {
		config.LockTimeout = lock.DefaultTimeout
	}
	if config.FileMode == 0 {
		config.FileMode = 0o644
	}
	if config.Codec == nil {
		config.Codec = NewJSONCodec()
	}

	return &Engine{
		config:  config,
		locks:   lock.NewManager(config.LockPath, config.Logger),
		codec:   config.Codec,
		backups: newBackupKeeper(config.BackupDir, config.Retention, config.FileMode, config.Logger),
	}
}

// Initialize creates the storage and backup directories. The storage file
// itself is not created; a missing file reads as an empty store and comes
// into being on the first persist.
func (e *Engine) Initialize(ctx context.Context) error {
	if e.config.Path == "" {
		return fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(filepath.Dir(e.config.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := os.MkdirAll(e.config.BackupDir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	return nil
}

// acquire takes the storage lock, translating a lock timeout into
// core.ErrLockTimeout for callers.
func (e *Engine) acquire(ctx context.Context) (*lock.Handle, error) {
	handle, err := e.locks.Acquire(ctx, e.config.LockTimeout)
	if err != nil {
		if errors.Is(err, lock.ErrTimeout) {
			if e.config.Logger != nil {
				e.config.Logger.Warn("storage lock timed out",
					"path", e.config.LockPath, "timeout", e.config.LockTimeout)
			}
			return nil, fmt.Errorf("%w: %s not acquired within %s", core.ErrLockTimeout, e.config.LockPath, e.config.LockTimeout)
		}
		return nil, fmt.Errorf("failed to acquire storage lock: %w", err)
	}
	return handle, nil
}

// loadLocked reads and decodes the storage file. Must be called with the
// storage lock held. The clean flag reports whether raw holds decodable
// primary bytes, i.e. whether raw is worth snapshotting before the next
// persist. A corrupt primary falls back to backup recovery; when that is
// exhausted too, an empty store is returned together with
// core.ErrRecoveryExhausted.
// Note: context is not passed here as these are blocking local file
// operations.
func (e *Engine) loadLocked() (store *core.Store, raw []byte, clean bool, err error) {
	raw, err = os.ReadFile(e.config.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return e.emptyStore(), nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("failed to read storage file: %w", err)
	}

	store, decodeErr := e.codec.Decode(raw)
	if decodeErr == nil {
		return store, raw, true, nil
	}

	if e.config.Logger != nil {
		e.config.Logger.Warn("storage file is corrupt, attempting backup recovery",
			"path", e.config.Path, "error", decodeErr)
	}

	recovered, name, recErr := e.recoverFromBackups()
	if recErr != nil {
		if errors.Is(recErr, core.ErrRecoveryExhausted) {
			if e.config.Logger != nil {
				e.config.Logger.Error("backup recovery exhausted", "path", e.config.Path, "error", recErr)
			}
			return e.emptyStore(), raw, false, recErr
		}
		return nil, nil, false, recErr
	}

	if e.config.Logger != nil {
		e.config.Logger.Info("recovered store from backup", "backup", name, "entries", len(recovered.Entries))
	}
	e.recordRecovery()
	return recovered, raw, false, nil
}

func (e *Engine) emptyStore() *core.Store {
	return &core.Store{Version: core.StorageVersion, Entries: []core.Entry{}}
}

// Load returns the current store. When the primary file and every backup
// are unreadable, Load returns an empty store together with
// core.ErrRecoveryExhausted so the caller can decide whether to accept the
// loss. Load never writes.
func (e *Engine) Load(ctx context.Context) (*core.Store, error) {
	handle, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	store, _, _, err := e.loadLocked()
	if err != nil && !errors.Is(err, core.ErrRecoveryExhausted) {
		return nil, err
	}
	e.recordLoad()
	return store, err
}

// Mutate applies transform to the current store and persists the result,
// all under one hold of the storage lock.
//
// Workflow:
//  1. Acquire the advisory lock (bounded by LockTimeout).
//  2. Load the store, falling back to backups when the primary is corrupt.
//     An exhausted recovery starts from an empty store; the persist at the
//     end of this call heals the file.
//  3. Run transform. An error aborts the mutation with nothing written.
//  4. Snapshot the pre-transform file bytes, then prune old snapshots.
//     Corrupt primary bytes are never snapshotted.
//  5. Rotate out the oldest entries beyond MaxEntries.
//  6. Persist atomically and release the lock.
func (e *Engine) Mutate(ctx context.Context, transform func(*core.Store) error) (*core.Store, error) {
	handle, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	store, raw, clean, err := e.loadLocked()
	if err != nil {
		if !errors.Is(err, core.ErrRecoveryExhausted) {
			return nil, err
		}
		if e.config.Logger != nil {
			e.config.Logger.Warn("starting from an empty store", "path", e.config.Path)
		}
	}

	if err := transform(store); err != nil {
		return nil, err
	}

	if clean && len(raw) > 0 {
		if _, err := e.backups.snapshot(raw); err != nil {
			// A failed snapshot must not block the save itself.
			if e.config.Logger != nil {
				e.config.Logger.Warn("failed to snapshot storage before save", "error", err)
			}
		} else {
			e.backups.prune()
		}
	}

	if dropped := core.Rotate(store, e.config.MaxEntries); dropped > 0 && e.config.Logger != nil {
		e.config.Logger.Warn("rotated oldest entries out",
			"dropped", dropped, "max_entries", e.config.MaxEntries)
	}

	if err := e.persistLocked(store); err != nil {
		return nil, err
	}
	e.recordMutation()
	return store, nil
}

// persistLocked stamps the envelope and writes it atomically. Must be
// called with the storage lock held.
func (e *Engine) persistLocked(store *core.Store) error {
	store.Version = core.StorageVersion
	now := time.Now()
	if store.CreatedAt.IsZero() {
		store.CreatedAt = now
	}
	store.UpdatedAt = now
	if store.Entries == nil {
		store.Entries = []core.Entry{}
	}

	data, err := e.codec.Encode(store)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if err := writeFileAtomic(e.config.Path, data, e.config.FileMode); err != nil {
		return &core.PersistError{Path: e.config.Path, Err: err}
	}
	return nil
}

// Backups lists backup snapshots matching pattern, newest first.
func (e *Engine) Backups(ctx context.Context, pattern string) ([]core.BackupInfo, error) {
	return e.backups.infos(pattern)
}

// Info describes the storage behind the engine.
func (e *Engine) Info() (core.EngineInfo, error) {
	info := core.EngineInfo{
		Path:       e.config.Path,
		LockPath:   e.config.LockPath,
		BackupDir:  e.config.BackupDir,
		MaxEntries: e.config.MaxEntries,
		Retention:  e.config.Retention,
	}
	fi, err := os.Stat(e.config.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return info, nil
		}
		return core.EngineInfo{}, fmt.Errorf("failed to stat storage file: %w", err)
	}
	info.SizeBytes = fi.Size()
	return info, nil
}

var (
	_ core.Engine       = (*Engine)(nil)
	_ core.BackupLister = (*Engine)(nil)
	_ core.Informer     = (*Engine)(nil)
	_ core.Checker      = (*Engine)(nil)
	_ core.Watchable    = (*Engine)(nil)
)
