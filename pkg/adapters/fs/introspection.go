package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// EngineState exposes internal state for observability.
type EngineState struct {
	Path          string     `json:"path"`
	LockPath      string     `json:"lock_path"`
	BackupDir     string     `json:"backup_dir"`
	MaxEntries    int        `json:"max_entries"`
	Retention     int        `json:"retention"`
	Loads         uint64     `json:"loads"`
	Mutations     uint64     `json:"mutations"`
	Recoveries    uint64     `json:"recoveries"`
	WatcherActive bool       `json:"watcher_active"`
	LastPersist   *time.Time `json:"last_persist,omitempty"`
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return EngineState{
		Path:          e.config.Path,
		LockPath:      e.config.LockPath,
		BackupDir:     e.config.BackupDir,
		MaxEntries:    e.config.MaxEntries,
		Retention:     e.config.Retention,
		Loads:         e.loads,
		Mutations:     e.mutations,
		Recoveries:    e.recoveries,
		WatcherActive: e.watcherActive,
		LastPersist:   e.lastPersist,
	}
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "storage-engine"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)

func (e *Engine) setWatcherActive(active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.watcherActive = active
}

func (e *Engine) recordLoad() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loads++
}

func (e *Engine) recordMutation() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mutations++
	now := time.Now()
	e.lastPersist = &now
}

func (e *Engine) recordRecovery() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recoveries++
}
