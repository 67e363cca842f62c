package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/silo/pkg/core"
)

// recoverFromBackups walks the snapshots newest first and returns the
// first one that decodes, together with its name. Unreadable or corrupt
// snapshots are skipped. When nothing decodes the store cannot be restored
// and core.ErrRecoveryExhausted is returned.
func (e *Engine) recoverFromBackups() (*core.Store, string, error) {
	names, err := e.backups.list()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: no backup directory at %s", core.ErrRecoveryExhausted, e.config.BackupDir)
		}
		return nil, "", fmt.Errorf("failed to read backup directory: %w", err)
	}

	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(e.config.BackupDir, name))
		if err != nil {
			if e.config.Logger != nil {
				e.config.Logger.Warn("failed to read backup", "name", name, "error", err)
			}
			continue
		}
		store, err := e.codec.Decode(raw)
		if err != nil {
			if e.config.Logger != nil {
				e.config.Logger.Warn("backup is corrupt, trying an older one", "name", name, "error", err)
			}
			continue
		}
		return store, name, nil
	}

	return nil, "", fmt.Errorf("%w: checked %d backups", core.ErrRecoveryExhausted, len(names))
}
