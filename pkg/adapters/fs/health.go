package fs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/silo/pkg/core"
)

// Verify probes the storage stack: file accessibility, lock acquisition,
// payload parsing and the backup directory. A backup problem is reported
// as a warning and does not fail the check as a whole.
func (e *Engine) Verify(ctx context.Context) *core.Health {
	h := &core.Health{OK: true, Timestamp: time.Now().UTC()}

	switch info, err := os.Stat(e.config.Path); {
	case err == nil:
		h.Checks = append(h.Checks, core.Check{
			Name:   "storage_file",
			Status: core.CheckOK,
			Detail: fmt.Sprintf("%s (%d bytes)", e.config.Path, info.Size()),
		})
	case os.IsNotExist(err):
		h.Checks = append(h.Checks, core.Check{
			Name:   "storage_file",
			Status: core.CheckOK,
			Detail: fmt.Sprintf("%s (not created yet)", e.config.Path),
		})
	default:
		h.Checks = append(h.Checks, core.Check{Name: "storage_file", Status: core.CheckError, Detail: err.Error()})
		h.OK = false
	}

	if handle, err := e.acquire(ctx); err != nil {
		h.Checks = append(h.Checks, core.Check{Name: "file_locking", Status: core.CheckError, Detail: err.Error()})
		h.OK = false
	} else {
		handle.Release()
		h.Checks = append(h.Checks, core.Check{
			Name:   "file_locking",
			Status: core.CheckOK,
			Detail: "File locking operational",
		})
	}

	if store, err := e.Load(ctx); err != nil {
		h.Checks = append(h.Checks, core.Check{Name: "json_parsing", Status: core.CheckError, Detail: err.Error()})
		h.OK = false
	} else {
		h.Checks = append(h.Checks, core.Check{
			Name:   "json_parsing",
			Status: core.CheckOK,
			Detail: fmt.Sprintf("%d entries", len(store.Entries)),
		})
	}

	if backups, err := e.backups.infos(""); err != nil {
		h.Checks = append(h.Checks, core.Check{Name: "backup_system", Status: core.CheckWarning, Detail: err.Error()})
	} else {
		h.Checks = append(h.Checks, core.Check{
			Name:   "backup_system",
			Status: core.CheckOK,
			Detail: fmt.Sprintf("%d backups in %s", len(backups), e.config.BackupDir),
		})
	}

	if h.OK {
		h.Message = "All systems operational"
	} else {
		h.Message = "Some checks failed - see details"
	}
	return h
}
