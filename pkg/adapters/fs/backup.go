package fs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/silo/pkg/core"
)

const (
	backupPrefix     = "memory_backup_"
	backupExt        = ".json"
	backupTimeLayout = "20060102_150405"

	// maxBackupSuffix bounds the collision counter when several snapshots
	// land in the same second.
	maxBackupSuffix = 1000
)

// backupKeeper owns the snapshot directory: naming, retention pruning and
// listing. Snapshot names sort lexicographically in creation order, so the
// newest backup is always the largest name.
type backupKeeper struct {
	dir       string
	retention int
	mode      os.FileMode
	logger    *slog.Logger

	now func() time.Time
}

func newBackupKeeper(dir string, retention int, mode os.FileMode, logger *slog.Logger) *backupKeeper {
	return &backupKeeper{
		dir:       dir,
		retention: retention,
		mode:      mode,
		logger:    logger,
		now:       time.Now,
	}
}

// snapshot writes raw to a fresh timestamped file and returns its name.
// When several snapshots fall into the same second, a numeric suffix keeps
// each name unique and preserves creation order.
func (b *backupKeeper) snapshot(raw []byte) (string, error) {
	stamp := b.now().UTC().Format(backupTimeLayout)
	for attempt := 0; attempt < maxBackupSuffix; attempt++ {
		name := backupPrefix + stamp + backupExt
		if attempt > 0 {
			name = fmt.Sprintf("%s%s_%03d%s", backupPrefix, stamp, attempt, backupExt)
		}
		path := filepath.Join(b.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, b.mode)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create backup file: %w", err)
		}

		if _, err := f.Write(raw); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
		if err := f.Sync(); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to sync backup: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close backup: %w", err)
		}

		if b.logger != nil {
			b.logger.Debug("backup created", "name", name, "bytes", len(raw))
		}
		return name, nil
	}
	return "", fmt.Errorf("no free backup name left for %s", stamp)
}

// prune removes the oldest snapshots beyond the retention cap. Pruning is
// best effort; failures are logged and never block a save.
func (b *backupKeeper) prune() {
	names, err := b.list()
	if err != nil {
		if b.logger != nil {
			b.logger.Warn("failed to list backups for pruning", "error", err)
		}
		return
	}
	if b.retention <= 0 || len(names) <= b.retention {
		return
	}
	for _, name := range names[b.retention:] {
		err := os.Remove(filepath.Join(b.dir, name))
		switch {
		case err == nil:
			if b.logger != nil {
				b.logger.Debug("pruned old backup", "name", name)
			}
		case !os.IsNotExist(err):
			if b.logger != nil {
				b.logger.Warn("failed to prune backup", "name", name, "error", err)
			}
		}
	}
}

// list returns snapshot names sorted newest first.
func (b *backupKeeper) list() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupExt) {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// infos lists snapshots matching pattern, newest first. An empty pattern
// matches everything.
func (b *backupKeeper) infos(pattern string) ([]core.BackupInfo, error) {
	names, err := b.list()
	if err != nil {
		if os.IsNotExist(err) {
			return []core.BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	out := make([]core.BackupInfo, 0, len(names))
	for _, name := range names {
		if pattern != "" {
			ok, err := doublestar.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("invalid backup pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}
		path := filepath.Join(b.dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		out = append(out, core.BackupInfo{
			Name:      name,
			Path:      path,
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	return out, nil
}
