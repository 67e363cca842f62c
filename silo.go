package silo

import (
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/silo/internal/platform"
	"github.com/aretw0/silo/pkg/adapters/fs"
	"github.com/aretw0/silo/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Entry is a public alias for the stored entry type.
type Entry = core.Entry

// Metadata is a public alias for the flexible entry metadata.
type Metadata = core.Metadata

// Service is a public alias for the domain service.
type Service = core.Service

// AddRequest is a public alias for the Add operation input.
type AddRequest = core.AddRequest

// ListRequest is a public alias for the List operation input.
type ListRequest = core.ListRequest

// UpdateRequest is a public alias for the Update operation input.
type UpdateRequest = core.UpdateRequest

// SearchRequest is a public alias for the Search operation input.
type SearchRequest = core.SearchRequest

// --- Configuration ---

// Option defines a functional option for configuring silo.
type Option = platform.Option

// WithLogger sets the logger for the service and its storage engine.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithEngine allows injecting a custom storage engine.
func WithEngine(engine core.Engine) Option {
	return platform.WithEngine(engine)
}

// WithConfigFile points at a silo.yml file whose values fill in any option
// not set explicitly.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// WithLockPath overrides the lock sidecar location.
func WithLockPath(path string) Option {
	return platform.WithLockPath(path)
}

// WithBackupDir overrides where backup snapshots are written.
func WithBackupDir(dir string) Option {
	return platform.WithBackupDir(dir)
}

// WithRetention caps how many backup snapshots are kept.
func WithRetention(n int) Option {
	return platform.WithRetention(n)
}

// WithMaxEntries sets the rotation cap. A negative value disables rotation.
func WithMaxEntries(n int) Option {
	return platform.WithMaxEntries(n)
}

// WithLockTimeout bounds how long operations wait for the storage lock.
func WithLockTimeout(d time.Duration) Option {
	return platform.WithLockTimeout(d)
}

// WithFileMode sets the permissions for the storage file and its snapshots.
func WithFileMode(mode os.FileMode) Option {
	return platform.WithFileMode(mode)
}

// WithCodec overrides the on-disk format.
func WithCodec(codec fs.Codec) Option {
	return platform.WithCodec(codec)
}

// WithWatcherErrorHandler registers a callback for errors occurring during
// the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a new silo Service for the storage file at path. An empty
// path falls back to the config file's store entry and finally to
// DefaultStorePath.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Open initializes a storage engine explicitly, without the service layer.
func Open(path string, opts ...Option) (core.Engine, error) {
	return platform.Open(path, opts...)
}

// --- Utils ---

// DefaultStorePath returns where the storage file lives when neither path
// nor config names one.
func DefaultStorePath() string {
	return platform.DefaultStorePath()
}

// FindConfig resolves the config file to load: the explicit path when given
// (which must exist), otherwise silo.yml in the working directory when
// present, otherwise empty.
func FindConfig(explicit string) (string, error) {
	return platform.FindConfig(explicit)
}
