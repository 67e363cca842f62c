package platform

import (
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/silo/pkg/adapters/fs"
	"github.com/aretw0/silo/pkg/core"
)

// options holds the internal configuration for the silo service.
type options struct {
	engine       core.Engine
	logger       *slog.Logger
	configFile   string
	lockPath     string
	backupDir    string
	retention    int
	maxEntries   int
	lockTimeout  time.Duration
	fileMode     os.FileMode
	codec        fs.Codec
	errorHandler func(error)
}

// Option defines a functional option for configuring silo.
type Option func(*options)

// defaultOptions returns the default configuration. Zero values defer to the
// storage engine's own defaults.
func defaultOptions() *options {
	return &options{}
}

// WithEngine allows injecting a custom storage engine (e.g. a mock).
// If provided, the default filesystem engine will be skipped.
func WithEngine(engine core.Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithLogger sets the logger for the service and its storage engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConfigFile points at a silo.yml file whose values fill in any option
// not set explicitly.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithLockPath overrides the lock sidecar location. Defaults to the storage
// path plus ".lock".
func WithLockPath(path string) Option {
	return func(o *options) {
		o.lockPath = path
	}
}

// WithBackupDir overrides where snapshots are written. Defaults to a
// "backups" directory next to the storage file.
func WithBackupDir(dir string) Option {
	return func(o *options) {
		o.backupDir = dir
	}
}

// WithRetention caps how many backup snapshots are kept.
func WithRetention(n int) Option {
	return func(o *options) {
		o.retention = n
	}
}

// WithMaxEntries sets the rotation cap. A negative value disables rotation.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// WithLockTimeout bounds how long operations wait for the storage lock.
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.lockTimeout = d
	}
}

// WithFileMode sets the permissions for the storage file and its snapshots.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}

// WithCodec overrides the on-disk format.
func WithCodec(codec fs.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring during
// the Watch loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
