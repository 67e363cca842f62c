package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/silo/pkg/adapters/fs"
	"github.com/aretw0/silo/pkg/core"
)

// New assembles a storage service for the data file at path.
//
// Wiring is resolved in order: explicit options win, then values from the
// config file named by WithConfigFile, then engine defaults. An empty path
// falls back to the config file's store entry and finally to
// DefaultStorePath.
func New(path string, opts ...Option) (*core.Service, error) {
	engine, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewService(engine), nil
}

// Open builds and initializes the storage engine without the service layer
// on top.
func Open(path string, opts ...Option) (core.Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.engine != nil {
		return o.engine, nil
	}

	if o.configFile != "" {
		cfg, err := LoadFileConfig(o.configFile)
		if err != nil {
			return nil, err
		}
		if err := applyFileConfig(o, cfg, &path); err != nil {
			return nil, err
		}
	}

	if path == "" {
		path = DefaultStorePath()
	}

	engine := fs.New(fs.Config{
		Path:         path,
		LockPath:     o.lockPath,
		BackupDir:    o.backupDir,
		Retention:    o.retention,
		MaxEntries:   o.maxEntries,
		LockTimeout:  o.lockTimeout,
		FileMode:     o.fileMode,
		Codec:        o.codec,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})
	if err := engine.Initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return engine, nil
}

// applyFileConfig fills options left unset with config file values.
func applyFileConfig(o *options, cfg *FileConfig, path *string) error {
	if *path == "" {
		*path = cfg.Store
	}
	if o.lockPath == "" {
		o.lockPath = cfg.LockFile
	}
	if o.backupDir == "" {
		o.backupDir = cfg.BackupDir
	}
	if o.retention == 0 {
		o.retention = cfg.Retention
	}
	if o.maxEntries == 0 {
		o.maxEntries = cfg.MaxEntries
	}
	if o.lockTimeout == 0 {
		d, err := cfg.Timeout()
		if err != nil {
			return err
		}
		o.lockTimeout = d
	}
	return nil
}
