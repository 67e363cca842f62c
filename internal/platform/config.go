package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the config file looked up in the working directory when
// no explicit path is given.
const ConfigFileName = "silo.yml"

// FileConfig mirrors the silo.yml configuration file. Every field is
// optional; unset fields defer to flags and built-in defaults.
type FileConfig struct {
	Store       string `yaml:"store"`
	LockFile    string `yaml:"lock_file"`
	BackupDir   string `yaml:"backup_dir"`
	Retention   int    `yaml:"retention"`
	MaxEntries  int    `yaml:"max_entries"`
	LockTimeout string `yaml:"lock_timeout"`
	LogLevel    string `yaml:"log_level"`
}

// LoadFileConfig reads and parses a silo.yml file.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// FindConfig locates the effective config file: the explicit path when
// given, otherwise ConfigFileName in the working directory. Returns the
// empty string when no config file exists.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName, nil
	}
	return "", nil
}

// Timeout parses the configured lock timeout. Zero when unset.
func (c *FileConfig) Timeout() (time.Duration, error) {
	if c.LockTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.LockTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid lock_timeout %q: %w", c.LockTimeout, err)
	}
	return d, nil
}

// DefaultStorePath is where the storage file lives when neither flag nor
// config names one.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".silo", "memory.json")
	}
	return filepath.Join(home, ".silo", "memory.json")
}
