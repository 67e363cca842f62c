package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "silo.yml")
	content := `store: /var/lib/silo/memory.json
retention: 7
max_entries: 250
lock_timeout: 250ms
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig failed: %v", err)
	}
	if cfg.Store != "/var/lib/silo/memory.json" {
		t.Errorf("Store = %q", cfg.Store)
	}
	if cfg.Retention != 7 || cfg.MaxEntries != 250 {
		t.Errorf("Limits = %d, %d", cfg.Retention, cfg.MaxEntries)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}

	d, err := cfg.Timeout()
	if err != nil {
		t.Fatalf("Timeout failed: %v", err)
	}
	if d != 250*time.Millisecond {
		t.Errorf("Timeout = %v", d)
	}
}

func TestLoadFileConfigErrors(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "silo.yml")
	if err := os.WriteFile(bad, []byte("store: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(bad); err == nil {
		t.Error("Expected error for malformed yaml")
	}

	cfg := &FileConfig{LockTimeout: "soon"}
	if _, err := cfg.Timeout(); err == nil {
		t.Error("Expected error for unparsable timeout")
	}
}

func TestFindConfigExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	if err := os.WriteFile(path, []byte("retention: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfig(path)
	if err != nil || found != path {
		t.Errorf("FindConfig = %q, %v", found, err)
	}

	if _, err := FindConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected error for missing explicit config")
	}
}

func TestApplyFileConfigPrecedence(t *testing.T) {
	cfg := &FileConfig{
		Store:       "/from/config.json",
		BackupDir:   "/from/config/backups",
		Retention:   7,
		MaxEntries:  500,
		LockTimeout: "2s",
	}

	// Explicit options win over config values.
	o := &options{retention: 3}
	path := "/explicit.json"
	if err := applyFileConfig(o, cfg, &path); err != nil {
		t.Fatalf("applyFileConfig failed: %v", err)
	}
	if path != "/explicit.json" {
		t.Errorf("Explicit path overridden: %q", path)
	}
	if o.retention != 3 {
		t.Errorf("Explicit retention overridden: %d", o.retention)
	}
	if o.maxEntries != 500 || o.backupDir != "/from/config/backups" {
		t.Errorf("Config values not applied: %+v", o)
	}
	if o.lockTimeout != 2*time.Second {
		t.Errorf("lockTimeout = %v", o.lockTimeout)
	}

	// Unset path falls back to the config store.
	o = &options{}
	path = ""
	if err := applyFileConfig(o, cfg, &path); err != nil {
		t.Fatalf("applyFileConfig failed: %v", err)
	}
	if path != "/from/config.json" {
		t.Errorf("Config store not applied: %q", path)
	}
}

func TestDefaultStorePath(t *testing.T) {
	path := DefaultStorePath()
	if !strings.Contains(path, ".silo") || filepath.Base(path) != "memory.json" {
		t.Errorf("Unexpected default store path: %s", path)
	}
}
