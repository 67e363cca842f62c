package fs

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/silo/pkg/core"
	"github.com/aretw0/silo/pkg/lock"
)

func findCheck(t *testing.T, h *core.Health, name string) core.Check {
	t.Helper()
	for _, check := range h.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("Check %q not found in %+v", name, h.Checks)
	return core.Check{}
}

func TestVerifyHealthy(t *testing.T) {
	engine := newTestEngine(t, nil)
	ctx := context.Background()

	if _, err := engine.Mutate(ctx, appendEntry("planner", "alive")); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}

	h := engine.Verify(ctx)
	if !h.OK {
		t.Fatalf("Expected healthy report, got %+v", h)
	}
	if h.Message != "All systems operational" {
		t.Errorf("Unexpected message: %q", h.Message)
	}
	if h.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
	if len(h.Checks) != 4 {
		t.Fatalf("Expected 4 checks, got %d", len(h.Checks))
	}

	if check := findCheck(t, h, "storage_file"); check.Status != core.CheckOK {
		t.Errorf("storage_file: %+v", check)
	}
	if check := findCheck(t, h, "file_locking"); check.Detail != "File locking operational" {
		t.Errorf("file_locking: %+v", check)
	}
	if check := findCheck(t, h, "json_parsing"); check.Detail != "1 entries" {
		t.Errorf("json_parsing: %+v", check)
	}
	if check := findCheck(t, h, "backup_system"); check.Status != core.CheckOK {
		t.Errorf("backup_system: %+v", check)
	}
}

func TestVerifyMissingFileIsHealthy(t *testing.T) {
	engine := newTestEngine(t, nil)

	h := engine.Verify(context.Background())
	if !h.OK {
		t.Fatalf("A store that was never written should be healthy, got %+v", h)
	}
	check := findCheck(t, h, "storage_file")
	if !strings.Contains(check.Detail, "not created yet") {
		t.Errorf("storage_file detail: %q", check.Detail)
	}
}

func TestVerifyCorruptStore(t *testing.T) {
	engine := newTestEngine(t, nil)
	ctx := context.Background()

	if err := os.WriteFile(engine.config.Path, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	h := engine.Verify(ctx)
	if h.OK {
		t.Fatal("Expected unhealthy report for corrupt store with no backups")
	}
	if h.Message != "Some checks failed - see details" {
		t.Errorf("Unexpected message: %q", h.Message)
	}
	if check := findCheck(t, h, "json_parsing"); check.Status != core.CheckError {
		t.Errorf("json_parsing: %+v", check)
	}
}

func TestVerifyLockContention(t *testing.T) {
	engine := newTestEngine(t, func(c *Config) { c.LockTimeout = 50 * time.Millisecond })
	ctx := context.Background()

	holder := lock.NewManager(engine.config.LockPath, nil)
	handle, err := holder.Acquire(ctx, time.Second)
	if err != nil {
		t.Fatalf("Failed to acquire lock out of band: %v", err)
	}
	defer handle.Release()

	h := engine.Verify(ctx)
	if h.OK {
		t.Fatal("Expected unhealthy report while the lock is held elsewhere")
	}
	if check := findCheck(t, h, "file_locking"); check.Status != core.CheckError {
		t.Errorf("file_locking: %+v", check)
	}
}
