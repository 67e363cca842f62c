package integration

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/silo"
	"github.com/aretw0/silo/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecoveryFromBackup simulates a crash that leaves garbage in the
// storage file and verifies the store comes back from the newest backup.
func TestRecoveryFromBackup(t *testing.T) {
	tempDir := t.TempDir()
	storePath := filepath.Join(tempDir, "memory.json")

	service, err := silo.New(storePath)
	require.NoError(t, err)

	ctx := context.Background()

	// Two writes so the second one snapshots the first state
	_, err = service.Add(ctx, silo.AddRequest{Agent: "historian", Content: "first fact"})
	require.NoError(t, err)
	_, err = service.Add(ctx, silo.AddRequest{Agent: "historian", Content: "second fact"})
	require.NoError(t, err)

	backups, err := service.Backups(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, backups, "second write should have produced a backup")

	// Simulate the crash: clobber the primary file
	require.NoError(t, os.WriteFile(storePath, []byte("{{{ definitely not json"), 0644))

	// A fresh handle recovers the backed up state
	recovered, err := silo.New(storePath)
	require.NoError(t, err)

	entries, err := recovered.List(ctx, silo.ListRequest{})
	require.NoError(t, err)
	require.Len(t, entries, 1, "backup held the state before the second write")
	assert.Equal(t, "first fact", entries[0].Content)

	// Writing through the recovered handle heals the primary file
	_, err = recovered.Add(ctx, silo.AddRequest{Agent: "historian", Content: "post-crash fact"})
	require.NoError(t, err)

	raw, err := os.ReadFile(storePath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc), "healed file must be valid JSON")

	entries, err = recovered.List(ctx, silo.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

// TestRecoveryExhausted covers the worst case: primary and every backup are
// unreadable. Reads degrade to an empty store instead of failing outright.
func TestRecoveryExhausted(t *testing.T) {
	tempDir := t.TempDir()
	storePath := filepath.Join(tempDir, "memory.json")

	service, err := silo.New(storePath)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = service.Add(ctx, silo.AddRequest{Agent: "writer", Content: "doomed"})
	require.NoError(t, err)

	// Corrupt the primary; there are no backups yet after a single write
	require.NoError(t, os.WriteFile(storePath, []byte("not json at all"), 0644))

	fresh, err := silo.New(storePath)
	require.NoError(t, err)

	_, err = fresh.List(ctx, silo.ListRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrRecoveryExhausted), "expected ErrRecoveryExhausted, got: %v", err)

	// The store still accepts new writes afterwards
	_, err = fresh.Add(ctx, silo.AddRequest{Agent: "writer", Content: "fresh start"})
	require.NoError(t, err)

	entries, err := fresh.List(ctx, silo.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
