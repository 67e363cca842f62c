package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/silo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSharedStore ensures that independent services pointed at the same file
// behave like one store: writes from one side are immediately visible to the
// other, and the file on disk stays valid JSON throughout.
func TestSharedStore(t *testing.T) {
	// 1. Setup a clean temp environment
	tempDir := t.TempDir()
	storePath := filepath.Join(tempDir, "memory.json")

	writer, err := silo.New(storePath)
	require.NoError(t, err)
	reader, err := silo.New(storePath)
	require.NoError(t, err)

	ctx := context.Background()

	// 2. Writer records entries
	first, err := writer.Add(ctx, silo.AddRequest{
		Agent:    "planner",
		Content:  "Sketch the rollout plan",
		Tags:     []string{"planning"},
		Priority: "high",
	})
	require.NoError(t, err)

	_, err = writer.Add(ctx, silo.AddRequest{
		Agent:   "executor",
		Content: "Rollout step one done",
	})
	require.NoError(t, err)

	// 3. Reader sees them without any shared state in memory
	entries, err := reader.List(ctx, silo.ListRequest{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "planner", entries[0].Agent)

	// 4. Reader updates, writer observes
	_, err = reader.Update(ctx, silo.UpdateRequest{
		ID:       first.ID,
		Priority: "low",
	})
	require.NoError(t, err)

	got, err := writer.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "low", string(got.Priority))
	require.NotNil(t, got.UpdatedAt)

	// 5. The file on disk is a valid versioned document
	raw, err := os.ReadFile(storePath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "version")
	assert.Contains(t, doc, "entries")

	// 6. Delete through one side, both agree on the count
	remaining, err := reader.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	entries, err = writer.List(ctx, silo.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// TestSearchAndStatsAcrossHandles exercises read paths against a store
// populated by a different handle.
func TestSearchAndStatsAcrossHandles(t *testing.T) {
	tempDir := t.TempDir()
	storePath := filepath.Join(tempDir, "memory.json")

	writer, err := silo.New(storePath)
	require.NoError(t, err)

	ctx := context.Background()
	seed := []silo.AddRequest{
		{Agent: "scout", Content: "Found a regression in the importer", Tags: []string{"bug"}, Priority: "high"},
		{Agent: "scout", Content: "Importer regression has a workaround", Tags: []string{"bug", "workaround"}},
		{Agent: "fixer", Content: "Workaround deployed to staging", Priority: "low"},
	}
	for _, req := range seed {
		_, err := writer.Add(ctx, req)
		require.NoError(t, err)
	}

	reader, err := silo.New(storePath)
	require.NoError(t, err)

	// Case-insensitive by default
	found, err := reader.Search(ctx, silo.SearchRequest{Query: "REGRESSION"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = reader.Search(ctx, silo.SearchRequest{Query: "REGRESSION", CaseSensitive: true})
	require.NoError(t, err)
	assert.Empty(t, found)

	// Tag matches count as search hits too
	found, err = reader.Search(ctx, silo.SearchRequest{Query: "workaround"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	stats, err := reader.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 2, stats.AgentActivity["scout"])
	assert.NotZero(t, stats.StorageSizeBytes)
}
