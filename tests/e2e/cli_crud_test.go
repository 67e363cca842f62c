package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCLI_CRUD(t *testing.T) {
	// Setup temporary directory
	tempDir, err := os.MkdirTemp("", "silo-crud-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	siloBin := buildSiloBinary(t, tempDir)
	storePath := filepath.Join(tempDir, "memory.json")

	t.Run("Add And List", func(t *testing.T) {
		runCmd(t, tempDir, siloBin, "--store", storePath,
			"add", "--agent", "planner", "--content", "Sketch the rollout plan",
			"--tag", "planning", "--priority", "high")

		out := runCmd(t, tempDir, siloBin, "--store", storePath, "list")
		if !strings.Contains(out, "Sketch the rollout plan") {
			t.Errorf("Expected listed content, got:\n%s", out)
		}
		if !strings.Contains(out, "planner") {
			t.Errorf("Expected agent name, got:\n%s", out)
		}
	})

	t.Run("JSON Output", func(t *testing.T) {
		out := runCmd(t, tempDir, siloBin, "--store", storePath, "list", "--json")

		var doc struct {
			TotalEntries int `json:"total_entries"`
			Entries      []struct {
				ID    string `json:"entry_id"`
				Agent string `json:"agent"`
			} `json:"entries"`
		}
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("list --json output is not valid JSON: %v\n%s", err, out)
		}
		if doc.TotalEntries != 1 || len(doc.Entries) != 1 {
			t.Fatalf("Expected exactly one entry, got %+v", doc)
		}
		if doc.Entries[0].Agent != "planner" {
			t.Errorf("Expected agent planner, got %s", doc.Entries[0].Agent)
		}
	})

	t.Run("Get Update Delete", func(t *testing.T) {
		out := runCmd(t, tempDir, siloBin, "--store", storePath, "list", "--json")
		var doc struct {
			Entries []struct {
				ID string `json:"entry_id"`
			} `json:"entries"`
		}
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatal(err)
		}
		id := doc.Entries[0].ID

		out = runCmd(t, tempDir, siloBin, "--store", storePath, "get", id)
		if !strings.Contains(out, id) {
			t.Errorf("Expected entry ID in output, got:\n%s", out)
		}

		runCmd(t, tempDir, siloBin, "--store", storePath,
			"update", id, "--content", "Rollout plan revised", "--priority", "low")

		out = runCmd(t, tempDir, siloBin, "--store", storePath, "get", id, "--json")
		if !strings.Contains(out, "Rollout plan revised") {
			t.Errorf("Expected updated content, got:\n%s", out)
		}
		if !strings.Contains(out, `"priority": "low"`) {
			t.Errorf("Expected updated priority, got:\n%s", out)
		}

		out = runCmd(t, tempDir, siloBin, "--store", storePath, "delete", id)
		if !strings.Contains(out, "0 remaining") {
			t.Errorf("Expected empty store after delete, got:\n%s", out)
		}
	})

	t.Run("Search", func(t *testing.T) {
		runCmd(t, tempDir, siloBin, "--store", storePath,
			"add", "--agent", "scout", "--content", "Importer has a regression")
		runCmd(t, tempDir, siloBin, "--store", storePath,
			"add", "--agent", "scout", "--content", "Exporter is fine")

		out := runCmd(t, tempDir, siloBin, "--store", storePath, "search", "regression")
		if !strings.Contains(out, "Importer has a regression") {
			t.Errorf("Expected search hit, got:\n%s", out)
		}
		if strings.Contains(out, "Exporter is fine") {
			t.Errorf("Did not expect non-matching entry, got:\n%s", out)
		}
	})

	t.Run("Invalid Priority Fails", func(t *testing.T) {
		runCmdExpectError(t, tempDir, siloBin, "--store", storePath,
			"add", "--agent", "scout", "--content", "bad", "--priority", "urgent")
	})
}
