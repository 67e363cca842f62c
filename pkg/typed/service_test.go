package typed_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/silo/pkg/adapters/fs"
	"github.com/aretw0/silo/pkg/core"
	"github.com/aretw0/silo/pkg/typed"
)

// ReviewMeta is the structured metadata stored by these tests.
type ReviewMeta struct {
	Ticket   string `json:"ticket"`
	Severity int    `json:"severity"`
}

func setupService(t *testing.T) *core.Service {
	t.Helper()
	engine := fs.New(fs.Config{Path: filepath.Join(t.TempDir(), "memory.json")})
	if err := engine.Initialize(context.Background()); err != nil {
		t.Fatalf("Failed to initialize engine: %v", err)
	}
	return core.NewService(engine)
}

func TestTypedService_RoundTrip(t *testing.T) {
	svc := setupService(t)
	typedSvc := typed.NewService[ReviewMeta](svc)
	ctx := context.Background()

	added, err := typedSvc.Add(ctx, core.AddRequest{
		Agent:   "reviewer",
		Content: "Flagged the auth bypass",
	}, ReviewMeta{Ticket: "SEC-42", Severity: 2})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.Data.Ticket != "SEC-42" || added.Data.Severity != 2 {
		t.Errorf("Add returned wrong data: %+v", added.Data)
	}

	got, err := typedSvc.Get(ctx, added.Entry.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Data.Ticket != "SEC-42" || got.Data.Severity != 2 {
		t.Errorf("Get returned wrong data: %+v", got.Data)
	}
	if got.Entry.Agent != "reviewer" {
		t.Errorf("Entry fields lost: %+v", got.Entry)
	}

	// The raw metadata map carries the same fields.
	raw, err := svc.Get(ctx, added.Entry.ID)
	if err != nil {
		t.Fatalf("Raw get failed: %v", err)
	}
	if raw.Metadata["ticket"] != "SEC-42" {
		t.Errorf("Raw metadata mismatch: %+v", raw.Metadata)
	}
}

func TestTypedService_List(t *testing.T) {
	svc := setupService(t)
	typedSvc := typed.NewService[ReviewMeta](svc)
	ctx := context.Background()

	for i, ticket := range []string{"SEC-1", "SEC-2"} {
		if _, err := typedSvc.Add(ctx, core.AddRequest{
			Agent:   "reviewer",
			Content: "note",
		}, ReviewMeta{Ticket: ticket, Severity: i}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	models, err := typedSvc.List(ctx, core.ListRequest{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("Expected 2 models, got %d", len(models))
	}
	if models[0].Data.Ticket != "SEC-1" || models[1].Data.Ticket != "SEC-2" {
		t.Errorf("List order or data mismatch: %+v, %+v", models[0].Data, models[1].Data)
	}
}

func TestTypedService_Update(t *testing.T) {
	svc := setupService(t)
	typedSvc := typed.NewService[ReviewMeta](svc)
	ctx := context.Background()

	added, err := typedSvc.Add(ctx, core.AddRequest{
		Agent:   "reviewer",
		Content: "initial",
	}, ReviewMeta{Ticket: "SEC-7", Severity: 1})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Updating without data leaves the metadata alone.
	newContent := "revised finding"
	updated, err := typedSvc.Update(ctx, core.UpdateRequest{
		ID:      added.Entry.ID,
		Content: &newContent,
	}, nil)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Entry.Content != "revised finding" {
		t.Errorf("Content not updated: %+v", updated.Entry)
	}
	if updated.Data.Ticket != "SEC-7" {
		t.Errorf("Metadata should be unchanged, got %+v", updated.Data)
	}

	// Updating with data replaces the metadata.
	updated, err = typedSvc.Update(ctx, core.UpdateRequest{ID: added.Entry.ID},
		&ReviewMeta{Ticket: "SEC-8", Severity: 3})
	if err != nil {
		t.Fatalf("Update with data failed: %v", err)
	}
	if updated.Data.Ticket != "SEC-8" || updated.Data.Severity != 3 {
		t.Errorf("Metadata not replaced: %+v", updated.Data)
	}
}

func TestTypedService_MismatchedMetadata(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	entry, err := svc.Add(ctx, core.AddRequest{
		Agent:    "reviewer",
		Content:  "free-form entry",
		Metadata: core.Metadata{"severity": "not a number"},
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	typedSvc := typed.NewService[ReviewMeta](svc)
	if _, err := typedSvc.Get(ctx, entry.ID); err == nil {
		t.Error("Expected decode error for mismatched metadata, got nil")
	}
}

func TestTypedService_Delete(t *testing.T) {
	svc := setupService(t)
	typedSvc := typed.NewService[ReviewMeta](svc)
	ctx := context.Background()

	added, err := typedSvc.Add(ctx, core.AddRequest{Agent: "reviewer", Content: "gone soon"},
		ReviewMeta{Ticket: "SEC-9"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	remaining, err := typedSvc.Delete(ctx, added.Entry.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", remaining)
	}
}
