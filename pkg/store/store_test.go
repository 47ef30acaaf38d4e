package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/manwithacat/dazzle-sub005/pkg/layout"
)

func archivedPlan(t *testing.T, workspaceID string) *Entry {
	t.Helper()
	ws := &layout.Workspace{
		ID: workspaceID,
		Regions: []layout.Region{
			{Name: "health", Source: "orders", Aggregates: []string{"count"}},
		},
	}
	plan := layout.BuildPlan(ws, nil)
	return &Entry{
		WorkspaceID: workspaceID,
		Fingerprint: plan.Metadata.Fingerprint,
		Plan:        plan,
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	entry := archivedPlan(t, "ops")
	if err := s.Put(ctx, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if entry.ID == "" {
		t.Error("Put should assign an entry ID")
	}
	if entry.StoredAt.IsZero() {
		t.Error("Put should stamp stored_at")
	}

	got, err := s.GetByFingerprint(ctx, entry.Fingerprint)
	if err != nil {
		t.Fatalf("GetByFingerprint: %v", err)
	}
	if got.WorkspaceID != "ops" || got.Plan == nil {
		t.Errorf("got = %+v", got)
	}
}

func TestMemoryStoreUpsertByFingerprint(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	entry := archivedPlan(t, "ops")
	if err := s.Put(ctx, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}
	firstID := entry.ID

	again := archivedPlan(t, "ops")
	if err := s.Put(ctx, again); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if again.ID != firstID {
		t.Errorf("re-archiving the same fingerprint should keep ID %s, got %s", firstID, again.ID)
	}

	entries, err := s.ListByWorkspace(ctx, "ops", 0)
	if err != nil {
		t.Fatalf("ListByWorkspace: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1 (upsert, not append)", len(entries))
	}
}

func TestMemoryStoreListByWorkspace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	now := time.Now().UTC()
	for i, fp := range []string{"fp-a", "fp-b", "fp-c"} {
		err := s.Put(ctx, &Entry{
			WorkspaceID: "ops",
			Fingerprint: fp,
			StoredAt:    now.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	if err := s.Put(ctx, &Entry{WorkspaceID: "other", Fingerprint: "fp-x"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	entries, err := s.ListByWorkspace(ctx, "ops", 0)
	if err != nil {
		t.Fatalf("ListByWorkspace: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Fingerprint != "fp-c" {
		t.Errorf("entries should be newest first, got %s", entries[0].Fingerprint)
	}

	limited, err := s.ListByWorkspace(ctx, "ops", 2)
	if err != nil {
		t.Fatalf("ListByWorkspace: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d entries", len(limited))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	entry := archivedPlan(t, "ops")
	if err := s.Put(ctx, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, entry.Fingerprint); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := s.GetByFingerprint(ctx, entry.Fingerprint)
	var notFound *ErrNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, entry.Fingerprint); !errors.As(err, &notFound) {
		t.Errorf("double Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	entry := archivedPlan(t, "ops")
	if err := s.Put(ctx, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.GetByFingerprint(ctx, entry.Fingerprint)
	if err != nil {
		t.Fatalf("GetByFingerprint: %v", err)
	}
	got.WorkspaceID = "mutated"

	again, err := s.GetByFingerprint(ctx, entry.Fingerprint)
	if err != nil {
		t.Fatalf("GetByFingerprint: %v", err)
	}
	if again.WorkspaceID != "ops" {
		t.Error("mutating a returned entry must not affect the stored one")
	}
}
