package library

import (
	"context"
	"testing"

	"screenplay-worker/domain/models"
)

func seedEntries(t *testing.T, s *MemoryStore) {
	t.Helper()
	ctx := context.Background()
	entries := []*models.LibraryEntry{
		{ID: "old", URL: "https://youtu.be/old", CreatedAt: 100, Status: models.EntryComplete},
		{ID: "mid", URL: "https://youtu.be/mid", CreatedAt: 200, Status: models.EntryError},
		{ID: "new", URL: "https://youtu.be/new", CreatedAt: 300, Status: models.EntryPending},
	}
	for _, e := range entries {
		if err := s.Put(ctx, e); err != nil {
			t.Fatalf("Put(%s): %v", e.ID, err)
		}
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedEntries(t, s)

	got, err := s.Get(ctx, "mid")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.URL != "https://youtu.be/mid" || got.Status != models.EntryError {
		t.Errorf("entry = %+v", got)
	}

	if _, err := s.Get(ctx, "missing"); err == nil {
		t.Error("expected an error for a missing id")
	}
}

func TestMemoryStorePutUpserts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedEntries(t, s)

	updated := &models.LibraryEntry{ID: "new", URL: "https://youtu.be/new", CreatedAt: 300, Status: models.EntryComplete, Title: "Done"}
	if err := s.Put(ctx, updated); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "new")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != models.EntryComplete || got.Title != "Done" {
		t.Errorf("entry = %+v", got)
	}

	all, _ := s.GetAll(ctx)
	if len(all) != 3 {
		t.Errorf("upsert grew the store to %d entries", len(all))
	}
}

func TestMemoryStoreGetAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedEntries(t, s)

	all, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	want := []string{"new", "mid", "old"}
	if len(all) != len(want) {
		t.Fatalf("got %d entries, want %d", len(all), len(want))
	}
	for i, e := range all {
		if e.ID != want[i] {
			t.Errorf("entry %d = %s, want %s", i, e.ID, want[i])
		}
	}
}

func TestMemoryStoreReturnsClones(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedEntries(t, s)

	got, _ := s.Get(ctx, "old")
	got.Title = "mutated by caller"

	again, _ := s.Get(ctx, "old")
	if again.Title == "mutated by caller" {
		t.Error("Get must not expose internal state")
	}
}

func TestMemoryStoreDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedEntries(t, s)

	if err := s.Delete(ctx, "mid"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "mid"); err == nil {
		t.Error("deleted entry still readable")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	all, _ := s.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("store not empty after Clear: %d entries", len(all))
	}
}
