package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "scintillate.db")
	repo, err := NewRepository(dbPath)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return repo
}

func TestRepository_MissingSlot(t *testing.T) {
	repo := newTestRepository(t)

	value, ok, err := repo.GetSlot(context.Background(), "favorites")
	if err != nil {
		t.Fatalf("GetSlot returned error: %v", err)
	}
	if ok || value != nil {
		t.Fatalf("expected missing slot, got ok=%v value=%q", ok, value)
	}
}

func TestRepository_PutAndGetSlot(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.PutSlot(ctx, "favorites", []byte(`[{"name":"Leia Organa"}]`)); err != nil {
		t.Fatalf("PutSlot returned error: %v", err)
	}

	value, ok, err := repo.GetSlot(ctx, "favorites")
	if err != nil {
		t.Fatalf("GetSlot returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected slot to exist")
	}
	if string(value) != `[{"name":"Leia Organa"}]` {
		t.Fatalf("unexpected slot value: %q", value)
	}
}

func TestRepository_PutSlot_Overwrites(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.PutSlot(ctx, "favorites", []byte("first")); err != nil {
		t.Fatalf("initial PutSlot returned error: %v", err)
	}
	if err := repo.PutSlot(ctx, "favorites", []byte("second")); err != nil {
		t.Fatalf("second PutSlot returned error: %v", err)
	}

	value, _, err := repo.GetSlot(ctx, "favorites")
	if err != nil {
		t.Fatalf("GetSlot returned error: %v", err)
	}
	if string(value) != "second" {
		t.Fatalf("expected overwritten value, got %q", value)
	}
}

func TestRepository_SlotBinding(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	slot := repo.Slot("favorites")

	if err := slot.Save(ctx, []byte("[]")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	value, ok, err := slot.Load(ctx)
	if err != nil || !ok || string(value) != "[]" {
		t.Fatalf("unexpected load result: value=%q ok=%v err=%v", value, ok, err)
	}

	if _, ok, _ := repo.GetSlot(ctx, "other"); ok {
		t.Fatal("slots must be isolated by key")
	}
}

func TestRepository_CheckWritable(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.CheckWritable(ctx); err != nil {
		t.Fatalf("CheckWritable returned error: %v", err)
	}
	if _, ok, _ := repo.GetSlot(ctx, "__write_check__"); ok {
		t.Fatal("write check must not leave a slot behind")
	}
}
