package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/typerpunk/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "library.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return st
}

func TestInsertPassagesSkipsDuplicates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	added, err := st.InsertPassages(ctx, []model.Passage{
		{Content: "first passage", Category: "b"},
		{Content: "second passage", Category: "a", Attribution: "someone"},
		{Content: "first passage", Category: "c"},
	})
	if err != nil {
		t.Fatalf("InsertPassages failed: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 new passages, got %d", added)
	}

	added, err = st.InsertPassages(ctx, []model.Passage{{Content: "second passage"}})
	if err != nil {
		t.Fatalf("InsertPassages failed: %v", err)
	}
	if added != 0 {
		t.Fatalf("expected duplicate to be ignored, got %d", added)
	}

	count, err := st.CountPassages(ctx)
	if err != nil {
		t.Fatalf("CountPassages failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 passages, got %d", count)
	}
}

func TestListPassagesKeepsInsertionOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.InsertPassages(ctx, []model.Passage{
		{Content: "one", Category: "b"},
		{Content: "two"},
		{Content: "three", Category: "a", Attribution: "anon"},
	}); err != nil {
		t.Fatalf("InsertPassages failed: %v", err)
	}

	all, err := st.ListPassages(ctx)
	if err != nil {
		t.Fatalf("ListPassages failed: %v", err)
	}
	if len(all) != 3 || all[0].Content != "one" || all[2].Attribution != "anon" {
		t.Fatalf("unexpected passages: %+v", all)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := first.InsertPassages(context.Background(), []model.Passage{{Content: "kept"}}); err != nil {
		t.Fatalf("InsertPassages failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() {
		if err := second.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}()
	passages, err := second.ListPassages(context.Background())
	if err != nil {
		t.Fatalf("ListPassages failed: %v", err)
	}
	if len(passages) != 1 || passages[0].Content != "kept" {
		t.Fatalf("expected persisted passage, got %+v", passages)
	}
}
