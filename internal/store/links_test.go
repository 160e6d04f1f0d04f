package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/linkboard/linkboard/internal/store"
	"github.com/linkboard/linkboard/internal/testutil"
)

// newLinkEnv creates link and user stores sharing a DB, plus two seeded users.
func newLinkEnv(t *testing.T) (*store.LinkStore, string, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	us := store.NewUserStore(db)
	ctx := context.Background()

	alice, err := us.Create(ctx, "alice@example.com", "Alice", "hash")
	if err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	bob, err := us.Create(ctx, "bob@example.com", "Bob", "hash")
	if err != nil {
		t.Fatalf("seed bob: %v", err)
	}
	return store.NewLinkStore(db), alice.ID, bob.ID
}

func TestLinkStore_CreateAndGet(t *testing.T) {
	ls, alice, _ := newLinkEnv(t)
	ctx := context.Background()

	link, err := ls.Create(ctx, alice, "A search engine", "https://example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if link.PostedBy != alice {
		t.Errorf("PostedBy = %q, want %q", link.PostedBy, alice)
	}

	got, err := ls.GetByID(ctx, link.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.URL != "https://example.com" {
		t.Errorf("URL = %q, want %q", got.URL, "https://example.com")
	}
}

func TestLinkStore_GetByID_NotFound(t *testing.T) {
	ls, _, _ := newLinkEnv(t)

	if _, err := ls.GetByID(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID(missing) = %v, want ErrNotFound", err)
	}
}

func TestLinkStore_UpdateOwned(t *testing.T) {
	ls, alice, _ := newLinkEnv(t)
	ctx := context.Background()

	link, err := ls.Create(ctx, alice, "old", "https://old.example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := ls.UpdateOwned(ctx, alice, link.ID, "new", "https://new.example.com")
	if err != nil {
		t.Fatalf("UpdateOwned: %v", err)
	}
	if updated.Description != "new" || updated.URL != "https://new.example.com" {
		t.Errorf("updated = (%q, %q), want (new, https://new.example.com)", updated.Description, updated.URL)
	}
	if updated.PostedBy != alice {
		t.Errorf("owner changed to %q", updated.PostedBy)
	}
}

func TestLinkStore_UpdateOwned_NotOwner(t *testing.T) {
	ls, alice, bob := newLinkEnv(t)
	ctx := context.Background()

	link, err := ls.Create(ctx, alice, "alice's link", "https://a.example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = ls.UpdateOwned(ctx, bob, link.ID, "hijacked", "https://evil.example.com")
	if !errors.Is(err, store.ErrNotFoundOrForbidden) {
		t.Fatalf("UpdateOwned(non-owner) = %v, want ErrNotFoundOrForbidden", err)
	}

	// The link is unchanged in the store.
	got, err := ls.GetByID(ctx, link.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Description != "alice's link" || got.URL != "https://a.example.com" {
		t.Errorf("link was modified: (%q, %q)", got.Description, got.URL)
	}
}

func TestLinkStore_UpdateOwned_MissingLink(t *testing.T) {
	ls, alice, _ := newLinkEnv(t)

	_, err := ls.UpdateOwned(context.Background(), alice, "missing", "d", "https://x.example.com")
	if !errors.Is(err, store.ErrNotFoundOrForbidden) {
		t.Errorf("UpdateOwned(missing) = %v, want ErrNotFoundOrForbidden", err)
	}
}

func TestLinkStore_DeleteOwned(t *testing.T) {
	ls, alice, _ := newLinkEnv(t)
	ctx := context.Background()

	link, err := ls.Create(ctx, alice, "to delete", "https://x.example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ls.DeleteOwned(ctx, alice, link.ID); err != nil {
		t.Fatalf("DeleteOwned: %v", err)
	}
	if _, err := ls.GetByID(ctx, link.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
}

func TestLinkStore_DeleteOwned_NotOwner(t *testing.T) {
	ls, alice, bob := newLinkEnv(t)
	ctx := context.Background()

	link, err := ls.Create(ctx, alice, "alice's link", "https://a.example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ls.DeleteOwned(ctx, bob, link.ID); !errors.Is(err, store.ErrNotFoundOrForbidden) {
		t.Fatalf("DeleteOwned(non-owner) = %v, want ErrNotFoundOrForbidden", err)
	}

	// Still there.
	if _, err := ls.GetByID(ctx, link.ID); err != nil {
		t.Errorf("link disappeared: %v", err)
	}
}
