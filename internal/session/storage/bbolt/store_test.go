package bbolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/caoslabs/caos/internal/profile"
	"github.com/caoslabs/caos/internal/session/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	})
	return store
}

func testRecord() storage.Record {
	joined := time.Date(2024, time.November, 12, 10, 0, 0, 0, time.UTC)
	return storage.Record{
		Profile: profile.Profile{
			ID:       "p1",
			Name:     "Luna Costa",
			Handle:   "@luna",
			Role:     profile.RoleArtist,
			Bio:      "Artista visual.",
			JoinedAt: joined,
		},
		PasswordHash: "hash",
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("Open() error = nil, want error")
	}
}

func TestGetMissingRecord(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get() error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	want := testRecord()

	if err := store.Put(context.Background(), want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Profile.ID != want.Profile.ID {
		t.Fatalf("Get() profile id = %q, want %q", got.Profile.ID, want.Profile.ID)
	}
	if got.Profile.Handle != want.Profile.Handle {
		t.Fatalf("Get() handle = %q, want %q", got.Profile.Handle, want.Profile.Handle)
	}
	if got.PasswordHash != want.PasswordHash {
		t.Fatalf("Get() password hash = %q, want %q", got.PasswordHash, want.PasswordHash)
	}
	if !got.Profile.JoinedAt.Equal(want.Profile.JoinedAt) {
		t.Fatalf("Get() joined = %v, want %v", got.Profile.JoinedAt, want.Profile.JoinedAt)
	}
}

func TestPutOverwritesPrevious(t *testing.T) {
	store := openTestStore(t)

	first := testRecord()
	if err := store.Put(context.Background(), first); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	second := first
	second.Profile.ID = "p2"
	second.Profile.Name = "Rafa Mendes"
	if err := store.Put(context.Background(), second); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Profile.ID != "p2" {
		t.Fatalf("Get() profile id = %q, want %q", got.Profile.ID, "p2")
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put(context.Background(), testRecord()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	_, err := store.Get(context.Background())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get() after Clear() error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestClearWithoutRecord(t *testing.T) {
	store := openTestStore(t)

	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
}

func TestNilStore(t *testing.T) {
	var store *Store

	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := store.Put(context.Background(), storage.Record{}); err == nil {
		t.Fatal("Put() error = nil, want error")
	}
	if _, err := store.Get(context.Background()); err == nil {
		t.Fatal("Get() error = nil, want error")
	}
	if err := store.Clear(context.Background()); err == nil {
		t.Fatal("Clear() error = nil, want error")
	}
}
