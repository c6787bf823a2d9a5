package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestSession(t *testing.T, dir string) *Session {
	t.Helper()
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	return &Session{
		ID:         uuid.NewString(),
		SourceName: "notes.pdf",
		Chunks:     []string{"chunk one"},
		StorageDir: dir,
		History:    NewHistory(0),
		CreatedAt:  time.Now(),
	}
}

func TestStorePutGet(t *testing.T) {
	store := NewStore(0)
	s := newTestSession(t, "")
	store.Put(s)

	got, found := store.Get(s.ID)
	if !found {
		t.Fatal("Get() did not find stored session")
	}
	if got.ID != s.ID || got.SourceName != "notes.pdf" {
		t.Errorf("Get() = %+v, want stored session", got)
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore(0)
	if _, found := store.Get("does-not-exist"); found {
		t.Fatal("Get() found a session that was never stored")
	}
}

func TestStoreDeleteRemovesStorageDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session_abc")
	store := NewStore(0)
	s := newTestSession(t, dir)
	store.Put(s)

	store.Delete(s.ID)

	if _, found := store.Get(s.ID); found {
		t.Error("session still retrievable after Delete()")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("storage dir still exists after Delete(): %v", err)
	}
}

func TestStoreDeleteIdempotent(t *testing.T) {
	store := NewStore(0)
	s := newTestSession(t, "")
	store.Put(s)

	store.Delete(s.ID)
	store.Delete(s.ID) // second delete must be a silent no-op
	store.Delete("never-existed")
}

func TestStoreTTLEvictsAndCleansUp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session_ttl")
	store := NewStore(10 * time.Millisecond)
	s := newTestSession(t, dir)
	store.Put(s)

	time.Sleep(30 * time.Millisecond)

	if _, found := store.Get(s.ID); found {
		t.Error("session still retrievable after TTL expiry")
	}

	// Directory removal happens on the purge cycle, which runs once per TTL
	// period. Poll until it fires.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("storage dir not removed after TTL eviction")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSessionIDsUnique(t *testing.T) {
	// Birthday-bound check on the identifier scheme: 10k generated IDs must
	// not collide within a process lifetime.
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := uuid.NewString()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate session ID generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
