package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ask-backend/pkg/embedding"
)

// stubEmbedder maps known texts to fixed normalized vectors so similarity
// ordering is fully controlled by the test.
type stubEmbedder struct {
	vectors map[string][]float32
	fail    error
}

func (s *stubEmbedder) Generate(_ context.Context, text string, _ string) ([]float32, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 1}, nil
}

var _ embedding.Provider = &stubEmbedder{}

func newStub() *stubEmbedder {
	return &stubEmbedder{vectors: map[string][]float32{
		"cells produce ATP":  {1, 0, 0},
		"history of rome":    {0, 1, 0},
		"photosynthesis":     {0.7, 0.7, 0},
		"what produces ATP?": {1, 0, 0},
		"tell me about rome": {0, 1, 0},
	}}
}

func TestBuildAndQueryOrdering(t *testing.T) {
	store := NewStore(newStub())
	chunks := []string{"cells produce ATP", "history of rome", "photosynthesis"}

	idx, err := store.Build(context.Background(), chunks, map[string]string{"source": "bio.pdf"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	results, err := idx.Query(context.Background(), "what produces ATP?", 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}
	if results[0].Text != "cells produce ATP" {
		t.Errorf("top result = %q, want the ATP chunk", results[0].Text)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("results not sorted by score: %v < %v", results[0].Score, results[1].Score)
	}
}

func TestBuildRejectsEmptyChunks(t *testing.T) {
	store := NewStore(newStub())
	if _, err := store.Build(context.Background(), nil, nil); err == nil {
		t.Fatal("Build() with zero chunks should fail")
	}
}

func TestQueryKLargerThanIndex(t *testing.T) {
	store := NewStore(newStub())
	idx, err := store.Build(context.Background(), []string{"history of rome"}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	results, err := idx.Query(context.Background(), "tell me about rome", 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("result count = %d, want 1", len(results))
	}
}

func TestPersistAndLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session_test")
	store := NewStore(newStub())
	chunks := []string{"cells produce ATP", "history of rome"}

	idx, err := store.Build(context.Background(), chunks, map[string]string{"source": "notes.pdf"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := idx.Persist(dir); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, snapshotFile)); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}

	loaded, err := store.Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.Metadata()["source"]; got != "notes.pdf" {
		t.Errorf("metadata source = %q, want notes.pdf", got)
	}

	results, err := loaded.Query(context.Background(), "what produces ATP?", 1)
	if err != nil {
		t.Fatalf("Query() after Load() error = %v", err)
	}
	if results[0].Text != "cells produce ATP" {
		t.Errorf("top result after reload = %q, want the ATP chunk", results[0].Text)
	}
}

func TestLoadMissingDirFails(t *testing.T) {
	store := NewStore(newStub())
	if _, err := store.Load(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("Load() on missing dir should fail")
	}
}
