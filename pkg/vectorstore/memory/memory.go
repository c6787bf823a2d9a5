// Package memory provides a brute-force cosine-similarity vector index held
// in process memory, with a JSON snapshot for persistence. Vectors are
// expected to be L2-normalized so similarity reduces to a dot product.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"ask-backend/pkg/embedding"
	"ask-backend/pkg/vectorstore"
)

const snapshotFile = "index.json"

// Store builds and reloads in-memory indexes backed by an embedding provider.
type Store struct {
	provider embedding.Provider
}

var _ vectorstore.Store = &Store{}

func NewStore(provider embedding.Provider) *Store {
	return &Store{provider: provider}
}

// Build embeds every chunk and assembles a queryable index. The index holds
// exactly the chunks passed in; nothing is shared across calls.
func (s *Store) Build(ctx context.Context, chunks []string, metadata map[string]string) (vectorstore.Index, error) {
	if len(chunks) == 0 {
		return nil, errors.New("cannot build index from zero chunks")
	}

	vectors := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		vec, err := s.provider.Generate(ctx, chunk, embedding.TaskDocument)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		vectors = append(vectors, vec)
	}

	return &Index{
		provider: s.provider,
		chunks:   append([]string(nil), chunks...),
		vectors:  vectors,
		metadata: metadata,
	}, nil
}

// Load restores a persisted index from dir.
func (s *Store) Load(ctx context.Context, dir string) (vectorstore.Index, error) {
	data, err := os.ReadFile(filepath.Join(dir, snapshotFile))
	if err != nil {
		return nil, fmt.Errorf("read index snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode index snapshot: %w", err)
	}
	if len(snap.Chunks) != len(snap.Vectors) {
		return nil, errors.New("corrupt index snapshot: chunk/vector count mismatch")
	}

	return &Index{
		provider: s.provider,
		chunks:   snap.Chunks,
		vectors:  snap.Vectors,
		metadata: snap.Metadata,
	}, nil
}

// Index is the in-memory nearest-neighbor handle.
type Index struct {
	mu       sync.RWMutex
	provider embedding.Provider
	chunks   []string
	vectors  [][]float32
	metadata map[string]string
}

var _ vectorstore.Index = &Index{}

type snapshot struct {
	Chunks   []string          `json:"chunks"`
	Vectors  [][]float32       `json:"vectors"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (idx *Index) Query(ctx context.Context, text string, k int) ([]vectorstore.Result, error) {
	if k <= 0 {
		k = 3
	}

	queryVec, err := idx.provider.Generate(ctx, text, embedding.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	type scored struct {
		i     int
		score float32
	}
	scores := make([]scored, len(idx.vectors))
	for i, vec := range idx.vectors {
		scores[i] = scored{i: i, score: dot(vec, queryVec)}
	}
	sort.Slice(scores, func(a, b int) bool { return scores[a].score > scores[b].score })

	if k > len(scores) {
		k = len(scores)
	}
	results := make([]vectorstore.Result, 0, k)
	for _, s := range scores[:k] {
		results = append(results, vectorstore.Result{
			Text:  idx.chunks[s.i],
			Score: s.score,
		})
	}
	return results, nil
}

func (idx *Index) Persist(dir string) error {
	idx.mu.RLock()
	snap := snapshot{
		Chunks:   idx.chunks,
		Vectors:  idx.vectors,
		Metadata: idx.metadata,
	}
	idx.mu.RUnlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode index snapshot: %w", err)
	}

	// Write-then-rename keeps a half-written snapshot from shadowing a good one.
	tmp := filepath.Join(dir, snapshotFile+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write index snapshot: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, snapshotFile)); err != nil {
		return fmt.Errorf("commit index snapshot: %w", err)
	}
	return nil
}

func (idx *Index) Metadata() map[string]string {
	return idx.metadata
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
