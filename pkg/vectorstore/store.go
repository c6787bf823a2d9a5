package vectorstore

import "context"

// Result is a retrieved chunk with its similarity score.
type Result struct {
	Text  string
	Score float32
}

// Index is a nearest-neighbor search handle scoped to one document's chunks.
type Index interface {
	// Query returns the top-k chunks most similar to the query text.
	Query(ctx context.Context, text string, k int) ([]Result, error)

	// Persist writes the index state under dir so it can be reloaded later.
	Persist(dir string) error

	// Metadata returns the metadata the index was built with.
	Metadata() map[string]string
}

// Store builds new indexes and reloads persisted ones.
type Store interface {
	Build(ctx context.Context, chunks []string, metadata map[string]string) (Index, error)
	Load(ctx context.Context, dir string) (Index, error)
}
