package session

import (
	"time"

	"ask-backend/pkg/vectorstore"
)

// Session is the unit of document context: the chunked text of one uploaded
// document plus its dedicated retrieval index, addressed by an opaque ID.
// A session is immutable after creation except for its conversation history.
type Session struct {
	ID         string
	SourceName string
	Chunks     []string
	Index      vectorstore.Index
	StorageDir string
	History    *History
	CreatedAt  time.Time
}
