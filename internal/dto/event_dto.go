package dto

import "time"

const (
	SessionEventCreated = "SESSION_CREATED"
	SessionEventDeleted = "SESSION_DELETED"
)

// SessionEventMessage is published on the in-process bus whenever a retrieval
// session is created or torn down.
type SessionEventMessage struct {
	Type       string    `json:"type"`
	SessionID  string    `json:"session_id"`
	SourceName string    `json:"source_name,omitempty"`
	ChunkCount int       `json:"chunk_count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
