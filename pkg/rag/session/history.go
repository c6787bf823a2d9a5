package session

import (
	"fmt"
	"strings"
	"sync"
)

const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
)

// Turn is one entry in a conversation transcript.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History is an append-only conversation transcript scoped to one session.
// Earlier revisions of this service kept a single transcript shared across
// every session, which let unrelated conversations bleed into each other's
// prompts; history is now owned by the session and guarded per session.
type History struct {
	mu    sync.Mutex
	limit int
	turns []Turn
}

// NewHistory creates a transcript capped at limit turns; the oldest turns are
// dropped once the cap is reached. limit <= 0 means unbounded.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// AppendExchange records a question and its answer under a single lock so
// concurrent exchanges cannot interleave their turn pairs.
func (h *History) AppendExchange(question, answer string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns,
		Turn{Role: RoleStudent, Content: question},
		Turn{Role: RoleLecturer, Content: answer},
	)
	h.trim()
}

func (h *History) trim() {
	if h.limit > 0 && len(h.turns) > h.limit {
		h.turns = h.turns[len(h.turns)-h.limit:]
	}
}

// Turns returns a copy of the transcript.
func (h *History) Turns() []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Render formats the transcript for prompt injection.
func (h *History) Render() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.turns) == 0 {
		return "(no previous conversation)"
	}

	var b strings.Builder
	for _, t := range h.turns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	return b.String()
}
