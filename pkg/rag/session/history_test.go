package session

import (
	"strings"
	"sync"
	"testing"
)

func TestHistoryAppendExchange(t *testing.T) {
	h := NewHistory(0)
	h.AppendExchange("What does the mitochondria produce?", "ATP")

	turns := h.Turns()
	if len(turns) != 2 {
		t.Fatalf("turn count = %d, want 2", len(turns))
	}
	if turns[0].Role != RoleStudent || turns[0].Content != "What does the mitochondria produce?" {
		t.Errorf("first turn = %+v, want the student question", turns[0])
	}
	if turns[1].Role != RoleLecturer || turns[1].Content != "ATP" {
		t.Errorf("second turn = %+v, want the lecturer answer", turns[1])
	}
}

func TestHistoryCapDropsOldest(t *testing.T) {
	h := NewHistory(4)
	h.AppendExchange("q1", "a1")
	h.AppendExchange("q2", "a2")
	h.AppendExchange("q3", "a3")

	turns := h.Turns()
	if len(turns) != 4 {
		t.Fatalf("turn count = %d, want 4", len(turns))
	}
	if turns[0].Content != "q2" {
		t.Errorf("oldest retained turn = %q, want q2", turns[0].Content)
	}
}

func TestHistoryRender(t *testing.T) {
	h := NewHistory(0)
	if got := h.Render(); got != "(no previous conversation)" {
		t.Errorf("empty Render() = %q", got)
	}

	h.AppendExchange("question", "answer")
	rendered := h.Render()
	if !strings.Contains(rendered, "student: question") || !strings.Contains(rendered, "lecturer: answer") {
		t.Errorf("Render() = %q, missing turns", rendered)
	}
}

func TestHistoryConcurrentExchanges(t *testing.T) {
	h := NewHistory(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.AppendExchange("q", "a")
		}()
	}
	wg.Wait()

	turns := h.Turns()
	if len(turns) != 100 {
		t.Fatalf("turn count = %d, want 100", len(turns))
	}
	// Question/answer pairs must never interleave.
	for i := 0; i < len(turns); i += 2 {
		if turns[i].Role != RoleStudent || turns[i+1].Role != RoleLecturer {
			t.Fatalf("turns %d/%d out of order: %s then %s", i, i+1, turns[i].Role, turns[i+1].Role)
		}
	}
}
