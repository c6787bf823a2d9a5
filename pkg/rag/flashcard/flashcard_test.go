package flashcard

import "testing"

func TestParseWellFormedOutput(t *testing.T) {
	raw := `{"flashcards": [
		{"question": "What is ATP?", "answer": "The cell's energy currency."},
		{"question": "Where is ATP produced?", "answer": "In the mitochondria."},
		{"question": "What is respiration?", "answer": "The process that produces ATP."}
	]}`

	result := Parse(raw)
	if result.Source != SourceModel {
		t.Fatalf("Source = %q, want model (reason: %s)", result.Source, result.Reason)
	}
	if len(result.Cards) != 3 {
		t.Fatalf("card count = %d, want 3", len(result.Cards))
	}
	if result.Cards[0].Question != "What is ATP?" {
		t.Errorf("first question = %q", result.Cards[0].Question)
	}
}

func TestParseFencedOutput(t *testing.T) {
	raw := "```json\n{\"flashcards\": [{\"question\": \"Q\", \"answer\": \"A\"}]}\n```"

	result := Parse(raw)
	if result.Source != SourceModel {
		t.Fatalf("Source = %q, want model (reason: %s)", result.Source, result.Reason)
	}
	if len(result.Cards) != 1 {
		t.Errorf("card count = %d, want 1", len(result.Cards))
	}
}

func TestParseDegradesToFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "Here are some flashcards you could study from..."},
		{"wrong shape", `{"cards": [{"q": "x"}]}`},
		{"empty array", `{"flashcards": []}`},
		{"cards missing fields", `{"flashcards": [{"question": "", "answer": ""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.raw)
			if result.Source != SourceFallback {
				t.Fatalf("Source = %q, want fallback", result.Source)
			}
			if result.Reason == "" {
				t.Error("fallback result should carry a reason")
			}
			if len(result.Cards) != 2 {
				t.Fatalf("fallback card count = %d, want exactly 2", len(result.Cards))
			}
			if result.Cards[0] != FallbackCards()[0] || result.Cards[1] != FallbackCards()[1] {
				t.Error("fallback cards differ from the fixed set")
			}
		})
	}
}
