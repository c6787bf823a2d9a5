package flashcard

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Card is a single question/answer study pair.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Source string

const (
	// SourceModel means the cards were parsed from the model's JSON output.
	SourceModel Source = "model"
	// SourceFallback means the model output was unusable and the fixed
	// fallback set was substituted.
	SourceFallback Source = "fallback"
)

// Result tags the generated cards with where they came from, so callers can
// observe the degradation path instead of it being swallowed.
type Result struct {
	Cards  []Card `json:"cards"`
	Source Source `json:"source"`
	Reason string `json:"reason,omitempty"`
}

// Parse extracts flashcards from raw model output. Models frequently wrap
// JSON in markdown fences or ignore the requested shape entirely; a parse
// failure degrades to the fixed fallback set rather than erroring.
func Parse(raw string) Result {
	cleaned := stripFences(raw)

	if !gjson.Valid(cleaned) {
		return fallback("model output is not valid JSON")
	}

	cardsJSON := gjson.Get(cleaned, "flashcards")
	if !cardsJSON.Exists() || !cardsJSON.IsArray() {
		return fallback("model output has no flashcards array")
	}

	var cards []Card
	cardsJSON.ForEach(func(_, item gjson.Result) bool {
		q := strings.TrimSpace(item.Get("question").String())
		a := strings.TrimSpace(item.Get("answer").String())
		if q != "" && a != "" {
			cards = append(cards, Card{Question: q, Answer: a})
		}
		return true
	})

	if len(cards) == 0 {
		return fallback("flashcards array is empty")
	}

	return Result{Cards: cards, Source: SourceModel}
}

func fallback(reason string) Result {
	return Result{
		Cards:  FallbackCards(),
		Source: SourceFallback,
		Reason: reason,
	}
}

// FallbackCards is the deterministic degradation set: always the same two
// generic cards.
func FallbackCards() []Card {
	return []Card{
		{
			Question: "What are the main topics covered in this document?",
			Answer:   "Please refer to the document summary for main topics.",
		},
		{
			Question: "What are the key concepts to remember?",
			Answer:   "Review the keywords section for important concepts.",
		},
	}
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
