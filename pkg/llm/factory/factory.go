package factory

import (
	"fmt"

	"ask-backend/pkg/llm"
	"ask-backend/pkg/llm/gemini"
	"ask-backend/pkg/llm/ollama"
)

// NewLLMProvider selects an LLM backend by name.
func NewLLMProvider(provider, model, ollamaBaseURL, geminiApiKey string) (llm.LLMProvider, error) {
	switch provider {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	case "gemini", "":
		if geminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider selected but GOOGLE_GEMINI_API_KEY is empty")
		}
		return gemini.NewGeminiProvider(geminiApiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}
}
