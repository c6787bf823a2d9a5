package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ask-backend/pkg/llm"

	"github.com/avast/retry-go/v4"
)

type GeminiProvider struct {
	ApiKey    string
	ModelName string
	Client    *http.Client
}

// Ensure GeminiProvider implements LLMProvider
var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		ApiKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type geminiChatPart struct {
	Text string `json:"text"`
}

type geminiChatContent struct {
	Parts []geminiChatPart `json:"parts"`
	Role  string           `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type geminiChatRequest struct {
	Contents         []geminiChatContent     `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiChatCandidate struct {
	Content *geminiChatContent `json:"content"`
}

type geminiChatResponse struct {
	Candidates []geminiChatCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.2,
	}
	for _, opt := range opts {
		opt(options)
	}

	contents := make([]geminiChatContent, 0, len(history))
	for _, msg := range history {
		// Gemini knows "user" and "model"; fold system/assistant accordingly.
		role := "user"
		if msg.Role == "assistant" || msg.Role == "model" {
			role = "model"
		}
		contents = append(contents, geminiChatContent{
			Parts: []geminiChatPart{{Text: msg.Content}},
			Role:  role,
		})
	}

	genCfg := &geminiGenerationConfig{
		Temperature: &options.Temperature,
	}
	if options.MaxTokens > 0 {
		genCfg.MaxOutputTokens = options.MaxTokens
	}
	if options.JSONOutput {
		genCfg.ResponseMimeType = "application/json"
	}

	payload := geminiChatRequest{
		Contents:         contents,
		GenerationConfig: genCfg,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}
	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
		model,
	)

	return retry.DoWithData(func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
		if err != nil {
			return "", retry.Unrecoverable(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("x-goog-api-key", g.ApiKey)
		req.Header.Set("Content-Type", "application/json")

		res, err := g.Client.Do(req)
		if err != nil {
			return "", fmt.Errorf("gemini request failed: %w", err)
		}
		defer res.Body.Close()

		resBody, err := io.ReadAll(res.Body)
		if err != nil {
			return "", fmt.Errorf("read response: %w", err)
		}

		if res.StatusCode != http.StatusOK {
			err := fmt.Errorf("gemini error: status %d, body: %s", res.StatusCode, string(resBody))
			if res.StatusCode < http.StatusInternalServerError {
				return "", retry.Unrecoverable(err)
			}
			return "", err
		}

		var geminiRes geminiChatResponse
		if err := json.Unmarshal(resBody, &geminiRes); err != nil {
			return "", retry.Unrecoverable(fmt.Errorf("unmarshal response: %w", err))
		}
		if len(geminiRes.Candidates) == 0 ||
			geminiRes.Candidates[0].Content == nil ||
			len(geminiRes.Candidates[0].Content.Parts) == 0 {
			return "", retry.Unrecoverable(fmt.Errorf("gemini returned no candidates"))
		}
		return geminiRes.Candidates[0].Content.Parts[0].Text, nil
	}, retry.Attempts(3), retry.Context(ctx), retry.LastErrorOnly(true))
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
