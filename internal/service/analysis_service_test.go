package service

import (
	"context"
	"testing"

	"ask-backend/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitLLM answers Chat and Generate differently, for exercising the
// structured path and the plain-text fallback independently.
type splitLLM struct {
	chatResponse     string
	generateResponse string
}

func (s *splitLLM) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return s.chatResponse, nil
}

func (s *splitLLM) Generate(context.Context, string, ...llm.Option) (string, error) {
	return s.generateResponse, nil
}

func TestAnalyzeParsesStructuredOutput(t *testing.T) {
	oracle := &splitLLM{chatResponse: `{
		"summary": "Cells produce ATP through respiration.",
		"keywords": ["ATP", "respiration"],
		"questions": ["What is ATP?"]
	}`}
	svc := NewAnalysisService(oracle, nopLogger{})

	result, err := svc.Analyze(context.Background(), "some academic text")
	require.NoError(t, err)
	assert.Equal(t, "Cells produce ATP through respiration.", result.Summary)
	assert.Equal(t, []string{"ATP", "respiration"}, result.Keywords)
	assert.Equal(t, []string{"What is ATP?"}, result.Questions)
}

func TestAnalyzeStripsMarkdownFences(t *testing.T) {
	oracle := &splitLLM{chatResponse: "```json\n{\"summary\": \"Fenced.\", \"keywords\": [], \"questions\": []}\n```"}
	svc := NewAnalysisService(oracle, nopLogger{})

	result, err := svc.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "Fenced.", result.Summary)
}

func TestAnalyzeDefaultsMissingFields(t *testing.T) {
	oracle := &splitLLM{chatResponse: `{}`}
	svc := NewAnalysisService(oracle, nopLogger{})

	result, err := svc.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "No summary available", result.Summary)
	assert.Empty(t, result.Keywords)
	assert.Empty(t, result.Questions)
	assert.NotNil(t, result.Keywords)
	assert.NotNil(t, result.Questions)
}

func TestAnalyzeFallsBackOnNonJSON(t *testing.T) {
	oracle := &splitLLM{
		chatResponse:     "I cannot produce JSON right now.",
		generateResponse: "A plain-text summary.",
	}
	svc := NewAnalysisService(oracle, nopLogger{})

	result, err := svc.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "A plain-text summary.", result.Summary)
	assert.NotEmpty(t, result.Keywords)
	assert.NotEmpty(t, result.Questions)
}
