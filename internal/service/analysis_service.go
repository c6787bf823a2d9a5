package service

import (
	"context"
	"strings"

	"ask-backend/internal/apperrors"
	"ask-backend/internal/dto"
	"ask-backend/internal/pkg/logger"
	"ask-backend/pkg/llm"
	"ask-backend/pkg/rag/prompt"

	"github.com/tidwall/gjson"
)

// IAnalysisService produces the upload-time document analysis: a short
// summary, keywords and study questions.
type IAnalysisService interface {
	Analyze(ctx context.Context, text string) (*dto.AnalysisResult, error)
}

type analysisService struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewAnalysisService(llmProvider llm.LLMProvider, sysLogger logger.ILogger) IAnalysisService {
	return &analysisService{
		llmProvider: llmProvider,
		logger:      sysLogger,
	}
}

func (s *analysisService) Analyze(ctx context.Context, text string) (*dto.AnalysisResult, error) {
	history := []llm.Message{
		{Role: "system", Content: prompt.AnalysisPrompt},
		{Role: "user", Content: "Text to analyze:\n\n" + text},
	}

	raw, err := s.llmProvider.Chat(ctx, history,
		llm.WithJSONOutput(),
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(1500),
	)
	if err != nil {
		return nil, apperrors.NewAnalysis("failed to analyze text", err)
	}

	cleaned := stripJSONFences(raw)
	if !gjson.Valid(cleaned) {
		s.logger.Warn("analysis", "model returned non-JSON analysis, using fallback", map[string]interface{}{
			"output_length": len(raw),
		})
		return s.fallbackAnalysis(ctx, text), nil
	}

	result := &dto.AnalysisResult{
		Summary:   gjson.Get(cleaned, "summary").String(),
		Keywords:  stringSlice(gjson.Get(cleaned, "keywords")),
		Questions: stringSlice(gjson.Get(cleaned, "questions")),
	}
	if result.Summary == "" {
		result.Summary = "No summary available"
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	if result.Questions == nil {
		result.Questions = []string{}
	}
	return result, nil
}

// fallbackAnalysis asks for a plain-text summary when the structured call
// produced unparseable output. It never fails: analysis is best-effort and
// the upload should still go through.
func (s *analysisService) fallbackAnalysis(ctx context.Context, text string) *dto.AnalysisResult {
	sample := text
	if len(sample) > 2000 {
		sample = sample[:2000]
	}

	summary, err := s.llmProvider.Generate(ctx,
		"Summarize this text in 2-3 sentences: "+sample,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(200),
	)
	if err != nil {
		s.logger.Error("analysis", "fallback analysis failed", map[string]interface{}{
			"error": err.Error(),
		})
		return &dto.AnalysisResult{
			Summary:   "Document analysis unavailable",
			Keywords:  []string{},
			Questions: []string{},
		}
	}

	return &dto.AnalysisResult{
		Summary:   summary,
		Keywords:  []string{"analysis", "document", "content"},
		Questions: []string{"What are the main concepts in this document?"},
	}
}

func stringSlice(arr gjson.Result) []string {
	if !arr.IsArray() {
		return nil
	}
	var out []string
	arr.ForEach(func(_, item gjson.Result) bool {
		if v := strings.TrimSpace(item.String()); v != "" {
			out = append(out, v)
		}
		return true
	})
	return out
}

func stripJSONFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
