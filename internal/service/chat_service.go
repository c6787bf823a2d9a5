package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"ask-backend/internal/apperrors"
	"ask-backend/internal/pkg/logger"
	"ask-backend/pkg/llm"
	"ask-backend/pkg/rag/flashcard"
	"ask-backend/pkg/rag/prompt"
	"ask-backend/pkg/rag/session"
)

const (
	// flashcardChunkSample bounds how much document text is sent to the
	// model: the first few chunks, truncated.
	flashcardChunkSample = 5
	flashcardMaxChars    = 3000
)

// IChatService answers questions against a stored document and generates
// flashcards from it.
type IChatService interface {
	Answer(ctx context.Context, sessionID, question string) (string, error)
	GenerateFlashcards(ctx context.Context, sessionID string, count int) (*flashcard.Result, error)
}

type chatService struct {
	store          *session.Store
	llmProvider    llm.LLMProvider
	logger         logger.ILogger
	topK           int
	flashcardCount int
}

func NewChatService(store *session.Store, llmProvider llm.LLMProvider, sysLogger logger.ILogger, topK, flashcardCount int) IChatService {
	if topK <= 0 {
		topK = 3
	}
	if flashcardCount <= 0 {
		flashcardCount = 6
	}
	return &chatService{
		store:          store,
		llmProvider:    llmProvider,
		logger:         sysLogger,
		topK:           topK,
		flashcardCount: flashcardCount,
	}
}

// Answer retrieves the chunks most similar to the question, asks the model
// for an answer grounded in them, and appends the exchange to the session's
// conversation history.
func (s *chatService) Answer(ctx context.Context, sessionID, question string) (string, error) {
	sess, found := s.store.Get(sessionID)
	if !found {
		return "", apperrors.NewSessionNotFound(sessionID)
	}

	results, err := sess.Index.Query(ctx, question, s.topK)
	if err != nil {
		return "", apperrors.NewAnswer("failed to retrieve document context", err)
	}

	contextChunks := make([]string, 0, len(results))
	for _, r := range results {
		contextChunks = append(contextChunks, r.Text)
	}

	promptText := prompt.NewAnswerBuilder(contextChunks, question, sess.History.Render()).Build()

	answer, err := s.llmProvider.Generate(ctx, promptText, llm.WithTemperature(0.2))
	if err != nil {
		return "", apperrors.NewAnswer("failed to answer question", err)
	}

	sess.History.AppendExchange(question, answer)

	s.logger.Info("chat", "question answered", map[string]interface{}{
		"session_id":      sessionID,
		"context_chunks":  len(contextChunks),
		"history_entries": sess.History.Len(),
	})
	return answer, nil
}

// GenerateFlashcards samples the leading chunks of the document and asks the
// model for count structured flashcards. Unparseable model output degrades to
// the fixed fallback set instead of failing the request.
func (s *chatService) GenerateFlashcards(ctx context.Context, sessionID string, count int) (*flashcard.Result, error) {
	sess, found := s.store.Get(sessionID)
	if !found {
		return nil, apperrors.NewSessionNotFound(sessionID)
	}
	if count <= 0 {
		count = s.flashcardCount
	}

	sample := sess.Chunks
	if len(sample) > flashcardChunkSample {
		sample = sample[:flashcardChunkSample]
	}
	content := truncateRunes(strings.Join(sample, " "), flashcardMaxChars)

	raw, err := s.llmProvider.Generate(ctx, prompt.FlashcardPrompt(count, content),
		llm.WithJSONOutput(),
		llm.WithTemperature(0.3),
	)
	if err != nil {
		return nil, apperrors.NewFlashcard("failed to generate flashcards", err)
	}

	result := flashcard.Parse(raw)
	if result.Source == flashcard.SourceFallback {
		s.logger.Warn("chat", "flashcard output unparseable, serving fallback set", map[string]interface{}{
			"session_id": sessionID,
			"reason":     result.Reason,
		})
	}
	return &result, nil
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
