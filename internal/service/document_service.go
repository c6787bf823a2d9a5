package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ask-backend/internal/apperrors"
	"ask-backend/internal/dto"
	"ask-backend/internal/pkg/logger"
	"ask-backend/pkg/extract"
	"ask-backend/pkg/rag/session"
	"ask-backend/pkg/splitter"
	"ask-backend/pkg/vectorstore"

	"github.com/google/uuid"
)

// IDocumentService owns the document lifecycle: upload analysis, ingestion
// into a retrieval session, session info and teardown.
type IDocumentService interface {
	AnalyzeUpload(ctx context.Context, filename string, data []byte) (*dto.AnalyzePDFResponse, error)
	Ingest(ctx context.Context, text, sourceName string) (string, error)
	SessionInfo(sessionID string) (*dto.SessionInfoResponse, error)
	DeleteSession(sessionID string) error
}

type documentService struct {
	store           *session.Store
	vectors         vectorstore.Store
	analysisService IAnalysisService
	publisher       IPublisherService
	logger          logger.ILogger
	splitOpts       splitter.Options
	dataDir         string
	historyLimit    int
}

func NewDocumentService(
	store *session.Store,
	vectors vectorstore.Store,
	analysisService IAnalysisService,
	publisher IPublisherService,
	sysLogger logger.ILogger,
	splitOpts splitter.Options,
	dataDir string,
	historyLimit int,
) IDocumentService {
	return &documentService{
		store:           store,
		vectors:         vectors,
		analysisService: analysisService,
		publisher:       publisher,
		logger:          sysLogger,
		splitOpts:       splitOpts,
		dataDir:         dataDir,
		historyLimit:    historyLimit,
	}
}

// AnalyzeUpload extracts text from the uploaded document, analyzes it and
// registers a retrieval session for follow-up questions.
func (s *documentService) AnalyzeUpload(ctx context.Context, filename string, data []byte) (*dto.AnalyzePDFResponse, error) {
	text, err := extract.ForFilename(filename).Extract(data)
	if err != nil {
		return nil, apperrors.NewExtraction("Failed to extract text from document", err)
	}

	analysis, err := s.analysisService.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	sessionID, err := s.Ingest(ctx, text, filename)
	if err != nil {
		return nil, err
	}

	return &dto.AnalyzePDFResponse{
		Summary:   analysis.Summary,
		Keywords:  analysis.Keywords,
		Questions: analysis.Questions,
		SessionID: sessionID,
	}, nil
}

// Ingest chunks the text, builds and persists a dedicated retrieval index,
// and registers the session. The session record is only stored after every
// step succeeded, so a failure never leaves a partial session behind.
func (s *documentService) Ingest(ctx context.Context, text, sourceName string) (string, error) {
	chunks := splitter.Split(text, s.splitOpts)
	if len(chunks) == 0 {
		return "", apperrors.NewIngestion(
			fmt.Sprintf("no chunks were generated from the text for %s", sourceName), nil)
	}

	sessionID := uuid.NewString()
	storageDir := filepath.Join(s.dataDir, "session_"+sessionID)

	index, err := s.vectors.Build(ctx, chunks, map[string]string{"source": sourceName})
	if err != nil {
		return "", apperrors.NewIngestion("failed to index document", err)
	}

	if err := index.Persist(storageDir); err != nil {
		// Half-written snapshots must not survive a failed ingestion.
		_ = os.RemoveAll(storageDir)
		return "", apperrors.NewIngestion("failed to persist document index", err)
	}

	s.store.Put(&session.Session{
		ID:         sessionID,
		SourceName: sourceName,
		Chunks:     chunks,
		Index:      index,
		StorageDir: storageDir,
		History:    session.NewHistory(s.historyLimit),
		CreatedAt:  time.Now(),
	})

	if err := s.publisher.PublishSessionCreated(sessionID, sourceName, len(chunks)); err != nil {
		s.logger.Warn("document", "failed to publish session created event", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	s.logger.Info("document", "document stored", map[string]interface{}{
		"session_id": sessionID,
		"source":     sourceName,
		"chunks":     len(chunks),
	})
	return sessionID, nil
}

func (s *documentService) SessionInfo(sessionID string) (*dto.SessionInfoResponse, error) {
	sess, found := s.store.Get(sessionID)
	if !found {
		return nil, apperrors.NewSessionNotFound(sessionID)
	}
	return &dto.SessionInfoResponse{
		Filename:    sess.SourceName,
		ChunksCount: len(sess.Chunks),
		Status:      "active",
		StorageDir:  sess.StorageDir,
	}, nil
}

// DeleteSession tears down a session and its persisted index. Deleting an
// unknown session is a no-op.
func (s *documentService) DeleteSession(sessionID string) error {
	if _, found := s.store.Get(sessionID); !found {
		return nil
	}
	s.store.Delete(sessionID)

	if err := s.publisher.PublishSessionDeleted(sessionID); err != nil {
		s.logger.Warn("document", "failed to publish session deleted event", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	s.logger.Info("document", "session cleaned up", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}
