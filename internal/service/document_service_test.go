package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ask-backend/internal/apperrors"
	"ask-backend/internal/pkg/logger"
	"ask-backend/pkg/embedding"
	"ask-backend/pkg/rag/session"
	"ask-backend/pkg/splitter"
	"ask-backend/pkg/vectorstore/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopLogger satisfies logger.ILogger without writing anywhere.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var _ logger.ILogger = nopLogger{}

// hashEmbedder derives a deterministic unit vector from the text bytes so
// similarity ordering is stable across runs.
type hashEmbedder struct{}

func (hashEmbedder) Generate(_ context.Context, text, _ string) ([]float32, error) {
	vec := make([]float32, 4)
	for i, b := range []byte(text) {
		vec[i%4] += float32(b)
	}
	return embedding.Normalize(vec), nil
}

type failEmbedder struct{}

func (failEmbedder) Generate(context.Context, string, string) ([]float32, error) {
	return nil, errors.New("embedding backend unavailable")
}

type recordingPublisher struct {
	created []string
	deleted []string
}

func (p *recordingPublisher) PublishSessionCreated(sessionID, _ string, _ int) error {
	p.created = append(p.created, sessionID)
	return nil
}

func (p *recordingPublisher) PublishSessionDeleted(sessionID string) error {
	p.deleted = append(p.deleted, sessionID)
	return nil
}

func newTestDocumentService(t *testing.T, provider embedding.Provider) (IDocumentService, *session.Store, *recordingPublisher, string) {
	t.Helper()
	dataDir := t.TempDir()
	store := session.NewStore(0)
	publisher := &recordingPublisher{}
	svc := NewDocumentService(
		store,
		memory.NewStore(provider),
		nil, // analysis is not exercised by Ingest
		publisher,
		nopLogger{},
		splitter.DefaultOptions(),
		dataDir,
		50,
	)
	return svc, store, publisher, dataDir
}

func TestIngestRegistersSession(t *testing.T) {
	svc, store, publisher, dataDir := newTestDocumentService(t, hashEmbedder{})

	text := strings.Repeat("The Krebs cycle produces ATP in the mitochondria. ", 40)
	sessionID, err := svc.Ingest(context.Background(), text, "biology.pdf")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	sess, found := store.Get(sessionID)
	require.True(t, found)
	assert.Equal(t, "biology.pdf", sess.SourceName)
	assert.NotEmpty(t, sess.Chunks)
	assert.NotNil(t, sess.Index)

	// Index snapshot must exist on disk under the session's own directory.
	assert.Equal(t, filepath.Join(dataDir, "session_"+sessionID), sess.StorageDir)
	_, err = os.Stat(filepath.Join(sess.StorageDir, "index.json"))
	assert.NoError(t, err)

	assert.Equal(t, []string{sessionID}, publisher.created)
}

func TestIngestRejectsEmptyText(t *testing.T) {
	svc, store, _, _ := newTestDocumentService(t, hashEmbedder{})

	_, err := svc.Ingest(context.Background(), "   \n\n  ", "empty.pdf")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindIngestion))
	assert.Equal(t, 0, store.Len())
}

func TestIngestEmbeddingFailureLeavesNothingBehind(t *testing.T) {
	svc, store, publisher, dataDir := newTestDocumentService(t, failEmbedder{})

	_, err := svc.Ingest(context.Background(), "some document text", "doc.pdf")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindIngestion))

	assert.Equal(t, 0, store.Len())
	assert.Empty(t, publisher.created)

	entries, err := os.ReadDir(dataDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed ingestion must not leave session directories")
}

func TestSessionInfoUnknownSession(t *testing.T) {
	svc, _, _, _ := newTestDocumentService(t, hashEmbedder{})

	_, err := svc.SessionInfo("nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindSessionNotFound))
}

func TestDeleteSessionRemovesStorage(t *testing.T) {
	svc, store, publisher, _ := newTestDocumentService(t, hashEmbedder{})

	sessionID, err := svc.Ingest(context.Background(), "Photosynthesis converts light into chemical energy.", "photo.txt")
	require.NoError(t, err)

	sess, found := store.Get(sessionID)
	require.True(t, found)
	storageDir := sess.StorageDir

	require.NoError(t, svc.DeleteSession(sessionID))

	_, found = store.Get(sessionID)
	assert.False(t, found)
	_, err = os.Stat(storageDir)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, []string{sessionID}, publisher.deleted)

	// Deleting again is a no-op.
	assert.NoError(t, svc.DeleteSession(sessionID))
	assert.Equal(t, []string{sessionID}, publisher.deleted)
}
