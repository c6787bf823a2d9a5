package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies application failures so the HTTP layer can map them
// to status codes without string matching.
type Kind string

const (
	KindValidation      Kind = "VALIDATION"
	KindExtraction      Kind = "EXTRACTION"
	KindIngestion       Kind = "INGESTION"
	KindAnalysis        Kind = "ANALYSIS"
	KindSessionNotFound Kind = "SESSION_NOT_FOUND"
	KindAnswer          Kind = "ANSWER"
	KindFlashcard       Kind = "FLASHCARD"
)

// AppError carries a kind, a human-readable message and the underlying cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewValidation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewExtraction(message string, cause error) *AppError {
	return &AppError{Kind: KindExtraction, Message: message, Cause: cause}
}

func NewIngestion(message string, cause error) *AppError {
	return &AppError{Kind: KindIngestion, Message: message, Cause: cause}
}

func NewAnalysis(message string, cause error) *AppError {
	return &AppError{Kind: KindAnalysis, Message: message, Cause: cause}
}

func NewSessionNotFound(sessionID string) *AppError {
	return &AppError{
		Kind:    KindSessionNotFound,
		Message: fmt.Sprintf("session %s not found, upload a document first", sessionID),
	}
}

func NewAnswer(message string, cause error) *AppError {
	return &AppError{Kind: KindAnswer, Message: message, Cause: cause}
}

func NewFlashcard(message string, cause error) *AppError {
	return &AppError{Kind: KindFlashcard, Message: message, Cause: cause}
}

// IsKind reports whether err is (or wraps) an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
