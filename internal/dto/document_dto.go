package dto

import "ask-backend/pkg/rag/flashcard"

// AnalyzePDFResponse is the upload-time analysis plus the chat session handle.
type AnalyzePDFResponse struct {
	Summary   string   `json:"summary"`
	Keywords  []string `json:"keywords"`
	Questions []string `json:"questions"`
	SessionID string   `json:"session_id"`
}

// AnalysisResult is the document analysis produced at upload time.
type AnalysisResult struct {
	Summary   string   `json:"summary"`
	Keywords  []string `json:"keywords"`
	Questions []string `json:"questions"`
}

type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Question  string `json:"question" validate:"required"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type GenerateFlashcardsRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Count     int    `json:"count"`
}

type FlashcardsResponse struct {
	Flashcards []flashcard.Card `json:"flashcards"`
	Source     string           `json:"source"`
	Reason     string           `json:"reason,omitempty"`
}

type SessionInfoResponse struct {
	Filename    string `json:"filename"`
	ChunksCount int    `json:"chunks_count"`
	Status      string `json:"status"`
	StorageDir  string `json:"storage_dir"`
}
