// Package extract turns uploaded document bytes into plain text. It is the
// boundary to the text-extraction oracle: callers only see text or an error.
package extract

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrNoText is returned when a document yields no recoverable text.
var ErrNoText = errors.New("no text could be extracted from the document")

// Extractor converts raw document bytes into plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// ForFilename picks an extractor by file extension. PDF is the default since
// the upload endpoint is PDF-oriented; plain text passes through untouched.
func ForFilename(name string) Extractor {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return PlainTextExtractor{}
	default:
		return PDFExtractor{}
	}
}

// PlainTextExtractor treats the bytes as UTF-8 text.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(data []byte) (string, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
