package splitter

import (
	"strings"
	"unicode/utf8"
)

// Options configure the recursive character splitter.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

// DefaultOptions mirrors the splitting parameters the retrieval pipeline
// was tuned with: 1000-char chunks with a 200-char overlap.
func DefaultOptions() Options {
	return Options{
		ChunkSize:    1000,
		ChunkOverlap: 200,
		Separators:   []string{"\n\n", "\n", ". ", " ", ""},
	}
}

// Split breaks text into chunks of at most ChunkSize characters, preferring to
// break on the earliest separator in Options.Separators that helps. Adjacent
// small pieces are merged back together up to ChunkSize, duplicating up to
// ChunkOverlap characters of trailing context into the next chunk.
//
// Output is a pure function of the input: no randomness, no global state.
// A single indivisible unit longer than ChunkSize is hard-sliced as a last
// resort, so only the empty-separator fallback can emit full-size windows.
func Split(text string, opts Options) []string {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultOptions().ChunkSize
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = 0
	}
	if len(opts.Separators) == 0 {
		opts.Separators = DefaultOptions().Separators
	}

	raw := splitRecursive(text, opts.ChunkSize, opts.ChunkOverlap, opts.Separators)

	chunks := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

func splitRecursive(text string, size, overlap int, seps []string) []string {
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	// Pick the first separator that actually occurs in the text. The empty
	// string always matches and means "give up and slice by characters".
	sep := ""
	var rest []string
	for i, s := range seps {
		if s == "" {
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	if sep == "" {
		return hardSplit(text, size, overlap)
	}

	parts := strings.Split(text, sep)

	var out []string
	var good []string
	for _, p := range parts {
		if utf8.RuneCountInString(p) <= size {
			good = append(good, p)
			continue
		}
		// Oversized piece: flush what we have, then re-split it with the
		// remaining, finer separators.
		if len(good) > 0 {
			out = append(out, mergeParts(good, sep, size, overlap)...)
			good = nil
		}
		out = append(out, splitRecursive(p, size, overlap, rest)...)
	}
	if len(good) > 0 {
		out = append(out, mergeParts(good, sep, size, overlap)...)
	}
	return out
}

// mergeParts greedily joins small parts back together up to size characters,
// then slides the window so the next chunk starts with up to overlap
// characters of already-emitted context.
func mergeParts(parts []string, sep string, size, overlap int) []string {
	var docs []string
	var window []string

	for _, p := range parts {
		pl := utf8.RuneCountInString(p)
		if len(window) > 0 && windowLen(window, sep)+sepLen(sep, window)+pl > size {
			docs = append(docs, strings.Join(window, sep))
			for len(window) > 0 &&
				(windowLen(window, sep) > overlap ||
					windowLen(window, sep)+sepLen(sep, window)+pl > size) {
				window = window[1:]
			}
		}
		window = append(window, p)
	}

	if len(window) > 0 {
		docs = append(docs, strings.Join(window, sep))
	}
	return docs
}

func windowLen(window []string, sep string) int {
	total := 0
	for _, w := range window {
		total += utf8.RuneCountInString(w)
	}
	if len(window) > 1 {
		total += utf8.RuneCountInString(sep) * (len(window) - 1)
	}
	return total
}

func sepLen(sep string, window []string) int {
	if len(window) == 0 {
		return 0
	}
	return utf8.RuneCountInString(sep)
}

// hardSplit slices by character count with a fixed overlap step. Last resort
// for indivisible runs (e.g. one giant token with no whitespace).
func hardSplit(text string, size, overlap int) []string {
	runes := []rune(text)
	total := len(runes)

	step := size - overlap
	if step <= 0 {
		step = size
	}

	var chunks []string
	for i := 0; i < total; i += step {
		end := i + size
		if end > total {
			end = total
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == total {
			break
		}
	}
	return chunks
}
