// Package chunker splits normalized document text into overlapping windows
// with content-aware boundaries. Windows are the unit of embedding.
package chunker

import "strings"

// DefaultChunkSize is the default number of characters per window.
const DefaultChunkSize = 2000

// DefaultOverlap is the default number of overlapping characters between
// consecutive windows.
const DefaultOverlap = 50

// boundaryWindow is how far back from the ideal cut a sentence boundary is
// searched for.
const boundaryWindow = 100

// Chunker splits text into overlapping character windows, preferring to cut
// at sentence boundaries.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windows in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a Chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave room to advance
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Normalize collapses all whitespace runs to a single space and trims the
// result.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Chunk splits text into an ordered sequence of overlapping windows.
//
// Text is normalized first. Text that fits in a single window is returned
// unsplit; note that empty input yields a single empty-string chunk, so
// callers must guard against embedding empty text. Longer text is cut at the
// latest sentence boundary within the trailing boundaryWindow characters of
// each ideal cut, falling back to the nearest preceding space, then to a
// hard cut. Each next window starts overlap characters before the previous
// cut.
func (c *Chunker) Chunk(text string) []string {
	// Window sizes are measured in runes so cuts never land inside a
	// multibyte sequence.
	normalized := []rune(Normalize(text))
	if len(normalized) <= c.chunkSize {
		return []string{string(normalized)}
	}

	var chunks []string
	start := 0
	for start < len(normalized) {
		end := c.cut(normalized, start)

		window := strings.TrimSpace(string(normalized[start:end]))
		if window != "" {
			chunks = append(chunks, window)
		}

		if end >= len(normalized) {
			break
		}

		// Progress must be strictly positive: with a pathological overlap
		// the overlap-adjusted start could stall, so fall back to a hard
		// step at the cut.
		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// cut returns the exclusive end index of the window starting at start.
func (c *Chunker) cut(s []rune, start int) int {
	ideal := start + c.chunkSize
	if ideal >= len(s) {
		return len(s)
	}

	// Prefer the latest sentence boundary within the trailing window.
	searchStart := ideal - boundaryWindow
	if searchStart < start {
		searchStart = start
	}
	for i := ideal - 1; i >= searchStart; i-- {
		ch := s[i]
		if ch == '\n' {
			return i + 1
		}
		if (ch == '.' || ch == '!' || ch == '?') && i+1 < len(s) && s[i+1] == ' ' {
			return i + 1
		}
	}

	// No sentence boundary: cut at the nearest preceding space.
	for i := ideal - 1; i > start; i-- {
		if s[i] == ' ' {
			return i
		}
	}

	// No space at all: hard cut at the ideal end.
	return ideal
}
