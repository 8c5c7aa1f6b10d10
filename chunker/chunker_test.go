package chunker

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"simple", "hello world", "hello world"},
		{"collapses runs", "hello   \t world", "hello world"},
		{"newlines become spaces", "line one\nline two\n\nline three", "line one line two line three"},
		{"trims", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	c := New()

	chunks := c.Chunk("This is a short document.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "This is a short document.", chunks[0])
}

func TestChunk_EmptyInputYieldsEmptyChunk(t *testing.T) {
	c := New()

	chunks := c.Chunk("")
	require.Len(t, chunks, 1)
	assert.Equal(t, "", chunks[0])
}

func TestChunk_ExactlyChunkSize(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(10))

	text := strings.Repeat("a", 100)
	chunks := c.Chunk(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunk_PrefersSentenceBoundary(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(10))

	// A sentence ends inside the boundary search window before position 100.
	first := strings.Repeat("a", 60) + ". "
	rest := strings.Repeat("b", 200)
	chunks := c.Chunk(first + rest)

	require.GreaterOrEqual(t, len(chunks), 2)
	// The first chunk ends with the sentence, punctuation included.
	assert.Equal(t, strings.Repeat("a", 60)+".", chunks[0])
}

func TestChunk_FallsBackToSpace(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(10))

	// No sentence boundary anywhere; one space at position 80.
	text := strings.Repeat("a", 80) + " " + strings.Repeat("b", 200)
	chunks := c.Chunk(text)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, strings.Repeat("a", 80), chunks[0])
}

func TestChunk_HardCutWithoutSpaces(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(10))

	text := strings.Repeat("x", 350)
	chunks := c.Chunk(text)

	require.NotEmpty(t, chunks)
	assert.Len(t, chunks[0], 100)
	total := 0
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100)
		total += len(chunk)
	}
	// Overlap duplicates characters, so totals meet or exceed the input.
	assert.GreaterOrEqual(t, total, 350)
}

func TestChunk_WindowsAreOrderedAndNonEmpty(t *testing.T) {
	c := New(WithChunkSize(120), WithOverlap(20))

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)
	chunks := c.Chunk(text)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
		assert.LessOrEqual(t, len(chunk), 120)
	}
}

// Consecutive windows must cover the normalized input without gaps: every
// non-space position of the normalized text appears in at least one window.
func TestChunk_CoversNormalizedInput(t *testing.T) {
	c := New(WithChunkSize(120), WithOverlap(20))

	// Unique sentences so each window matches at exactly one position.
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "Sentence number %d talks about topic %d. ", i, i*i)
	}
	text := sb.String()
	normalized := Normalize(text)
	chunks := c.Chunk(text)

	covered := make([]bool, len(normalized))
	searchFrom := 0
	for _, chunk := range chunks {
		idx := strings.Index(normalized[searchFrom:], chunk)
		require.GreaterOrEqual(t, idx, 0, "chunk must be a substring of the normalized input")

		begin := searchFrom + idx
		for i := begin; i < begin+len(chunk); i++ {
			covered[i] = true
		}
		// Overlapping windows may start before the previous end; only
		// advance the search floor far enough to keep matches in order.
		searchFrom = begin + 1
	}

	for i, ok := range covered {
		if normalized[i] == ' ' {
			continue
		}
		assert.True(t, ok, "position %d (%q) not covered", i, normalized[i])
	}
}

func TestChunk_OverlapCarriesTailForward(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(20))

	text := strings.Repeat("y", 300)
	chunks := c.Chunk(text)
	require.GreaterOrEqual(t, len(chunks), 2)

	// With a hard cut the second window begins overlap chars before the
	// first window's end.
	tail := chunks[0][len(chunks[0])-20:]
	assert.True(t, strings.HasPrefix(chunks[1], tail))
}

// Spaceless multibyte text hits the hard-cut path; every window must still
// be valid UTF-8 and respect the rune-measured window size.
func TestChunk_MultibyteHardCutKeepsRunesIntact(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(10))

	text := strings.Repeat("文", 200)
	chunks := c.Chunk(text)

	require.GreaterOrEqual(t, len(chunks), 2)
	total := 0
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk is not valid UTF-8: %q", chunk)
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 100)
		total += utf8.RuneCountInString(chunk)
	}
	assert.Equal(t, 100, utf8.RuneCountInString(chunks[0]))
	assert.GreaterOrEqual(t, total, 200)
}

func TestChunk_MultibyteSpaceFallback(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(10))

	// One space at rune position 80; the first cut must land there, not
	// inside a multibyte sequence near the ideal cut.
	text := strings.Repeat("ん", 80) + " " + strings.Repeat("か", 200)
	chunks := c.Chunk(text)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, strings.Repeat("ん", 80), chunks[0])
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk))
	}
}

func TestChunk_PathologicalOverlapStillTerminates(t *testing.T) {
	// Overlap >= chunk size gets clamped by New; construct by hand to hit
	// the strict-progress guard as well.
	c := New(WithChunkSize(10), WithOverlap(9))

	chunks := c.Chunk(strings.Repeat("z", 100))
	assert.NotEmpty(t, chunks)
}
