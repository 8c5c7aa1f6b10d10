package mock

import (
	"context"
	"strings"
)

// MockAnnotator is a test double for ai.Annotator.
// It allows custom behavior injection via function fields.
type MockAnnotator struct {
	// GenerateTagsFunc is called by GenerateTags if set.
	// If nil, uses default simple word extraction.
	GenerateTagsFunc func(ctx context.Context, text string) ([]string, error)

	// SummarizeFunc is called by Summarize if set.
	// If nil, uses a default truncated echo of the text.
	SummarizeFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewMockAnnotator creates a mock annotator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockAnnotator().
func NewMockAnnotator() *MockAnnotator {
	return &MockAnnotator{}
}

// GenerateTags derives simple mock tags from text.
// Default behavior: lowercases the text and uses the first few distinct words.
func (m *MockAnnotator) GenerateTags(ctx context.Context, text string) ([]string, error) {
	m.callCount++

	if m.GenerateTagsFunc != nil {
		return m.GenerateTagsFunc(ctx, text)
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return []string{}, nil
	}

	tags := make([]string, 0, 5)
	seen := make(map[string]bool)
	for _, word := range words {
		if len(tags) >= 5 {
			break
		}

		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		tags = append(tags, word)
	}

	return tags, nil
}

// Summarize returns a short mock summary of the text.
// Default behavior: the first 80 characters of the text, trimmed.
func (m *MockAnnotator) Summarize(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}

	text = strings.TrimSpace(text)
	if len(text) > 80 {
		text = text[:80]
	}
	return text, nil
}

// CallCount returns the number of times any method was called.
func (m *MockAnnotator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockAnnotator) Reset() {
	m.callCount = 0
	m.GenerateTagsFunc = nil
	m.SummarizeFunc = nil
}
