package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. The embedding dimension must be constant across the corpus.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as
	// the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Annotator derives presentation metadata for a document from its content
// using a language model. Implementations must be thread-safe for
// concurrent use.
type Annotator interface {
	// GenerateTags returns up to ten short lowercase noun-phrase tags for
	// the text. Returns an empty slice, not an error, when the model
	// response cannot be decoded after repair attempts.
	GenerateTags(ctx context.Context, text string) ([]string, error)

	// Summarize returns a single-sentence summary of the text. Returns an
	// empty string, not an error, when the model response cannot be
	// decoded after repair attempts.
	Summarize(ctx context.Context, text string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Annotator instances, ensuring they share configuration appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Annotator returns the tag and summary generation service.
	// The returned Annotator is safe for concurrent use.
	Annotator() Annotator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
