package storage

import (
	"context"

	"github.com/berkdoc/docpipe/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository provides operations for managing document chunks.
type ChunkRepository interface {
	Repository
	// AddChunks adds one or more chunks to storage.
	// Chunks are keyed by (owner, document, chunk index), so re-adding a
	// chunk with the same coordinates overwrites the previous value.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) error

	// GetChunks retrieves all chunks of a document, ordered by chunk index.
	// Returns an empty slice when the document has no chunks.
	GetChunks(ctx context.Context, ownerID, documentID string) ([]*core.Chunk, error)

	// DeleteChunks removes all chunks of a document.
	// Returns the number of chunks removed. Deleting a document with no
	// chunks is not an error.
	DeleteChunks(ctx context.Context, ownerID, documentID string) (int, error)
}

// DocumentRepository provides operations for managing document-level vectors
// and metadata.
type DocumentRepository interface {
	Repository
	// PutDocumentVector stores a document vector, replacing any existing
	// vector for the same (owner, document).
	PutDocumentVector(ctx context.Context, doc *core.DocumentVector) error

	// GetDocumentVector retrieves the vector for a single document.
	// Returns ErrNotFound if the document has no stored vector.
	GetDocumentVector(ctx context.Context, ownerID, documentID string) (*core.DocumentVector, error)

	// DeleteDocumentVector removes a document's vector.
	// Deleting a vector that does not exist is not an error.
	DeleteDocumentVector(ctx context.Context, ownerID, documentID string) error

	// DocumentVectorsByOwner retrieves all document vectors belonging to an
	// owner. Returns an empty slice when the owner has no documents.
	DocumentVectorsByOwner(ctx context.Context, ownerID string) ([]*core.DocumentVector, error)

	// NearestNeighbors finds the documents of an owner whose vectors are
	// most similar to the given query vector, ordered by similarity score
	// (highest first), up to limit results. The query document itself is
	// included when its vector is stored.
	NearestNeighbors(ctx context.Context, ownerID string, vector []float32, limit int) ([]core.Neighbor, error)

	// UpdateDocumentMetadata applies a partial metadata update to a
	// document. Fields whose Has* flag is unset are left unchanged.
	// Creates the metadata record if it does not exist yet.
	UpdateDocumentMetadata(ctx context.Context, ownerID, documentID string, update core.MetadataUpdate) error

	// GetDocumentMetadata retrieves the metadata record for a document.
	// Returns ErrNotFound if no metadata has been stored.
	GetDocumentMetadata(ctx context.Context, ownerID, documentID string) (*core.DocumentMetadata, error)

	// DeleteDocumentMetadata removes a document's metadata record.
	// Deleting metadata that does not exist is not an error.
	DeleteDocumentMetadata(ctx context.Context, ownerID, documentID string) error
}

// DuplicateRepository provides operations for managing duplicate pairs.
type DuplicateRepository interface {
	Repository
	// AddDuplicatePair stores a duplicate pair.
	// Returns true if the pair was newly created, false if an identical
	// pair (same owner and canonical document pair) already existed.
	AddDuplicatePair(ctx context.Context, pair *core.DuplicatePair) (bool, error)

	// HasDuplicatePair reports whether a pair is already recorded for the
	// two documents, in either argument order.
	HasDuplicatePair(ctx context.Context, ownerID, docA, docB string) (bool, error)

	// DuplicatePairsByOwner retrieves all duplicate pairs of an owner.
	DuplicatePairsByOwner(ctx context.Context, ownerID string) ([]*core.DuplicatePair, error)

	// DeleteDuplicatePairsForDocument removes every pair that references
	// the document as either source or target. Returns the number of pairs
	// removed.
	DeleteDuplicatePairsForDocument(ctx context.Context, ownerID, documentID string) (int, error)
}
