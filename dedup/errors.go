package dedup

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrDuplicateRepositoryRequired is returned when a duplicate repository is not provided.
	ErrDuplicateRepositoryRequired = errors.New("duplicate repository required")

	// ErrInvalidThreshold is returned when the similarity threshold is
	// outside (0, 1].
	ErrInvalidThreshold = errors.New("similarity threshold must be in (0, 1]")
)
