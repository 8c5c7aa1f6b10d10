package badger

// Repositories bundles the three repositories sharing one backend.
type Repositories struct {
	Chunks     *ChunkRepository
	Documents  *DocumentRepository
	Duplicates *DuplicateRepository

	backend *Backend
}

// NewRepositories opens an on-disk database and creates the full repository
// set. Caller must Close when done.
func NewRepositories(filePath string) (*Repositories, error) {
	return newRepositories(filePath, false)
}

func newRepositories(filePath string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Chunks:     NewChunkRepository(backend),
		Documents:  NewDocumentRepository(backend),
		Duplicates: NewDuplicateRepository(backend),
		backend:    backend,
	}, nil
}

// Backend exposes the shared backend for callers that need low-level access.
func (r *Repositories) Backend() *Backend {
	return r.backend
}

// Close closes the shared backend.
func (r *Repositories) Close() error {
	if err := r.Chunks.Close(); err != nil {
		return err
	}
	if err := r.Documents.Close(); err != nil {
		return err
	}
	if err := r.Duplicates.Close(); err != nil {
		return err
	}
	return r.backend.Close()
}
