package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/berkdoc/docpipe/core"
	"github.com/berkdoc/docpipe/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) *DocumentRepository {
	return &DocumentRepository{backend: backend}
}

// Close is a no-op; the repository owns no resources beyond the backend.
func (r *DocumentRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *DocumentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutDocumentVector stores a document vector, replacing any existing vector
// for the same (owner, document).
func (r *DocumentRepository) PutDocumentVector(ctx context.Context, doc *core.DocumentVector) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentVectorKey(doc.OwnerID, doc.DocumentID)
		if err := tx.Set(key, storage.MarshalDocumentVector(doc)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetDocumentVector retrieves the vector for a single document.
func (r *DocumentRepository) GetDocumentVector(ctx context.Context, ownerID, documentID string) (*core.DocumentVector, error) {
	var result *core.DocumentVector
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentVectorKey(ownerID, documentID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalDocumentVector(val)
			return err
		})
	}, false)
	return result, err
}

// DeleteDocumentVector removes a document's vector.
func (r *DocumentRepository) DeleteDocumentVector(ctx context.Context, ownerID, documentID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeDocumentVectorKey(ownerID, documentID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DocumentVectorsByOwner retrieves all document vectors belonging to an owner.
func (r *DocumentRepository) DocumentVectorsByOwner(ctx context.Context, ownerID string) ([]*core.DocumentVector, error) {
	docs := []*core.DocumentVector{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentVectorPrefix(ownerID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				doc, err := storage.UnmarshalDocumentVector(val)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// NearestNeighbors delegates to the backend.
func (r *DocumentRepository) NearestNeighbors(ctx context.Context, ownerID string, vector []float32, limit int) ([]core.Neighbor, error) {
	return r.backend.NearestNeighbors(ctx, ownerID, vector, limit)
}

// UpdateDocumentMetadata applies a partial metadata update to a document.
// The record is created on first update.
func (r *DocumentRepository) UpdateDocumentMetadata(ctx context.Context, ownerID, documentID string, update core.MetadataUpdate) error {
	if !update.HasTags && !update.HasSummary {
		return nil
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentMetaKey(ownerID, documentID)

		meta := &core.DocumentMetadata{
			DocumentID: documentID,
			OwnerID:    ownerID,
		}
		item, err := tx.Get(key)
		if err == nil {
			err = item.Value(func(val []byte) error {
				meta, err = storage.UnmarshalDocumentMetadata(val)
				return err
			})
			if err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if update.HasTags {
			meta.Tags = update.Tags
		}
		if update.HasSummary {
			meta.Summary = update.Summary
		}
		meta.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalDocumentMetadata(meta)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetDocumentMetadata retrieves the metadata record for a document.
func (r *DocumentRepository) GetDocumentMetadata(ctx context.Context, ownerID, documentID string) (*core.DocumentMetadata, error) {
	var result *core.DocumentMetadata
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentMetaKey(ownerID, documentID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalDocumentMetadata(val)
			return err
		})
	}, false)
	return result, err
}

// DeleteDocumentMetadata removes a document's metadata record.
func (r *DocumentRepository) DeleteDocumentMetadata(ctx context.Context, ownerID, documentID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeDocumentMetaKey(ownerID, documentID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
