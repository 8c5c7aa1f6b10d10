// Copyright 2025 Berkdoc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/berkdoc/docpipe/core"
	"github.com/berkdoc/docpipe/storage"
)

// DuplicateRepository implements storage.DuplicateRepository for BadgerDB.
type DuplicateRepository struct {
	backend *Backend
}

var _ storage.DuplicateRepository = (*DuplicateRepository)(nil)

// NewDuplicateRepository creates a new DuplicateRepository.
func NewDuplicateRepository(backend *Backend) *DuplicateRepository {
	return &DuplicateRepository{backend: backend}
}

// Close is a no-op; the repository owns no resources beyond the backend.
func (r *DuplicateRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *DuplicateRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddDuplicatePair stores a duplicate pair. Returns true if the pair was
// newly created, false if the same canonical pair already existed.
func (r *DuplicateRepository) AddDuplicatePair(ctx context.Context, pair *core.DuplicatePair) (bool, error) {
	if err := core.ValidateDuplicatePair(pair); err != nil {
		return false, err
	}

	created := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDuplicatePairKey(pair.OwnerID, pair.SourceDocumentID, pair.TargetDocumentID)

		_, err := tx.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := tx.Set(key, storage.MarshalDuplicatePair(pair)); err != nil {
			return err
		}
		created = true
		return tx.Commit()
	}, true)
	if err != nil {
		return false, err
	}
	return created, nil
}

// HasDuplicatePair reports whether a pair is recorded for the two documents,
// in either argument order.
func (r *DuplicateRepository) HasDuplicatePair(ctx context.Context, ownerID, docA, docB string) (bool, error) {
	source, target := core.CanonicalPair(docA, docB)

	found := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeDuplicatePairKey(ownerID, source, target))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// DuplicatePairsByOwner retrieves all duplicate pairs of an owner.
func (r *DuplicateRepository) DuplicatePairsByOwner(ctx context.Context, ownerID string) ([]*core.DuplicatePair, error) {
	pairs := []*core.DuplicatePair{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDuplicatePairPrefix(ownerID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				pair, err := storage.UnmarshalDuplicatePair(val)
				if err != nil {
					return err
				}
				pairs = append(pairs, pair)
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
	return pairs, nil
}

// DeleteDuplicatePairsForDocument removes every pair that references the
// document as either source or target. Returns the number of pairs removed.
func (r *DuplicateRepository) DeleteDuplicatePairsForDocument(ctx context.Context, ownerID, documentID string) (int, error) {
	deleted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDuplicatePairPrefix(ownerID)
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			var pair *core.DuplicatePair
			err := item.Value(func(val []byte) error {
				var err error
				pair, err = storage.UnmarshalDuplicatePair(val)
				return err
			})
			if err != nil {
				iter.Close()
				return err
			}
			if pair.SourceDocumentID == documentID || pair.TargetDocumentID == documentID {
				keys = append(keys, item.KeyCopy(nil))
			}
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
