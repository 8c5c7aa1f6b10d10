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


package dedup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/berkdoc/docpipe/core"
	"github.com/berkdoc/docpipe/storage"
)

// Detector finds near-duplicate documents by comparing their aggregated
// document vectors.
type Detector struct {
	documents  storage.DocumentRepository
	duplicates storage.DuplicateRepository
	cfg        Config
	logger     *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// WithConfig overrides the detection parameters.
func WithConfig(cfg Config) Option {
	return func(d *Detector) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		d.cfg = cfg.normalize()
		return nil
	}
}

// NewDetector creates a duplicate detector. Defaults come from the
// environment (see ConfigFromEnv).
func NewDetector(
	documentRepository storage.DocumentRepository,
	duplicateRepository storage.DuplicateRepository,
	opts ...Option,
) (*Detector, error) {
	if documentRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if duplicateRepository == nil {
		return nil, ErrDuplicateRepositoryRequired
	}

	d := &Detector{
		documents:  documentRepository,
		duplicates: duplicateRepository,
		cfg:        ConfigFromEnv().normalize(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// DetectDocumentDuplicates scans all documents of an owner and records a
// DuplicatePair for every pair whose vector similarity reaches the
// threshold. It returns the number of newly created pairs.
//
// The neighbor query carries no ordering guarantee; correctness rests only
// on the threshold test and canonical-pair dedup, so rerunning detection on
// the same corpus state creates nothing new. Candidates just below the
// threshold are logged at debug level for threshold tuning.
//
// Documents are examined sequentially: the in-run processed set then has a
// single writer and run results are deterministic for a fixed corpus.
func (d *Detector) DetectDocumentDuplicates(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("detect duplicates: %w", core.ErrEmptyOwnerID)
	}

	docs, err := d.documents.DocumentVectorsByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	created := 0
	processed := make(map[string]bool)

	for _, doc := range docs {
		if len(doc.Vector) == 0 {
			continue
		}

		neighbors, err := d.documents.NearestNeighbors(ctx, ownerID, doc.Vector, d.cfg.MaxNeighbors)
		if err != nil {
			return created, err
		}

		for _, neighbor := range neighbors {
			if neighbor.DocumentID == doc.DocumentID {
				continue
			}

			if neighbor.Score < d.cfg.SimilarityThreshold {
				if neighbor.Score >= d.cfg.SimilarityThreshold-nearMissMargin {
					d.logger.Debug("near-miss duplicate candidate",
						"ownerId", ownerID,
						"documentId", doc.DocumentID,
						"candidateId", neighbor.DocumentID,
						"similarity", neighbor.Score,
						"threshold", d.cfg.SimilarityThreshold)
				}
				continue
			}

			key := core.PairKey(ownerID, doc.DocumentID, neighbor.DocumentID)
			if processed[key] {
				continue
			}
			processed[key] = true

			pair := core.NewDuplicatePair(ownerID, doc.DocumentID, neighbor.DocumentID, neighbor.Score)
			added, err := d.duplicates.AddDuplicatePair(ctx, pair)
			if err != nil {
				return created, err
			}
			if added {
				created++
				d.logger.Debug("duplicate pair recorded",
					"ownerId", ownerID,
					"sourceId", pair.SourceDocumentID,
					"targetId", pair.TargetDocumentID,
					"similarity", pair.Similarity)
			}
		}
	}

	d.logger.Info("duplicate detection finished",
		"ownerId", ownerID, "documents", len(docs), "created", created)
	return created, nil
}
