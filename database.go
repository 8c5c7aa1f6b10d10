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


// Package docpipe wires storage, AI services, the ingestion pipeline, and
// the duplicate detector into one embeddable database handle.
package docpipe

import (
	"log/slog"

	"github.com/berkdoc/docpipe/ai"
	"github.com/berkdoc/docpipe/ai/openai"
	"github.com/berkdoc/docpipe/dedup"
	"github.com/berkdoc/docpipe/ingestion"
	"github.com/berkdoc/docpipe/storage"
	"github.com/berkdoc/docpipe/storage/badger"
)

type Database struct {
	repos    *badger.Repositories
	provider ai.AIProvider
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
}

// WithAIConfig sets the AI service configuration used to build the default
// provider.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithAIProvider injects a prebuilt AI provider, bypassing the OpenAI
// provider construction. Intended for tests and embedded setups.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	repos, err := badger.NewRepositories(filePath)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	return &Database{
		repos:    repos,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.repos.Close(); err != nil {
		db.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ChunkRepository() storage.ChunkRepository {
	return db.repos.Chunks
}

func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.repos.Documents
}

func (db *Database) DuplicateRepository() storage.DuplicateRepository {
	return db.repos.Duplicates
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.repos.Chunks, db.repos.Documents, db.repos.Duplicates, db.provider, opts...)
}

func (db *Database) NewDuplicateDetector(opts ...dedup.Option) (*dedup.Detector, error) {
	return dedup.NewDetector(db.repos.Documents, db.repos.Duplicates, opts...)
}
