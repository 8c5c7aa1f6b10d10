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


package ingestion

import (
	"context"
	"sync"

	"github.com/berkdoc/docpipe/core"
	"github.com/berkdoc/docpipe/lanes"
	"github.com/berkdoc/docpipe/vector"
)

// runCreate executes the create pipeline for one document:
//
//  1. Chunk the content.
//  2. For every chunk, embed it on the embedding lane and persist it with
//     its vector on the vector-store lane. Chunks proceed independently and
//     a failed chunk only costs its own vector.
//  3. Fetch the persisted chunks back and keep those with non-empty vectors.
//  4. Aggregate the chunk vectors into a single unit-normalized document
//     vector and upsert it.
//
// A document whose chunks all failed to embed produces no document vector;
// that is a recorded warning, not an error, and the pipeline does not
// reschedule it.
func (p *Pipeline) runCreate(ctx context.Context, event *core.Event) error {
	texts := p.chunker.Chunk(event.Content)

	nonEmpty := make([]string, 0, len(texts))
	for _, text := range texts {
		if text != "" {
			nonEmpty = append(nonEmpty, text)
		}
	}
	if len(nonEmpty) == 0 {
		p.logger.Warn("document produced no embeddable chunks",
			"documentId", event.DocumentID, "ownerId", event.OwnerID)
		return nil
	}

	var wg sync.WaitGroup
	for i, text := range nonEmpty {
		chunk := &core.Chunk{
			DocumentID: event.DocumentID,
			ChunkIndex: i,
			Content:    text,
			Title:      event.Title,
			Source:     event.Source,
			OwnerID:    event.OwnerID,
		}

		future := lanes.Submit(p.limiter, lanes.Embedding, func() ([]float32, error) {
			var vec []float32
			err := p.callWithRetry(ctx, func(callCtx context.Context) error {
				var embedErr error
				vec, embedErr = p.embedder.EmbedText(callCtx, chunk.Content)
				return embedErr
			})
			return vec, err
		})

		wg.Add(1)
		go func() {
			defer wg.Done()

			vec, err := future.Wait(ctx)
			if err != nil {
				p.logger.Error("chunk embedding failed",
					"documentId", chunk.DocumentID, "chunkIndex", chunk.ChunkIndex, "err", err)
				return
			}
			chunk.Vector = vec

			err = <-p.limiter.Go(lanes.VectorStore, func() error {
				return p.chunks.AddChunks(ctx, chunk)
			})
			if err != nil {
				p.logger.Error("chunk persistence failed",
					"documentId", chunk.DocumentID, "chunkIndex", chunk.ChunkIndex, "err", err)
			}
		}()
	}
	wg.Wait()

	stored, err := p.chunks.GetChunks(ctx, event.OwnerID, event.DocumentID)
	if err != nil {
		return err
	}

	vectors := make([][]float32, 0, len(stored))
	for _, chunk := range stored {
		if len(chunk.Vector) > 0 {
			vectors = append(vectors, chunk.Vector)
		}
	}
	if len(vectors) == 0 {
		p.logger.Warn("no valid chunk vectors, skipping document vector",
			"documentId", event.DocumentID, "ownerId", event.OwnerID, "chunks", len(stored))
		return nil
	}

	aggregated, err := vector.Average(vectors)
	if err != nil {
		return err
	}

	doc := &core.DocumentVector{
		DocumentID: event.DocumentID,
		Title:      event.Title,
		Source:     event.Source,
		OwnerID:    event.OwnerID,
		Vector:     aggregated,
	}

	err = <-p.limiter.Go(lanes.VectorStore, func() error {
		return p.documents.PutDocumentVector(ctx, doc)
	})
	if err != nil {
		return err
	}

	p.logger.Debug("document vector stored",
		"documentId", event.DocumentID, "ownerId", event.OwnerID,
		"chunks", len(stored), "embedded", len(vectors))
	return nil
}
