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


// Package ingestion orchestrates document ingestion and processing.
//
// The pipeline consumes document lifecycle events (created, updated,
// deleted) and maintains the derived artifacts each document owns: its
// chunks with per-chunk embeddings, its aggregated document vector, and its
// generated metadata (tags, summary).
//
// # Processing model
//
// Created events run the create pipeline asynchronously. Updated events fan
// out into four independent stages: stale artifact cleanup, tag
// regeneration, summary regeneration, and a rerun of the create pipeline.
// Deleted events are handled synchronously and cascade to duplicate pair
// records.
//
// All asynchronous work is admitted through a lane limiter (see package
// lanes) so the external embedding, language-model, and vector-store
// services each see bounded concurrency.
//
// # Failure semantics
//
// Every stage logs and isolates its own failure; a failed tag generation
// does not abort summary generation or chunk embedding. External calls are
// retried with exponential backoff inside a stage, but a stage that
// exhausts its attempts fails permanently. This is a best-effort,
// eventually-consistent pipeline, not an at-least-once delivery system.
//
// # Known limitation
//
// There is no document-level lock. Two concurrent Updated events for the
// same document, or an Updated racing its own cleanup stage, can interleave
// chunk deletions and insertions; the last create pipeline to finish wins,
// and a later re-ingestion converges the stored state.
package ingestion
