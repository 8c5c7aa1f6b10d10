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


package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored records.
// It is generated using content-based hashing so identical inputs produce
// identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EventKind identifies the document lifecycle transition an Event describes.
type EventKind int

const (
	// DocumentCreated signals that a new document entered the corpus.
	DocumentCreated EventKind = iota + 1
	// DocumentUpdated signals that an existing document's content changed.
	DocumentUpdated
	// DocumentDeleted signals that a document was removed from the corpus.
	DocumentDeleted
)

// Event is the hand-off between the document-mutation boundary and the
// ingestion pipeline. The pipeline owns no document records itself; an event
// carries everything it needs.
//
// For DocumentDeleted only DocumentID and OwnerID are populated.
type Event struct {
	Kind       EventKind
	DocumentID string
	Title      string
	Content    string
	Source     string
	OwnerID    string
}

// Chunk is a bounded, possibly overlapping window of a document's normalized
// text, the unit of embedding. Chunks are owned by a document and are
// superseded wholesale on re-ingestion, never patched in place.
type Chunk struct {
	DocumentID string
	ChunkIndex int // 0-based, contiguous within a document
	Content    string
	Title      string
	Source     string
	OwnerID    string
	Vector     []float32 // Embedding vector (populated during ingestion)
}

// DocumentVector is the single aggregated, unit-normalized embedding for a
// whole document, derived from its chunk vectors. It exists only if the
// document has at least one chunk with a non-empty vector.
type DocumentVector struct {
	DocumentID string
	Title      string
	Source     string
	OwnerID    string
	Vector     []float32
}

// DuplicateTypeDocument is the duplicate type recorded for document-level
// vector matches.
const DuplicateTypeDocument = "document"

// DuplicatePair records a near-duplicate relation between two documents of
// one owner. SourceDocumentID < TargetDocumentID always holds so each
// unordered pair is represented at most once per owner.
type DuplicatePair struct {
	Id               ID
	OwnerID          string
	SourceDocumentID string
	TargetDocumentID string
	Similarity       float32
	DuplicateType    string
	CreatedAt        time.Time
}

// CanonicalPair returns the two document IDs in canonical (lexicographic)
// order.
func CanonicalPair(a, b string) (source, target string) {
	if a < b {
		return a, b
	}
	return b, a
}

// PairKey returns the canonical tuple for a pair of documents under one
// owner. This is used for generating deterministic pair IDs.
func PairKey(ownerID, a, b string) string {
	source, target := CanonicalPair(a, b)
	return "(" + ownerID + "," + source + "," + target + ")"
}

// NewDuplicatePair builds a canonical DuplicatePair for two documents.
// The ID is derived from the canonical tuple, so the same pair always maps
// to the same record regardless of argument order.
func NewDuplicatePair(ownerID, a, b string, similarity float32) *DuplicatePair {
	source, target := CanonicalPair(a, b)
	return &DuplicatePair{
		Id:               IDFromContent(PairKey(ownerID, a, b)),
		OwnerID:          ownerID,
		SourceDocumentID: source,
		TargetDocumentID: target,
		Similarity:       similarity,
		DuplicateType:    DuplicateTypeDocument,
		CreatedAt:        time.Now().UTC(),
	}
}

// Neighbor is a nearest-neighbor match from a vector similarity query.
type Neighbor struct {
	DocumentID string
	Score      float32
}

// DocumentMetadata is the persisted annotation state for a document.
// Tags and Summary are produced by the language model during ingestion and
// may each be empty when generation failed or produced nothing usable.
type DocumentMetadata struct {
	DocumentID string
	OwnerID    string
	Tags       []string
	Summary    string
	UpdatedAt  time.Time
}

// MetadataUpdate carries a partial update to document metadata. The Has*
// flags distinguish "set to empty" from "leave unchanged".
type MetadataUpdate struct {
	Tags       []string
	Summary    string
	HasTags    bool
	HasSummary bool
}
