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

import "fmt"

// ValidateEvent validates an Event according to domain rules.
//
// Validation rules:
//   - Kind must be a known EventKind
//   - DocumentID and OwnerID must not be empty
//
// NOT validated:
//   - Content (deletes carry none; creates of empty documents are guarded
//     further down the pipeline)
//   - Title and Source (optional presentation metadata)
func ValidateEvent(event *Event) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidEvent)
	}

	if err := ValidateEventKind(event.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	if event.DocumentID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyDocumentID)
	}

	if event.OwnerID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyOwnerID)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - DocumentID and OwnerID must not be empty
//   - ChunkIndex must be >= 0
//
// NOT validated (populated during ingestion):
//   - Vector (can be empty until the embedding call completes)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.DocumentID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyDocumentID)
	}

	if chunk.OwnerID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyOwnerID)
	}

	if chunk.ChunkIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeChunkIndex)
	}

	return nil
}

// ValidateDuplicatePair validates a DuplicatePair according to domain rules.
//
// Validation rules:
//   - OwnerID and both document ids must not be empty
//   - SourceDocumentID must sort strictly before TargetDocumentID
func ValidateDuplicatePair(pair *DuplicatePair) error {
	if pair == nil {
		return fmt.Errorf("%w: pair is nil", ErrInvalidDuplicatePair)
	}

	if pair.OwnerID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDuplicatePair, ErrEmptyOwnerID)
	}

	if pair.SourceDocumentID == "" || pair.TargetDocumentID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDuplicatePair, ErrEmptyDocumentID)
	}

	if pair.SourceDocumentID >= pair.TargetDocumentID {
		return fmt.Errorf("%w: %w", ErrInvalidDuplicatePair, ErrPairOrder)
	}

	return nil
}

// ValidateEventKind validates that an EventKind has a known value.
func ValidateEventKind(kind EventKind) error {
	switch kind {
	case DocumentCreated, DocumentUpdated, DocumentDeleted:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidEventKind, kind)
	}
}
