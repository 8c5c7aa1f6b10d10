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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEvent indicates an Event failed validation.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidDuplicatePair indicates a DuplicatePair failed validation.
	ErrInvalidDuplicatePair = errors.New("invalid duplicate pair")

	// ErrInvalidEventKind indicates an invalid EventKind value.
	ErrInvalidEventKind = errors.New("invalid event kind")

	// ErrEmptyDocumentID indicates the DocumentID field is empty.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrEmptyOwnerID indicates the OwnerID field is empty.
	ErrEmptyOwnerID = errors.New("owner id cannot be empty")

	// ErrNegativeChunkIndex indicates a chunk index below zero.
	ErrNegativeChunkIndex = errors.New("chunk index cannot be negative")

	// ErrPairOrder indicates a duplicate pair whose document ids are not in
	// canonical order.
	ErrPairOrder = errors.New("pair document ids must be in canonical order")
)
