package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   *Event
		wantErr error
	}{
		{
			name:    "nil event",
			event:   nil,
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "valid created event",
			event:   &Event{Kind: DocumentCreated, DocumentID: "doc-1", OwnerID: "owner-1", Content: "hello"},
			wantErr: nil,
		},
		{
			name:    "valid delete carries no content",
			event:   &Event{Kind: DocumentDeleted, DocumentID: "doc-1", OwnerID: "owner-1"},
			wantErr: nil,
		},
		{
			name:    "unknown kind",
			event:   &Event{Kind: 0, DocumentID: "doc-1", OwnerID: "owner-1"},
			wantErr: ErrInvalidEventKind,
		},
		{
			name:    "missing document id",
			event:   &Event{Kind: DocumentCreated, OwnerID: "owner-1"},
			wantErr: ErrEmptyDocumentID,
		},
		{
			name:    "missing owner id",
			event:   &Event{Kind: DocumentCreated, DocumentID: "doc-1"},
			wantErr: ErrEmptyOwnerID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEvent(tt.event)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name:    "valid chunk without vector",
			chunk:   &Chunk{DocumentID: "doc-1", OwnerID: "owner-1", ChunkIndex: 0, Content: "text"},
			wantErr: nil,
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name:    "negative index",
			chunk:   &Chunk{DocumentID: "doc-1", OwnerID: "owner-1", ChunkIndex: -1},
			wantErr: ErrNegativeChunkIndex,
		},
		{
			name:    "missing owner",
			chunk:   &Chunk{DocumentID: "doc-1", ChunkIndex: 0},
			wantErr: ErrEmptyOwnerID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDuplicatePair(t *testing.T) {
	tests := []struct {
		name    string
		pair    *DuplicatePair
		wantErr error
	}{
		{
			name:    "valid pair",
			pair:    &DuplicatePair{OwnerID: "o", SourceDocumentID: "a", TargetDocumentID: "b"},
			wantErr: nil,
		},
		{
			name:    "reversed order",
			pair:    &DuplicatePair{OwnerID: "o", SourceDocumentID: "b", TargetDocumentID: "a"},
			wantErr: ErrPairOrder,
		},
		{
			name:    "self pair",
			pair:    &DuplicatePair{OwnerID: "o", SourceDocumentID: "a", TargetDocumentID: "a"},
			wantErr: ErrPairOrder,
		},
		{
			name:    "missing owner",
			pair:    &DuplicatePair{SourceDocumentID: "a", TargetDocumentID: "b"},
			wantErr: ErrEmptyOwnerID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDuplicatePair(tt.pair)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
