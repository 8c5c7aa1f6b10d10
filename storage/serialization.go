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


package storage

import (
	"github.com/berkdoc/docpipe/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalChunk serializes a Chunk to bytes.
func MarshalChunk(chunk *core.Chunk) []byte {
	buf := make([]byte, core.ChunkMUS.Size(*chunk))
	core.ChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	chunk, _, err := core.ChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalDocumentVector serializes a DocumentVector to bytes.
func MarshalDocumentVector(doc *core.DocumentVector) []byte {
	buf := make([]byte, core.DocumentVectorMUS.Size(*doc))
	core.DocumentVectorMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocumentVector deserializes a DocumentVector from bytes.
func UnmarshalDocumentVector(data []byte) (*core.DocumentVector, error) {
	doc, _, err := core.DocumentVectorMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalDocumentMetadata serializes a DocumentMetadata to bytes.
func MarshalDocumentMetadata(meta *core.DocumentMetadata) []byte {
	buf := make([]byte, core.DocumentMetadataMUS.Size(*meta))
	core.DocumentMetadataMUS.Marshal(*meta, buf)
	return buf
}

// UnmarshalDocumentMetadata deserializes a DocumentMetadata from bytes.
func UnmarshalDocumentMetadata(data []byte) (*core.DocumentMetadata, error) {
	meta, _, err := core.DocumentMetadataMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// MarshalDuplicatePair serializes a DuplicatePair to bytes.
func MarshalDuplicatePair(pair *core.DuplicatePair) []byte {
	buf := make([]byte, core.DuplicatePairMUS.Size(*pair))
	core.DuplicatePairMUS.Marshal(*pair, buf)
	return buf
}

// UnmarshalDuplicatePair deserializes a DuplicatePair from bytes.
func UnmarshalDuplicatePair(data []byte) (*core.DuplicatePair, error) {
	pair, _, err := core.DuplicatePairMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}
