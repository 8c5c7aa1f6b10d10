package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix    = "chkrec"
	documentVectorPrefix = "docvec"
	documentMetaPrefix   = "docmet"
	duplicatePairPrefix  = "duprec"
)

// makeChunkKey generates a key for a chunk by (owner, document, index).
// The chunk index is encoded in BigEndian order so lexicographic iteration
// yields chunks in index order.
func makeChunkKey(ownerID, documentID string, chunkIndex int) []byte {
	prefix := makeChunkPrefix(ownerID, documentID)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(chunkIndex))
	return buf
}

// makeChunkPrefix generates the key prefix covering all chunks of a document.
func makeChunkPrefix(ownerID, documentID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:", chunkRecordPrefix, ownerID, documentID))
}

// makeDocumentVectorKey generates a key for a document vector.
func makeDocumentVectorKey(ownerID, documentID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", documentVectorPrefix, ownerID, documentID))
}

// makeDocumentVectorPrefix generates the key prefix covering all document
// vectors of an owner.
func makeDocumentVectorPrefix(ownerID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", documentVectorPrefix, ownerID))
}

// makeDocumentMetaKey generates a key for a document metadata record.
func makeDocumentMetaKey(ownerID, documentID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", documentMetaPrefix, ownerID, documentID))
}

// makeDuplicatePairKey generates a key for a duplicate pair. Callers must
// pass the canonical (source, target) ordering so each unordered pair maps
// to exactly one key.
func makeDuplicatePairKey(ownerID, sourceID, targetID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:%s", duplicatePairPrefix, ownerID, sourceID, targetID))
}

// makeDuplicatePairPrefix generates the key prefix covering all duplicate
// pairs of an owner.
func makeDuplicatePairPrefix(ownerID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", duplicatePairPrefix, ownerID))
}
