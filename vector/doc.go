// Package vector provides the aggregation and similarity primitives shared
// by the ingestion pipeline, the storage backend, and the duplicate
// detector. All stored vectors are unit-normalized, so cosine similarity
// reduces to a dot product.
package vector
