// Package dedup detects near-duplicate documents over their aggregated
// document vectors.
//
// Detection runs per owner: every document vector is compared against the
// owner's nearest neighbors, and pairs whose cosine similarity reaches the
// configured threshold are recorded as DuplicatePair rows. Pair identity is
// canonical (document ids sorted lexicographically), so detection is
// idempotent across reruns. The threshold and neighbor query size are
// configurable through environment variables without recompiling.
//
// Recorded pairs can be folded into connected components with
// Detector.DuplicateGroups for presenting near-duplicate clusters.
package dedup
