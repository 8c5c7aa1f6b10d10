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


package dedup

import (
	"log/slog"
	"os"
	"strconv"
)

const (
	// DefaultSimilarityThreshold is the minimum cosine similarity for two
	// documents to be recorded as duplicates.
	DefaultSimilarityThreshold float32 = 0.85

	// DefaultMaxNeighbors is the number of nearest neighbors fetched per
	// document. Must stay at or above minMaxNeighbors so threshold recall
	// is not silently capped by the neighbor query.
	DefaultMaxNeighbors = 100

	minMaxNeighbors = 100

	// nearMissMargin defines the band below the threshold whose candidates
	// are logged for threshold tuning.
	nearMissMargin float32 = 0.1

	// EnvSimilarityThreshold overrides the similarity threshold without
	// recompiling.
	EnvSimilarityThreshold = "DOCPIPE_SIMILARITY_THRESHOLD"

	// EnvMaxNeighbors overrides the neighbor query size.
	EnvMaxNeighbors = "DOCPIPE_MAX_NEIGHBORS"
)

// Config holds duplicate detection parameters.
type Config struct {
	SimilarityThreshold float32
	MaxNeighbors        int
}

// DefaultConfig returns the default detection parameters.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: DefaultSimilarityThreshold,
		MaxNeighbors:        DefaultMaxNeighbors,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back to
// defaults for unset or unparseable values. Unparseable values are logged
// and ignored rather than failing startup.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if raw := os.Getenv(EnvSimilarityThreshold); raw != "" {
		value, err := strconv.ParseFloat(raw, 32)
		if err != nil || value <= 0 || value > 1 {
			slog.Warn("ignoring invalid similarity threshold",
				"env", EnvSimilarityThreshold, "value", raw)
		} else {
			cfg.SimilarityThreshold = float32(value)
		}
	}

	if raw := os.Getenv(EnvMaxNeighbors); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < minMaxNeighbors {
			slog.Warn("ignoring invalid neighbor count",
				"env", EnvMaxNeighbors, "value", raw, "min", minMaxNeighbors)
		} else {
			cfg.MaxNeighbors = value
		}
	}

	return cfg
}

// Validate checks that the config values are usable.
func (c Config) Validate() error {
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return ErrInvalidThreshold
	}
	return nil
}

// normalize clamps MaxNeighbors to the supported minimum.
func (c Config) normalize() Config {
	if c.MaxNeighbors < minMaxNeighbors {
		c.MaxNeighbors = minMaxNeighbors
	}
	return c
}
