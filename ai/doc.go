// Package ai defines the AI service contracts the pipeline consumes:
// text embedding and LLM-backed document annotation (tags and summaries).
// Concrete implementations live in subpackages; ai/openai talks to any
// OpenAI-compatible API and ai/mock provides deterministic test doubles.
package ai
