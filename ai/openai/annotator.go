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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/berkdoc/docpipe/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Annotator implements ai.Annotator using OpenAI-compatible chat APIs.
type Annotator struct {
	client      llms.Model
	maxTags     int
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// tagsResponse is the wrapper structure for the model's tags JSON.
type tagsResponse struct {
	Tags []string `json:"tags"`
}

// summaryResponse is the wrapper structure for the model's summary JSON.
type summaryResponse struct {
	Summary string `json:"summary"`
}

// newAnnotator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnnotator(config *ai.Config) (*Annotator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.CompletionHost),
		openai.WithToken("none"),
		openai.WithModel(config.CompletionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Annotator{
		client:      client,
		maxTags:     config.MaxTags,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-annotator"),
	}, nil
}

// NewAnnotator creates a new annotator using the provided configuration.
//
// Returns ai.Annotator interface to enforce abstraction.
func NewAnnotator(config *ai.Config) (ai.Annotator, error) {
	return newAnnotator(config)
}

// GenerateTags asks the model for short lowercase tags describing the text.
// A response that cannot be decoded after repair attempts degrades to an
// empty tag list rather than an error; transport failures are returned.
func (a *Annotator) GenerateTags(ctx context.Context, text string) ([]string, error) {
	raw, err := a.complete(ctx, tagsSystemPrompt, text)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return []string{}, nil
	}

	var parsed tagsResponse
	if !a.decode(raw, &parsed) {
		return []string{}, nil
	}

	tags := make([]string, 0, len(parsed.Tags))
	for _, tag := range parsed.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == a.maxTags {
			break
		}
	}

	a.logger.Debug("generated tags", "returned", len(parsed.Tags), "kept", len(tags))
	return tags, nil
}

// Summarize asks the model for a single-sentence summary of the text.
// A response that cannot be decoded after repair attempts degrades to an
// empty summary rather than an error; transport failures are returned.
func (a *Annotator) Summarize(ctx context.Context, text string) (string, error) {
	raw, err := a.complete(ctx, summarySystemPrompt, text)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}

	var parsed summaryResponse
	if !a.decode(raw, &parsed) {
		return "", nil
	}

	return strings.TrimSpace(parsed.Summary), nil
}

// complete sends one system+user exchange and returns the raw model text.
// Malformed JSON is re-asked up to 3 times; the last attempt's text is
// still handed to decode so the repair pass gets a chance.
func (a *Annotator) complete(ctx context.Context, systemPrompt, text string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	var lastText string
	for attempt := 0; attempt < 3; attempt++ {
		response, err := a.client.GenerateContent(ctx, content,
			llms.WithTemperature(a.temperature),
			llms.WithMaxTokens(a.maxTokens),
			llms.WithJSONMode())
		if err != nil {
			a.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return "", err
		}

		if len(response.Choices) < 1 {
			a.logger.Debug("no choices returned from model")
			return "", nil
		}

		lastText = response.Choices[0].Content
		if json.Valid([]byte(stripFences(lastText))) {
			break
		}
		a.logger.Warn("model returned malformed JSON, retrying",
			"attempt", attempt+1, "response", lastText)
	}

	return lastText, nil
}

// decode strips markdown fences, repairs common JSON damage, and decodes
// into out. Returns false when the response is unusable.
func (a *Annotator) decode(raw string, out any) bool {
	text := repairJSON(stripFences(raw))
	if err := json.Unmarshal([]byte(text), out); err != nil {
		a.logger.Warn("error parsing model response", "response", text, "err", err)
		return false
	}
	return true
}

// stripFences removes markdown code fences around a JSON payload.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
