// Copyright 2025 Perceptic
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
	"fmt"
	"log/slog"

	"github.com/perceptic/audiograph/ai"
	"github.com/perceptic/audiograph/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Extractor implements ai.Extractor using OpenAI-compatible chat APIs
// in JSON mode.
type Extractor struct {
	client llms.Model
	logger *slog.Logger
}

// wireEntity and wireTriple match the JSON structure requested from the LLM.
type wireEntity struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

type wireTriple struct {
	S          string  `json:"s"`
	P          string  `json:"p"`
	O          string  `json:"o"`
	Confidence float64 `json:"confidence"`
}

type wireExtraction struct {
	Entities []wireEntity `json:"entities"`
	Triples  []wireTriple `json:"triples"`
}

// newExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newExtractor(config *ai.Config) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.ExtractModel),
	)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewExtractor creates a new knowledge extractor using the provided configuration.
//
// Returns ai.Extractor interface to enforce abstraction.
func NewExtractor(config *ai.Config) (ai.Extractor, error) {
	return newExtractor(config)
}

// Extract pulls entities and relation triples out of one chunk of text.
// Triples that fail validation (empty terms, confidence outside [0,1])
// are dropped rather than surfaced as errors.
func (e *Extractor) Extract(ctx context.Context, chunkText string) (*core.ExtractionResult, error) {
	systemPrompt := fmt.Sprintf(extractionPromptTemplate, extractionResponseSchema)
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(chunkText)},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var wire wireExtraction
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return &core.ExtractionResult{}, nil
		}

		responseText := repairJSON(stripFences(response.Choices[0].Content))

		if err := json.Unmarshal([]byte(responseText), &wire); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extraction response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extraction response after retries", "err", lastErr)
		return nil, lastErr
	}

	result := &core.ExtractionResult{
		Entities: make([]core.Entity, 0, len(wire.Entities)),
		Triples:  make([]core.Triple, 0, len(wire.Triples)),
	}
	for _, ent := range wire.Entities {
		if ent.Name == "" {
			continue
		}
		result.Entities = append(result.Entities, core.Entity{Name: ent.Name, Aliases: ent.Aliases})
	}

	dropped := 0
	for _, wt := range wire.Triples {
		triple := core.Triple{
			Subject:    wt.S,
			Predicate:  wt.P,
			Object:     wt.O,
			Confidence: wt.Confidence,
		}
		if err := triple.Validate(); err != nil {
			dropped++
			continue
		}
		result.Triples = append(result.Triples, triple)
	}

	e.logger.Debug("extracted knowledge",
		"entities", len(result.Entities),
		"triples", len(result.Triples),
		"dropped", dropped)

	return result, nil
}
