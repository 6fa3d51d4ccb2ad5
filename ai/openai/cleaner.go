package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/perceptic/audiograph/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Cleaner implements ai.Cleaner using OpenAI-compatible chat APIs.
// The model runs at temperature zero so repeated cleans of the same
// transcript are stable.
type Cleaner struct {
	client llms.Model
	logger *slog.Logger
}

// newCleaner is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCleaner(config *ai.Config) (*Cleaner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.CleanModel),
	)
	if err != nil {
		return nil, err
	}

	return &Cleaner{
		client: client,
		logger: slog.Default().With("component", "openai-cleaner"),
	}, nil
}

// NewCleaner creates a new transcript cleaner using the provided configuration.
//
// Returns ai.Cleaner interface to enforce abstraction.
func NewCleaner(config *ai.Config) (ai.Cleaner, error) {
	return newCleaner(config)
}

// Clean normalizes a raw merged transcript. Failures propagate to the
// caller; a failed clean aborts the document's ingestion.
func (c *Cleaner) Clean(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(cleanSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(fmt.Sprintf(cleanUserTemplate, raw))},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("failed to clean transcript", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Warn("no choices returned from model, keeping raw transcript")
		return raw, nil
	}

	c.logger.Debug("cleaned transcript", "rawLength", len(raw), "cleanLength", len(response.Choices[0].Content))
	return response.Choices[0].Content, nil
}
