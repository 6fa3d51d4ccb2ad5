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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for the model capability providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible chat and embedding
	// APIs. Example: "http://localhost:11434/v1" for a local server.
	Host string

	// STTHost is the base URL for the OpenAI-compatible audio
	// transcription API. Defaults to Host when empty.
	STTHost string

	// Token is the API token. Use "none" for local services that don't
	// require authentication.
	Token string

	// STTModel is the speech-to-text model identifier.
	// Example: "whisper-1"
	STTModel string

	// CleanModel is the model used for transcript cleaning.
	// Example: "gpt-4o-mini", "qwen2.5:3b"
	CleanModel string

	// ExtractModel is the model used for knowledge extraction.
	// Example: "gpt-4o-mini"
	ExtractModel string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat/embedding service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithSTTHost sets the transcription service host URL.
func WithSTTHost(host string) ConfigOption {
	return func(c *Config) {
		c.STTHost = host
	}
}

// WithToken sets the API token for all services.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithSTTModel sets the speech-to-text model identifier.
func WithSTTModel(model string) ConfigOption {
	return func(c *Config) {
		c.STTModel = model
	}
}

// WithCleanModel sets the transcript cleaning model identifier.
func WithCleanModel(model string) ConfigOption {
	return func(c *Config) {
		c.CleanModel = model
	}
}

// WithExtractModel sets the knowledge extraction model identifier.
func WithExtractModel(model string) ConfigOption {
	return func(c *Config) {
		c.ExtractModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services.
func DefaultConfig() *Config {
	return &Config{
		Host:           "http://localhost:11434/v1",
		Token:          "none",
		STTModel:       "whisper-1",
		CleanModel:     "gpt-4o-mini",
		ExtractModel:   "gpt-4o-mini",
		EmbeddingModel: "embeddinggemma",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("https://api.openai.com/v1"),
//	    ai.WithToken(os.Getenv("OPENAI_API_KEY")),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Hosts get the /v1 suffix required by most OpenAI-compatible APIs
// (Ollama, LocalAI, vLLM, etc), and STTHost falls back to Host.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
	if c.STTHost == "" {
		c.STTHost = c.Host
	}
	if c.STTHost != "" && !strings.HasSuffix(c.STTHost, "/v1") {
		c.STTHost = strings.TrimSuffix(c.STTHost, "/") + "/v1"
	}
	if c.Token == "" {
		c.Token = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.STTModel == "" {
		return errors.New("ai config: STTModel is required")
	}
	if c.CleanModel == "" {
		return errors.New("ai config: CleanModel is required")
	}
	if c.ExtractModel == "" {
		return errors.New("ai config: ExtractModel is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	return nil
}
