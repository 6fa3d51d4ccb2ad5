package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/perceptic/audiograph/ai"
	"github.com/perceptic/audiograph/core"
)

// Transcriber implements ai.Transcriber against the OpenAI-compatible
// audio/transcriptions endpoint. langchaingo has no audio surface, so this
// client speaks HTTP directly.
type Transcriber struct {
	endpoint string
	token    string
	model    string
	client   *http.Client
	logger   *slog.Logger
}

// transcriptionResponse is the verbose_json response shape.
type transcriptionResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// newTranscriber is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTranscriber(config *ai.Config) (*Transcriber, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Transcriber{
		endpoint: config.STTHost + "/audio/transcriptions",
		token:    config.Token,
		model:    config.STTModel,
		client:   &http.Client{Timeout: 10 * time.Minute},
		logger:   slog.Default().With("component", "openai-transcriber"),
	}, nil
}

// NewTranscriber creates a new transcriber using the provided configuration.
//
// Returns ai.Transcriber interface to enforce abstraction.
func NewTranscriber(config *ai.Config) (ai.Transcriber, error) {
	return newTranscriber(config)
}

// Transcribe transcribes one audio segment. Transient HTTP failures are
// retried with backoff; a persistent failure is returned to the caller and
// affects only this segment.
func (t *Transcriber) Transcribe(ctx context.Context, path string, language core.Language) (*ai.Transcription, error) {
	var result transcriptionResponse

	err := retryWithBackoff(ctx, func() error {
		body, contentType, err := t.buildRequestBody(path, language)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, body)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+t.token)
		req.Header.Set("Content-Type", contentType)

		resp, err := t.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			b, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("transcription http %d: %s", resp.StatusCode, string(b))
		}

		return json.NewDecoder(resp.Body).Decode(&result)
	}, 3, time.Second)
	if err != nil {
		t.logger.Warn("transcription failed", "segment", filepath.Base(path), "err", err)
		return nil, err
	}

	transcription := &ai.Transcription{Text: result.Text}
	for _, seg := range result.Segments {
		transcription.Spans = append(transcription.Spans, ai.TimedSpan{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return transcription, nil
}

// buildRequestBody assembles the multipart form for one transcription call.
func (t *Transcriber) buildRequestBody(path string, language core.Language) (*bytes.Buffer, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("model", t.model); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return nil, "", err
	}
	if language != core.LanguageAuto && language != "" {
		if err := mw.WriteField("language", string(language)); err != nil {
			return nil, "", err
		}
	}

	fw, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &body, mw.FormDataContentType(), nil
}
