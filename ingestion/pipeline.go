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

package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/perceptic/audiograph/ai"
	"github.com/perceptic/audiograph/audio"
	"github.com/perceptic/audiograph/chunking"
	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/storage"
)

const (
	defaultSampleRate    = 16000
	defaultWindowSec     = 30.0
	defaultOverlapSec    = 2.0
	defaultMinConfidence = 0.8
)

// Pipeline orchestrates the ingestion of audio documents.
// Stores left unset are simply skipped; a pipeline with no stores at
// all still transcribes and reports, which is useful for dry runs.
type Pipeline struct {
	provider   ai.Provider
	normalizer audio.Normalizer
	segmenter  audio.Segmenter

	meta   storage.MetadataStore
	vector storage.VectorStore
	graph  storage.GraphStore

	pool *ants.Pool

	sampleRate    int
	window        float64
	overlap       float64
	minConfidence float64
	keepArtifacts bool
	lineage       map[string]string

	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithWorkers sets the worker pool size for concurrent transcription.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWorkers(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithWindow sets the segment window length in seconds.
func WithWindow(seconds float64) Option {
	return func(p *Pipeline) error {
		if seconds <= 0 {
			return fmt.Errorf("window must be positive, got %v", seconds)
		}
		p.window = seconds
		return nil
	}
}

// WithOverlap sets the overlap between consecutive segments in seconds.
// An overlap at or above the window length falls back to no overlap
// at planning time.
func WithOverlap(seconds float64) Option {
	return func(p *Pipeline) error {
		if seconds < 0 {
			return fmt.Errorf("overlap must not be negative, got %v", seconds)
		}
		p.overlap = seconds
		return nil
	}
}

// WithSampleRate sets the canonical sample rate normalization targets.
func WithSampleRate(hz int) Option {
	return func(p *Pipeline) error {
		if hz <= 0 {
			return fmt.Errorf("sample rate must be positive, got %d", hz)
		}
		p.sampleRate = hz
		p.normalizer = audio.NewFFmpegNormalizer(hz)
		return nil
	}
}

// WithMinConfidence sets the confidence threshold applied to triples
// before graph merge and audit append.
func WithMinConfidence(min float64) Option {
	return func(p *Pipeline) error {
		if min < 0 || min > 1 {
			return fmt.Errorf("min confidence must be in [0,1], got %v", min)
		}
		p.minConfidence = min
		return nil
	}
}

// WithNormalizer replaces the default ffmpeg normalizer.
func WithNormalizer(n audio.Normalizer) Option {
	return func(p *Pipeline) error {
		if n != nil {
			p.normalizer = n
		}
		return nil
	}
}

// WithSegmenter replaces the default ffmpeg segmenter.
func WithSegmenter(s audio.Segmenter) Option {
	return func(p *Pipeline) error {
		if s != nil {
			p.segmenter = s
		}
		return nil
	}
}

// WithMetadataStore enables relational persistence.
func WithMetadataStore(s storage.MetadataStore) Option {
	return func(p *Pipeline) error {
		p.meta = s
		return nil
	}
}

// WithVectorStore enables embedding persistence.
func WithVectorStore(s storage.VectorStore) Option {
	return func(p *Pipeline) error {
		p.vector = s
		return nil
	}
}

// WithGraphStore enables knowledge graph persistence.
func WithGraphStore(s storage.GraphStore) Option {
	return func(p *Pipeline) error {
		p.graph = s
		return nil
	}
}

// WithKeepArtifacts disables cleanup of intermediate audio files.
func WithKeepArtifacts(keep bool) Option {
	return func(p *Pipeline) error {
		p.keepArtifacts = keep
		return nil
	}
}

// WithLineage attaches model provenance recorded on every document.
func WithLineage(lineage map[string]string) Option {
	return func(p *Pipeline) error {
		p.lineage = lineage
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		provider:      provider,
		normalizer:    audio.NewFFmpegNormalizer(defaultSampleRate),
		segmenter:     audio.NewFFmpegSegmenter(),
		pool:          pool,
		sampleRate:    defaultSampleRate,
		window:        defaultWindowSec,
		overlap:       defaultOverlapSec,
		minConfidence: defaultMinConfidence,
		logger:        slog.Default().With("component", "ingestion-pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Input describes one source document to ingest.
type Input struct {
	Path     string
	Title    string        // defaults to the file name without extension
	Language core.Language // defaults to core.LanguageAuto
	Modality core.Modality // defaults to core.ModalityAudio
	Author   string
	Tags     []string
}

func (in *Input) withDefaults() Input {
	out := *in
	if out.Title == "" {
		base := filepath.Base(out.Path)
		out.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if out.Language == "" {
		out.Language = core.LanguageAuto
	}
	if out.Modality == "" {
		out.Modality = core.ModalityAudio
	}
	return out
}

// Run ingests one document end to end and returns its report.
// The returned error is non-nil only for aborting failures; fail-soft
// incidents surface through Report.Warnings.
func (p *Pipeline) Run(ctx context.Context, input Input) (*Report, error) {
	in := input.withDefaults()

	report := &Report{
		DocID: core.NewDocID(),
		Title: in.Title,
		Stage: StageCreated,
	}
	logger := p.logger.With("doc_id", report.DocID, "path", in.Path)
	logger.Info("ingestion started", "title", in.Title, "language", in.Language)

	normalized, err := p.normalizer.Normalize(ctx, in.Path)
	if err != nil {
		return report, fmt.Errorf("%w: %v", ErrNormalization, err)
	}
	report.Stage = StageNormalized

	segments, err := p.segmenter.Split(ctx, normalized, p.window, p.overlap)
	if err != nil {
		p.cleanup(normalized, nil)
		return report, err
	}
	report.Stage = StageSegmented
	report.Segments = len(segments)
	logger.Debug("segmented", "segments", len(segments), "window", p.window, "overlap", p.overlap)

	results := p.transcribeAll(ctx, segments, in.Language)
	for _, r := range results {
		if r.Err != nil {
			report.SegmentErrors++
			logger.Warn("segment transcription failed", "segment", r.SegmentIndex, "err", r.Err)
		}
	}
	report.Stage = StageTranscribed

	merged := mergeTranscripts(results)
	if merged == "" {
		p.cleanup(normalized, segments)
		return report, ErrEmptyTranscript
	}
	report.Stage = StageMerged

	cleaned, err := p.provider.Cleaner().Clean(ctx, merged)
	if err != nil {
		p.cleanup(normalized, segments)
		return report, fmt.Errorf("%w: %v", ErrCleaning, err)
	}
	report.Stage = StageCleaned

	strategy, err := chunking.ForModality(in.Modality)
	if err != nil {
		p.cleanup(normalized, segments)
		return report, err
	}
	chunks, err := strategy.Chunk(cleaned, chunking.Meta{
		DocID:    report.DocID,
		FileName: filepath.Base(in.Path),
		Language: in.Language,
	})
	if err != nil {
		p.cleanup(normalized, segments)
		return report, err
	}
	report.Stage = StageChunked
	report.Chunks = len(chunks)

	meta := core.DocumentMeta{
		DocID:           report.DocID,
		Title:           in.Title,
		Language:        in.Language,
		Modality:        in.Modality,
		FileName:        filepath.Base(in.Path),
		Author:          in.Author,
		CreatedAt:       time.Now().UTC(),
		KnowledgeTags:   in.Tags,
		RoleRestriction: []core.Role{core.RolePublicRead},
		Lineage:         p.lineage,
	}
	p.persist(ctx, meta, chunks, report)
	report.Stage = StagePersisted

	p.cleanup(normalized, segments)
	report.Stage = StageCleanedUp

	logger.Info("ingestion finished",
		"chunks", report.Chunks,
		"triples_merged", report.TriplesMerged,
		"warnings", len(report.Warnings()))
	return report, nil
}

// Release releases the worker pool. The pipeline must not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
