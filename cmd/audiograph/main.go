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

package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/perceptic/audiograph"
	"github.com/perceptic/audiograph/ai"
	"github.com/perceptic/audiograph/ai/openai"
	"github.com/perceptic/audiograph/audio"
	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/ingestion"
	"github.com/perceptic/audiograph/reembed"
	"github.com/perceptic/audiograph/storage"
	"github.com/perceptic/audiograph/storage/postgres"
	"github.com/perceptic/audiograph/storage/vectorpg"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "audiograph",
		Usage: "Turn audio recordings into relational, vector, and graph knowledge",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest audio files or directories into the knowledge stores",
				ArgsUsage: "[paths...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"i"},
						Usage:   "Directory to scan for audio files (in addition to path arguments)",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the ingest ledger directory",
					},
					&cli.StringFlag{
						Name:  "pg-dsn",
						Usage: "PostgreSQL DSN for the relational and vector stores (empty disables both)",
					},
					&cli.StringFlag{
						Name:  "neo4j-url",
						Usage: "Neo4j bolt URL for the knowledge graph store (empty disables it)",
					},
					&cli.StringFlag{
						Name:  "neo4j-user",
						Usage: "Neo4j username",
						Value: "neo4j",
					},
					&cli.StringFlag{
						Name:  "neo4j-pass",
						Usage: "Neo4j password",
					},
					&cli.StringFlag{
						Name:  "llm-host",
						Usage: "OpenAI-compatible chat/embedding host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "stt-host",
						Usage: "Speech-to-text host URL (defaults to llm-host if not specified)",
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "API token for the model hosts",
					},
					&cli.StringFlag{
						Name:  "stt-model",
						Usage: "Speech-to-text model name",
						Value: "whisper-1",
					},
					&cli.StringFlag{
						Name:  "clean-model",
						Usage: "Transcript cleaning model name",
						Value: "gpt-4o-mini",
					},
					&cli.StringFlag{
						Name:  "extract-model",
						Usage: "Knowledge extraction model name",
						Value: "gpt-4o-mini",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "sample-rate",
						Usage: "Canonical sample rate in Hz for normalization",
						Value: 16000,
					},
					&cli.Float64Flag{
						Name:  "window",
						Usage: "Segment window length in seconds",
						Value: 30,
					},
					&cli.Float64Flag{
						Name:  "overlap",
						Usage: "Overlap between consecutive segments in seconds",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Transcription worker pool size (0 = half the CPUs)",
					},
					&cli.Float64Flag{
						Name:  "min-confidence",
						Usage: "Confidence threshold for persisting triples",
						Value: 0.8,
					},
					&cli.BoolFlag{
						Name:  "skip-ingested",
						Usage: "Skip files already recorded in the ledger",
					},
					&cli.StringFlag{
						Name:  "segmenter",
						Usage: "Segmentation backend (ffmpeg or wav)",
						Value: "ffmpeg",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-document processing timeout (0 = no timeout)",
					},
					&cli.BoolFlag{
						Name:  "keep-artifacts",
						Usage: "Keep intermediate normalized and segment files",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Knowledge tag attached to every ingested document (repeatable)",
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all stored chunks with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "pg-dsn",
						Usage:    "PostgreSQL DSN holding the chunks and embeddings",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "llm-host",
						Usage: "OpenAI-compatible embedding host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "API token for the embedding host",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "ls",
				Usage:  "List documents recorded in the ingest ledger",
				Action: lsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the ingest ledger directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// audioExtensions are the source formats accepted during discovery.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".m4a":  true,
	".ogg":  true,
}

// isSourceAudio reports whether name looks like an ingestable recording.
// Intermediate files from earlier runs are excluded so a re-scan of a
// dirty directory never ingests its own byproducts.
func isSourceAudio(name string) bool {
	if audio.IsIntermediate(name) {
		return false
	}
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// discoverSources expands the path arguments and the scan directory into
// the sorted list of files to ingest. Directories are walked recursively.
func discoverSources(dir string, args []string) ([]string, error) {
	var sources []string

	addDir := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isSourceAudio(d.Name()) {
				sources = append(sources, path)
			}
			return nil
		})
	}

	if dir != "" {
		if err := addDir(dir); err != nil {
			return nil, err
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			if err := addDir(arg); err != nil {
				return nil, err
			}
			continue
		}
		sources = append(sources, arg)
	}

	return sources, nil
}

// inferLanguage reads a trailing language marker from the file name, the
// convention being "name_en.mp3" or "name_id.mp3". Unmarked files get
// automatic detection.
func inferLanguage(path string) core.Language {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if idx := strings.LastIndex(stem, "_"); idx >= 0 {
		switch stem[idx+1:] {
		case "en":
			return core.Language("en")
		case "id":
			return core.Language("id")
		}
	}
	return core.LanguageAuto
}

// titleFromPath derives the document title: base name without extension
// and without the language marker.
func titleFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, marker := range []string{"_en", "_id"} {
		if strings.HasSuffix(stem, marker) {
			return strings.TrimSuffix(stem, marker)
		}
	}
	return stem
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	sources, err := discoverSources(c.String("dir"), c.Args().Slice())
	if err != nil {
		return fmt.Errorf("failed to discover sources: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no audio files to ingest: pass paths or --dir")
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("llm-host")),
		ai.WithSTTHost(c.String("stt-host")),
		ai.WithToken(c.String("token")),
		ai.WithSTTModel(c.String("stt-model")),
		ai.WithCleanModel(c.String("clean-model")),
		ai.WithExtractModel(c.String("extract-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	pipelineOpts := []ingestion.Option{
		ingestion.WithSampleRate(c.Int("sample-rate")),
		ingestion.WithWindow(c.Float64("window")),
		ingestion.WithOverlap(c.Float64("overlap")),
		ingestion.WithMinConfidence(c.Float64("min-confidence")),
		ingestion.WithKeepArtifacts(c.Bool("keep-artifacts")),
	}
	if workers := c.Int("workers"); workers > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithWorkers(workers))
	}
	switch c.String("segmenter") {
	case "ffmpeg":
		pipelineOpts = append(pipelineOpts, ingestion.WithSegmenter(audio.NewFFmpegSegmenter()))
	case "wav":
		pipelineOpts = append(pipelineOpts, ingestion.WithSegmenter(audio.NewWAVSegmenter()))
	default:
		return fmt.Errorf("invalid segmenter %q: must be ffmpeg or wav", c.String("segmenter"))
	}

	system, err := audiograph.NewSystem(ctx,
		audiograph.WithAIConfig(aiConfig),
		audiograph.WithPostgresDSN(c.String("pg-dsn")),
		audiograph.WithNeo4j(c.String("neo4j-url"), c.String("neo4j-user"), c.String("neo4j-pass")),
		audiograph.WithLedgerPath(c.String("db")),
		audiograph.WithPipelineOptions(pipelineOpts...),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer system.Close()

	pipeline, err := system.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	led := system.Ledger()
	skipIngested := c.Bool("skip-ingested")
	timeout := c.Duration("timeout")
	tags := c.StringSlice("tag")

	ingested, skipped, failed := 0, 0, 0
	for _, src := range sources {
		if skipIngested && led != nil {
			seen, err := led.Seen(src)
			if err != nil {
				return fmt.Errorf("ledger lookup failed for %s: %w", src, err)
			}
			if seen {
				fmt.Fprintf(os.Stderr, "skip %s (already ingested)\n", src)
				skipped++
				continue
			}
		}

		runCtx := ctx
		cancel := context.CancelFunc(func() {})
		if timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, timeout)
		}

		report, err := pipeline.Run(runCtx, ingestion.Input{
			Path:     src,
			Title:    titleFromPath(src),
			Language: inferLanguage(src),
			Modality: core.ModalityAudio,
			Tags:     tags,
		})
		cancel()
		if err != nil {
			// One bad recording must not stop its siblings.
			slog.Error("ingestion failed", "path", src, "err", err)
			failed++
			continue
		}

		warnings := report.Warnings()
		fmt.Fprintf(os.Stderr, "%s  %s  segments=%d chunks=%d triples=%d warnings=%d\n",
			report.DocID, src, report.Segments, report.Chunks, report.TriplesMerged, len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
		}
		ingested++

		if led != nil {
			err := led.Record(storage.LedgerEntry{
				DocID:      report.DocID,
				Path:       src,
				Title:      report.Title,
				Modality:   string(core.ModalityAudio),
				Language:   string(inferLanguage(src)),
				IngestedAt: time.Now().UTC(),
				Chunks:     report.Chunks,
				Warnings:   len(warnings),
			})
			if err != nil {
				slog.Error("failed to record ingestion", "path", src, "err", err)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\ningested %d, skipped %d, failed %d of %d files\n",
		ingested, skipped, failed, len(sources))
	if failed > 0 && ingested == 0 {
		return fmt.Errorf("all %d documents failed", failed)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("llm-host")),
		ai.WithToken(c.String("token")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	meta, err := postgres.NewStore(c.String("pg-dsn"))
	if err != nil {
		return fmt.Errorf("failed to open relational store: %w", err)
	}
	defer meta.Close()

	source, ok := meta.(reembed.ChunkSource)
	if !ok {
		return fmt.Errorf("relational store does not support chunk listing")
	}

	vector, err := vectorpg.NewStore(c.String("pg-dsn"), provider.Embedder())
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer vector.Close()

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder, err := reembed.NewReembedder(source, vector, config, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("llm-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n\n", c.String("embedding-model"))

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func lsCommand(c *cli.Context) error {
	system, err := audiograph.NewSystem(context.Background(),
		audiograph.WithLedgerPath(c.String("db")),
	)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer system.Close()

	entries, err := system.Ledger().List()
	if err != nil {
		return fmt.Errorf("failed to list ledger: %w", err)
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  %-8s %-4s chunks=%-3d %s\n",
			e.IngestedAt.Format(time.RFC3339), e.DocID, e.Modality, e.Language, e.Chunks, e.Path)
	}
	fmt.Fprintf(os.Stderr, "%d documents\n", len(entries))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
