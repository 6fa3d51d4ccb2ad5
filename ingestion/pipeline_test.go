package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/perceptic/audiograph/ai"
	"github.com/perceptic/audiograph/ai/mock"
	"github.com/perceptic/audiograph/audio"
	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNormalizer writes a real WAV instead of shelling out to ffmpeg,
// so pipeline tests run without external tools.
type fakeNormalizer struct {
	seconds    float64
	sampleRate int
	fail       bool
}

func (n *fakeNormalizer) Normalize(ctx context.Context, src string) (string, error) {
	if n.fail {
		return "", errors.New("decode failed")
	}
	out := audio.NormalizedName(src, n.sampleRate)
	if err := audio.WriteTestWAV(out, n.seconds, n.sampleRate); err != nil {
		return "", err
	}
	return out, nil
}

type testStores struct {
	meta   *memory.MetadataStore
	vector *memory.VectorStore
	graph  *memory.GraphStore
}

func newTestStores() *testStores {
	return &testStores{
		meta:   memory.NewMetadataStore(),
		vector: memory.NewVectorStore(),
		graph:  memory.NewGraphStore(),
	}
}

func (s *testStores) options() []Option {
	return []Option{
		WithMetadataStore(s.meta),
		WithVectorStore(s.vector),
		WithGraphStore(s.graph),
	}
}

func newE2EPipeline(t *testing.T, provider ai.Provider, stores *testStores, extra ...Option) *Pipeline {
	t.Helper()
	opts := []Option{
		WithWorkers(2),
		WithWindow(30),
		WithOverlap(2),
		WithNormalizer(&fakeNormalizer{seconds: 75, sampleRate: 16000}),
		WithSegmenter(audio.NewWAVSegmenter()),
	}
	opts = append(opts, stores.options()...)
	opts = append(opts, extra...)
	p, err := NewPipeline(provider, opts...)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func testSource(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "standup_en.mp3")
}

func TestNewPipelineRequiresProvider(t *testing.T) {
	_, err := NewPipeline(nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}

func TestPipelineEndToEnd(t *testing.T) {
	provider := mock.NewMockProvider()
	stores := newTestStores()
	p := newE2EPipeline(t, provider, stores)

	report, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.NoError(t, err)

	// 75s at a 30s window with 2s overlap covers in 3 segments.
	assert.Equal(t, 3, report.Segments)
	assert.Equal(t, 0, report.SegmentErrors)
	assert.Equal(t, StageCleanedUp, report.Stage)
	assert.Equal(t, 3, provider.MockTranscriber.CallCount())

	// Document row landed with defaults filled in.
	doc, ok := stores.meta.Documents[report.DocID]
	require.True(t, ok)
	assert.Equal(t, "standup_en", doc.Title)
	assert.Equal(t, core.ModalityAudio, doc.Modality)
	assert.Equal(t, core.LanguageAuto, doc.Language)
	assert.Equal(t, []core.Role{core.RolePublicRead}, doc.RoleRestriction)

	// Chunk ids are deterministic and 1-based.
	require.GreaterOrEqual(t, report.Chunks, 1)
	firstID := fmt.Sprintf("ch_%s_audio_001", report.DocID)
	chunk, ok := stores.meta.Chunks[firstID]
	require.True(t, ok, "expected chunk %s, have %v", firstID, stores.meta.Chunks)
	assert.Equal(t, report.DocID, chunk.DocID)

	// Every chunk reached the vector store and got a vdb ref.
	assert.Len(t, stores.vector.Records, report.Chunks)
	assert.Len(t, stores.meta.VectorRefs, report.Chunks)
	assert.Equal(t, memory.VectorRef{Collection: "chunk_embeddings", Dim: 1024}, stores.meta.VectorRefs[firstID])

	// Default mock extraction is 0.9 confidence, above the 0.8 cutoff,
	// so triples reach the graph and the audit.
	assert.Equal(t, report.TriplesExtracted, report.TriplesMerged)
	assert.Equal(t, report.TriplesMerged, report.AuditRows)
	assert.NotEmpty(t, stores.graph.Edges)
	assert.Empty(t, report.Warnings())
}

func TestPipelineSegmentFailureIsFailSoft(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.MockTranscriber.TranscribeFunc = func(ctx context.Context, path string, _ core.Language) (*ai.Transcription, error) {
		if strings.Contains(path, "seg001") {
			return nil, errors.New("stt timeout")
		}
		return &ai.Transcription{Text: "alpha knows beta."}, nil
	}
	stores := newTestStores()
	p := newE2EPipeline(t, provider, stores)

	report, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Segments)
	assert.Equal(t, 1, report.SegmentErrors)
	assert.NotEmpty(t, report.Warnings())

	// The surviving segments still produced a persisted document.
	assert.Contains(t, stores.meta.Documents, report.DocID)
	assert.GreaterOrEqual(t, report.Chunks, 1)
}

func TestPipelineNormalizationFailureAborts(t *testing.T) {
	provider := mock.NewMockProvider()
	stores := newTestStores()
	p := newE2EPipeline(t, provider, stores, WithNormalizer(&fakeNormalizer{fail: true}))

	report, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.ErrorIs(t, err, ErrNormalization)
	assert.Equal(t, StageCreated, report.Stage)
	assert.Empty(t, stores.meta.Documents)
}

func TestPipelineCleaningFailureAborts(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.MockCleaner.CleanFunc = func(ctx context.Context, raw string) (string, error) {
		return "", errors.New("model overloaded")
	}
	stores := newTestStores()
	p := newE2EPipeline(t, provider, stores)

	_, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.ErrorIs(t, err, ErrCleaning)

	// Nothing persisted anywhere.
	assert.Empty(t, stores.meta.Documents)
	assert.Empty(t, stores.meta.Chunks)
	assert.Empty(t, stores.vector.Records)
	assert.Empty(t, stores.graph.Edges)
}

func TestPipelineAllSegmentsFailedAborts(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.MockTranscriber.TranscribeFunc = func(ctx context.Context, path string, _ core.Language) (*ai.Transcription, error) {
		return nil, errors.New("down")
	}
	stores := newTestStores()
	p := newE2EPipeline(t, provider, stores)

	_, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.ErrorIs(t, err, ErrEmptyTranscript)
	assert.Empty(t, stores.meta.Documents)
}

func TestPipelineRelationalFailureIsolated(t *testing.T) {
	provider := mock.NewMockProvider()
	stores := newTestStores()
	stores.meta.FailWrites = true
	p := newE2EPipeline(t, provider, stores)

	report, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.NoError(t, err)

	// Relational disabled for the document, other stores unaffected.
	assert.Empty(t, stores.meta.Documents)
	assert.Empty(t, stores.meta.Audit)
	assert.Len(t, stores.vector.Records, report.Chunks)
	assert.NotEmpty(t, stores.graph.Edges)
	assert.NotEmpty(t, report.FailedWrites)
	// Only the document upsert is attempted once relational is disabled.
	require.Len(t, report.FailedWrites, 1)
	assert.Equal(t, StoreRelational, report.FailedWrites[0].Store)
}

func TestPipelineVectorFailureIsolated(t *testing.T) {
	provider := mock.NewMockProvider()
	stores := newTestStores()
	stores.vector.FailUpserts = true
	p := newE2EPipeline(t, provider, stores)

	report, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.NoError(t, err)

	// No vector refs recorded when the vector write failed, but the
	// relational chunk rows and graph edges still land.
	assert.Empty(t, stores.meta.VectorRefs)
	assert.Len(t, stores.meta.Chunks, report.Chunks)
	assert.NotEmpty(t, stores.graph.Edges)
}

func TestPipelineGraphFailureIsolated(t *testing.T) {
	provider := mock.NewMockProvider()
	stores := newTestStores()
	stores.graph.FailMerges = true
	p := newE2EPipeline(t, provider, stores)

	report, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.NoError(t, err)

	// Graph writes fail, relational rows and vector records still land.
	assert.Empty(t, stores.graph.Edges)
	assert.Equal(t, 0, report.TriplesMerged)
	assert.Len(t, stores.meta.Chunks, report.Chunks)
	assert.Len(t, stores.vector.Records, report.Chunks)
	assert.NotEmpty(t, stores.meta.Audit)

	require.NotEmpty(t, report.FailedWrites)
	for _, w := range report.FailedWrites {
		assert.Equal(t, StoreGraph, w.Store)
	}
}

func TestPipelineGraphStoreDisabled(t *testing.T) {
	provider := mock.NewMockProvider()
	stores := newTestStores()

	p, err := NewPipeline(provider,
		WithWorkers(2),
		WithNormalizer(&fakeNormalizer{seconds: 75, sampleRate: 16000}),
		WithSegmenter(audio.NewWAVSegmenter()),
		WithMetadataStore(stores.meta),
		WithVectorStore(stores.vector),
	)
	require.NoError(t, err)
	t.Cleanup(p.Release)

	report, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.NoError(t, err)

	assert.Empty(t, report.FailedWrites)
	assert.Len(t, stores.meta.Chunks, report.Chunks)
	assert.Len(t, stores.vector.Records, report.Chunks)
	assert.NotEmpty(t, stores.meta.Audit)
	assert.Equal(t, 0, report.TriplesMerged)
}

func TestPipelineRelationalStoreDisabled(t *testing.T) {
	provider := mock.NewMockProvider()
	stores := newTestStores()

	p, err := NewPipeline(provider,
		WithWorkers(2),
		WithNormalizer(&fakeNormalizer{seconds: 75, sampleRate: 16000}),
		WithSegmenter(audio.NewWAVSegmenter()),
		WithVectorStore(stores.vector),
		WithGraphStore(stores.graph),
	)
	require.NoError(t, err)
	t.Cleanup(p.Release)

	report, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.NoError(t, err)

	assert.Empty(t, report.FailedWrites)
	assert.Len(t, stores.vector.Records, report.Chunks)
	assert.NotEmpty(t, stores.graph.Edges)
	assert.Empty(t, stores.meta.Documents)
	assert.Equal(t, 0, report.AuditRows)
}

func TestPipelineConfidenceThreshold(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.MockExtractor.ExtractFunc = func(ctx context.Context, chunkText string) (*core.ExtractionResult, error) {
		return &core.ExtractionResult{Triples: []core.Triple{
			{Subject: "A", Predicate: "knows", Object: "B", Confidence: 0.95},
			{Subject: "C", Predicate: "maybe", Object: "D", Confidence: 0.5},
		}}, nil
	}
	stores := newTestStores()
	p := newE2EPipeline(t, provider, stores)

	report, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.NoError(t, err)

	// Below-threshold triples are dropped at graph merge AND audit.
	assert.Equal(t, 2*report.Chunks, report.TriplesExtracted)
	assert.Equal(t, report.Chunks*1, report.AuditRows)
	_, haveHigh := stores.graph.Edges[memory.EdgeKey{Subject: "A", Predicate: "knows", Object: "B"}]
	_, haveLow := stores.graph.Edges[memory.EdgeKey{Subject: "C", Predicate: "maybe", Object: "D"}]
	assert.True(t, haveHigh)
	assert.False(t, haveLow)
	for _, row := range stores.meta.Audit {
		assert.GreaterOrEqual(t, row.Triple.Confidence, 0.8)
	}
}

func TestPipelineReingestUnionsProvenance(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.MockExtractor.ExtractFunc = func(ctx context.Context, chunkText string) (*core.ExtractionResult, error) {
		return &core.ExtractionResult{Triples: []core.Triple{
			{Subject: "Marie Curie", Predicate: "won", Object: "Nobel Prize", Confidence: 0.9},
		}}, nil
	}
	stores := newTestStores()
	p := newE2EPipeline(t, provider, stores)

	first, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.NoError(t, err)
	second, err := p.Run(context.Background(), Input{Path: testSource(t)})
	require.NoError(t, err)
	require.NotEqual(t, first.DocID, second.DocID)

	// One edge, provenance from both documents, audit rows from both.
	require.Len(t, stores.graph.Edges, 1)
	edge := stores.graph.Edges[memory.EdgeKey{Subject: "Marie Curie", Predicate: "won", Object: "Nobel Prize"}]
	require.NotNil(t, edge)
	assert.Contains(t, edge.DocIDs, first.DocID)
	assert.Contains(t, edge.DocIDs, second.DocID)
	assert.Equal(t, first.AuditRows+second.AuditRows, len(stores.meta.Audit))
}

func TestPipelineCleansUpIntermediates(t *testing.T) {
	provider := mock.NewMockProvider()
	stores := newTestStores()
	p := newE2EPipeline(t, provider, stores)

	src := testSource(t)
	dir := filepath.Dir(src)

	_, err := p.Run(context.Background(), Input{Path: src})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, audio.IsIntermediate(e.Name()), "intermediate %s survived cleanup", e.Name())
	}
}
