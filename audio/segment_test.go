package audio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// segmentFrames decodes a WAV file and returns its frame count and rate.
func segmentFrames(t *testing.T, path string) (frames, rate int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return len(buf.Data) / buf.Format.NumChannels, buf.Format.SampleRate
}

func TestWAVSegmenterSplit(t *testing.T) {
	const rate = 16000
	dir := t.TempDir()
	src := filepath.Join(dir, "talk.wav")
	require.NoError(t, WriteTestWAV(src, 75, rate))

	segments, err := NewWAVSegmenter().Split(context.Background(), src, 30, 2)
	require.NoError(t, err)
	require.Len(t, segments, 3)

	// Boundaries match the plan
	assert.Equal(t, Span{0, 30}, Span{segments[0].Start, segments[0].End})
	assert.Equal(t, Span{28, 58}, Span{segments[1].Start, segments[1].End})
	assert.Equal(t, Span{56, 75}, Span{segments[2].Start, segments[2].End})

	// File names encode the zero-padded index
	assert.Equal(t, src+".seg000.wav", segments[0].Path)
	assert.Equal(t, src+".seg001.wav", segments[1].Path)
	assert.Equal(t, src+".seg002.wav", segments[2].Path)

	// Written files hold the expected sample counts, last one shorter
	for i, wantSeconds := range []float64{30, 30, 19} {
		frames, gotRate := segmentFrames(t, segments[i].Path)
		assert.Equal(t, rate, gotRate)
		assert.InDelta(t, wantSeconds*float64(rate), float64(frames), 1, "segment %d", i)
	}
}

func TestWAVSegmenterShortSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "short.wav")
	require.NoError(t, WriteTestWAV(src, 5, 16000))

	segments, err := NewWAVSegmenter().Split(context.Background(), src, 30, 2)
	require.NoError(t, err)
	require.Len(t, segments, 1)

	frames, _ := segmentFrames(t, segments[0].Path)
	assert.InDelta(t, 5*16000, float64(frames), 1)
}

func TestWAVSegmenterRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "noise.wav")
	require.NoError(t, os.WriteFile(src, []byte("not audio at all"), 0o644))

	_, err := NewWAVSegmenter().Split(context.Background(), src, 30, 2)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestWAVSegmenterRemovesPartialOutputOnError(t *testing.T) {
	const rate = 16000
	dir := t.TempDir()
	src := filepath.Join(dir, "talk.wav")
	require.NoError(t, WriteTestWAV(src, 75, rate))

	// A directory squatting on the second segment's output path makes
	// the write for index 1 fail after index 0 already landed.
	require.NoError(t, os.Mkdir(SegmentName(src, 1), 0o755))

	_, err := NewWAVSegmenter().Split(context.Background(), src, 30, 2)
	require.ErrorIs(t, err, ErrSegmentation)

	// The segment written before the failure is gone.
	_, statErr := os.Stat(SegmentName(src, 0))
	assert.True(t, os.IsNotExist(statErr), "partial segment left on disk")
}

func TestWAVSegmenterInvalidWindow(t *testing.T) {
	_, err := NewWAVSegmenter().Split(context.Background(), "whatever.wav", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

// TestSegmenterBackendsAgree verifies the streaming and in-memory paths
// produce the same segment count and boundaries for the same input.
// Requires ffmpeg on PATH.
func TestSegmenterBackendsAgree(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not available")
	}

	const rate = 16000
	ctx := context.Background()

	memDir := t.TempDir()
	streamDir := t.TempDir()
	memSrc := filepath.Join(memDir, "talk.wav")
	streamSrc := filepath.Join(streamDir, "talk.wav")
	require.NoError(t, WriteTestWAV(memSrc, 75, rate))
	require.NoError(t, WriteTestWAV(streamSrc, 75, rate))

	memSegments, err := NewWAVSegmenter().Split(ctx, memSrc, 30, 2)
	require.NoError(t, err)
	streamSegments, err := NewFFmpegSegmenter().Split(ctx, streamSrc, 30, 2)
	require.NoError(t, err)

	require.Len(t, streamSegments, len(memSegments))
	for i := range memSegments {
		assert.Equal(t, memSegments[i].Index, streamSegments[i].Index)
		assert.InDelta(t, memSegments[i].Start, streamSegments[i].Start, 1e-3)
		assert.InDelta(t, memSegments[i].End, streamSegments[i].End, 1e-3)

		memFrames, _ := segmentFrames(t, memSegments[i].Path)
		streamFrames, _ := segmentFrames(t, streamSegments[i].Path)
		assert.InDelta(t, float64(memFrames), float64(streamFrames), 1, "segment %d", i)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "garbage.mp3")
	require.NoError(t, os.WriteFile(src, []byte("definitely not audio"), 0o644))

	_, err := NewFFmpegNormalizer(16000).Normalize(context.Background(), src)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestNormalizeRoundTrip(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "tone.wav")
	require.NoError(t, WriteTestWAV(src, 3, 44100))

	out, err := NewFFmpegNormalizer(16000).Normalize(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, src+".16k.wav", out)

	frames, rate := segmentFrames(t, out)
	assert.Equal(t, 16000, rate)
	assert.InDelta(t, 3*16000, float64(frames), 160) // resampler may trim edges slightly
}
