package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/perceptic/audiograph/ai/mock"
	"github.com/perceptic/audiograph/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestCleanupRemovesOnlyIntermediates(t *testing.T) {
	p := newTestPipeline(t, mock.NewMockProvider())
	dir := t.TempDir()

	source := filepath.Join(dir, "talk.mp3")
	normalized := filepath.Join(dir, "talk.mp3.16k.wav")
	segment := filepath.Join(dir, "talk.mp3.16k.wav.seg000.wav")
	touch(t, source)
	touch(t, normalized)
	touch(t, segment)

	p.cleanup(normalized, []audio.Segment{{Index: 0, Path: segment}})

	assert.NoFileExists(t, normalized)
	assert.NoFileExists(t, segment)
	assert.FileExists(t, source, "source recording must never be removed")
}

func TestCleanupMissingFilesAreFine(t *testing.T) {
	p := newTestPipeline(t, mock.NewMockProvider())
	dir := t.TempDir()

	// Nothing exists; cleanup must not panic or error.
	p.cleanup(filepath.Join(dir, "gone.16k.wav"), []audio.Segment{
		{Index: 0, Path: filepath.Join(dir, "gone.16k.wav.seg000.wav")},
	})
}

func TestCleanupKeepArtifacts(t *testing.T) {
	p := newTestPipeline(t, mock.NewMockProvider(), WithKeepArtifacts(true))
	dir := t.TempDir()

	normalized := filepath.Join(dir, "talk.mp3.16k.wav")
	touch(t, normalized)

	p.cleanup(normalized, nil)
	assert.FileExists(t, normalized)
}

func TestCleanupRefusesUnexpectedNames(t *testing.T) {
	p := newTestPipeline(t, mock.NewMockProvider())
	dir := t.TempDir()

	// A path without the intermediate suffix pattern is left alone even
	// when passed in as the normalized file.
	odd := filepath.Join(dir, "important.wav")
	touch(t, odd)

	p.cleanup(odd, nil)
	assert.FileExists(t, odd)
}
