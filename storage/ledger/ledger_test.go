package ledger

import (
	"testing"
	"time"

	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerSeenAndRecord(t *testing.T) {
	led, err := Open(t.TempDir())
	require.NoError(t, err)
	defer led.Close()

	seen, err := led.Seen("/audio/meeting_en.mp3")
	require.NoError(t, err)
	assert.False(t, seen)

	err = led.Record(storage.LedgerEntry{
		DocID:      "doc_a1b2c3d4",
		Path:       "/audio/meeting_en.mp3",
		Title:      "meeting",
		Modality:   string(core.ModalityAudio),
		Language:   "en",
		IngestedAt: time.Now().UTC(),
		Chunks:     4,
	})
	require.NoError(t, err)

	seen, err = led.Seen("/audio/meeting_en.mp3")
	require.NoError(t, err)
	assert.True(t, seen)

	// A different path stays unseen.
	seen, err = led.Seen("/audio/other.mp3")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestLedgerListOrdering(t *testing.T) {
	led, err := Open(t.TempDir())
	require.NoError(t, err)
	defer led.Close()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	paths := []string{"/a.wav", "/b.wav", "/c.wav"}
	for i, p := range paths {
		err := led.Record(storage.LedgerEntry{
			DocID:      "doc_0000000" + string(rune('0'+i)),
			Path:       p,
			Modality:   string(core.ModalityAudio),
			IngestedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	entries, err := led.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Most recent first.
	assert.Equal(t, "/c.wav", entries[0].Path)
	assert.Equal(t, "/b.wav", entries[1].Path)
	assert.Equal(t, "/a.wav", entries[2].Path)
}

func TestLedgerRecordOverwrites(t *testing.T) {
	led, err := Open(t.TempDir())
	require.NoError(t, err)
	defer led.Close()

	entry := storage.LedgerEntry{
		DocID:      "doc_11111111",
		Path:       "/audio/lecture.wav",
		Modality:   string(core.ModalityAudio),
		IngestedAt: time.Now().UTC(),
		Chunks:     2,
	}
	require.NoError(t, led.Record(entry))

	entry.DocID = "doc_22222222"
	entry.Chunks = 5
	require.NoError(t, led.Record(entry))

	entries, err := led.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc_22222222", entries[0].DocID)
	assert.Equal(t, 5, entries[0].Chunks)
}
