package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/perceptic/audiograph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestIsSourceAudio(t *testing.T) {
	tests := []struct {
		name string
		file string
		want bool
	}{
		{"mp3", "standup_en.mp3", true},
		{"wav", "interview.wav", true},
		{"flac", "lecture.FLAC", true},
		{"m4a", "memo.m4a", true},
		{"ogg", "call.ogg", true},
		{"normalized intermediate", "standup_en.mp3.16k.wav", false},
		{"segment intermediate", "standup_en.mp3.16k.wav.seg002.wav", false},
		{"text file", "notes.txt", false},
		{"no extension", "recording", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSourceAudio(tt.file))
		})
	}
}

func TestInferLanguage(t *testing.T) {
	tests := []struct {
		path string
		want core.Language
	}{
		{"/audio/standup_en.mp3", core.Language("en")},
		{"/audio/rapat_id.mp3", core.Language("id")},
		{"/audio/standup.mp3", core.LanguageAuto},
		{"/audio/briefing_fr.mp3", core.LanguageAuto},
		{"/audio/some_long_name_en.wav", core.Language("en")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, inferLanguage(tt.path))
		})
	}
}

func TestTitleFromPath(t *testing.T) {
	assert.Equal(t, "standup", titleFromPath("/audio/standup_en.mp3"))
	assert.Equal(t, "rapat", titleFromPath("/audio/rapat_id.mp3"))
	assert.Equal(t, "briefing_fr", titleFromPath("/audio/briefing_fr.mp3"))
	assert.Equal(t, "standup", titleFromPath("standup.wav"))
}

func TestDiscoverSources(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))

	for _, name := range []string{
		"a_en.mp3",
		"b.wav",
		"b.wav.16k.wav",             // intermediate, must be skipped
		"b.wav.16k.wav.seg000.wav",  // intermediate, must be skipped
		"notes.txt",                 // not audio
		filepath.Join("nested", "c_id.flac"),
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	sources, err := discoverSources(dir, nil)
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Contains(t, sources, filepath.Join(dir, "a_en.mp3"))
	assert.Contains(t, sources, filepath.Join(dir, "b.wav"))
	assert.Contains(t, sources, filepath.Join(sub, "c_id.flac"))

	// Explicit path arguments are taken as-is.
	explicit := filepath.Join(dir, "a_en.mp3")
	sources, err = discoverSources("", []string{explicit})
	require.NoError(t, err)
	assert.Equal(t, []string{explicit}, sources)

	// A missing argument is an error.
	_, err = discoverSources("", []string{filepath.Join(dir, "missing.mp3")})
	assert.Error(t, err)
}

func TestSetupLoggerRejectsInvalidLevel(t *testing.T) {
	app := &cli.App{
		Name: "audiograph",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Before: setupLogger,
		Action: func(c *cli.Context) error { return nil },
	}

	err := app.Run([]string{"audiograph", "--log-level", "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")

	assert.NoError(t, app.Run([]string{"audiograph", "--log-level", "debug"}))
}
