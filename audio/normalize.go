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


package audio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Normalizer converts an input recording into a mono waveform at a
// canonical sample rate, written to a new file.
type Normalizer interface {
	// Normalize writes the normalized rendition of src and returns its
	// path. The output directory is created if absent.
	Normalize(ctx context.Context, src string) (string, error)
}

// FFmpegNormalizer implements Normalizer by shelling out to ffmpeg.
// ffmpeg loads the source at its native rate and resamples exactly once;
// a source already at the target rate passes through undistorted.
type FFmpegNormalizer struct {
	sampleRate int
	logger     *slog.Logger
}

// NewFFmpegNormalizer creates a normalizer targeting the given sample rate.
func NewFFmpegNormalizer(sampleRate int) *FFmpegNormalizer {
	return &FFmpegNormalizer{
		sampleRate: sampleRate,
		logger:     slog.Default().With("component", "normalizer"),
	}
}

// Normalize resamples src to mono at the target rate.
// Returns ErrDecode when ffmpeg cannot parse the input.
func (n *FFmpegNormalizer) Normalize(ctx context.Context, src string) (string, error) {
	out := NormalizedName(src, n.sampleRate)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}

	// ffmpeg -y -i src -ac 1 -ar rate -f wav out
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", src,
		"-ac", "1", "-ar", strconv.Itoa(n.sampleRate),
		"-f", "wav",
		out,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrDecode, src, lastLine(&stderr))
	}

	n.logger.Debug("normalized audio", "src", filepath.Base(src), "out", filepath.Base(out), "rate", n.sampleRate)
	return out, nil
}

// probeDuration returns the duration of an audio file in seconds via ffprobe.
func probeDuration(ctx context.Context, path string) (float64, error) {
	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrDecode, path)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: unparseable duration %q", ErrDecode, path, strings.TrimSpace(string(out)))
	}
	return duration, nil
}

// lastLine extracts the final non-empty line of ffmpeg stderr, which is
// where ffmpeg puts the actual failure reason.
func lastLine(buf *bytes.Buffer) string {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
