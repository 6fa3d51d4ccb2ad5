package audio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
)

// FFmpegSegmenter implements Segmenter by streaming slices out of the
// source with ffmpeg. The decoded waveform is never held in memory, which
// keeps long recordings cheap to segment.
type FFmpegSegmenter struct {
	logger *slog.Logger
}

// NewFFmpegSegmenter creates a streaming segmenter.
func NewFFmpegSegmenter() *FFmpegSegmenter {
	return &FFmpegSegmenter{
		logger: slog.Default().With("component", "ffmpeg-segmenter"),
	}
}

// Split slices the recording at path according to PlanSegments.
func (s *FFmpegSegmenter) Split(ctx context.Context, path string, window, overlap float64) ([]Segment, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	duration, err := probeDuration(ctx, path)
	if err != nil {
		return nil, err
	}

	spans := PlanSegments(duration, window, overlap)
	segments := make([]Segment, 0, len(spans))
	for i, span := range spans {
		out := SegmentName(path, i)

		// Stream copy: the source is already normalized PCM WAV, so a
		// seek plus copy is sample-accurate and avoids re-encoding.
		cmd := exec.CommandContext(ctx, "ffmpeg",
			"-y",
			"-ss", strconv.FormatFloat(span.Start, 'f', 3, 64),
			"-i", path,
			"-t", strconv.FormatFloat(span.Duration(), 'f', 3, 64),
			"-c", "copy",
			out,
		)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			removePartial(segments, out)
			return nil, fmt.Errorf("%w: segment %d of %s: %s", ErrSegmentation, i, path, lastLine(&stderr))
		}

		segments = append(segments, Segment{Index: i, Path: out, Start: span.Start, End: span.End})
	}

	s.logger.Debug("segmented audio", "src", filepath.Base(path), "segments", len(segments), "window", window, "overlap", overlap)
	return segments, nil
}
