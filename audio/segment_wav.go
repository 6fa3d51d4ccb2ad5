package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSegmenter implements Segmenter by decoding the whole waveform and
// slicing it in memory. Simpler than the streaming path and free of the
// ffmpeg binary dependency, at the cost of holding the decoded samples.
type WAVSegmenter struct {
	logger *slog.Logger
}

// NewWAVSegmenter creates an in-memory segmenter.
func NewWAVSegmenter() *WAVSegmenter {
	return &WAVSegmenter{
		logger: slog.Default().With("component", "wav-segmenter"),
	}
}

// Split slices the WAV recording at path according to PlanSegments.
// Cut points land on sample boundaries, so segment edges agree with the
// streaming backend up to one sample of rounding.
func (s *WAVSegmenter) Split(ctx context.Context, path string, window, overlap float64) ([]Segment, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, path)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil || buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDecode, path)
	}

	rate := buf.Format.SampleRate
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	frames := len(buf.Data) / channels
	duration := float64(frames) / float64(rate)

	spans := PlanSegments(duration, window, overlap)
	segments := make([]Segment, 0, len(spans))
	for i, span := range spans {
		if err := ctx.Err(); err != nil {
			removePartial(segments, "")
			return nil, err
		}

		startFrame := int(span.Start * float64(rate))
		endFrame := int(span.End * float64(rate))
		if endFrame > frames {
			endFrame = frames
		}

		out := SegmentName(path, i)
		if err := s.writeSegment(out, buf, dec, startFrame*channels, endFrame*channels); err != nil {
			removePartial(segments, out)
			return nil, fmt.Errorf("%w: segment %d of %s: %v", ErrSegmentation, i, path, err)
		}

		segments = append(segments, Segment{Index: i, Path: out, Start: span.Start, End: span.End})
	}

	s.logger.Debug("segmented audio", "src", filepath.Base(path), "segments", len(segments), "window", window, "overlap", overlap)
	return segments, nil
}

// writeSegment writes one slice of the decoded buffer as a standalone WAV.
func (s *WAVSegmenter) writeSegment(path string, buf *goaudio.IntBuffer, dec *wav.Decoder, from, to int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, buf.Format.SampleRate, int(dec.BitDepth), buf.Format.NumChannels, int(dec.WavAudioFormat))
	slice := &goaudio.IntBuffer{
		Format:         buf.Format,
		Data:           buf.Data[from:to],
		SourceBitDepth: buf.SourceBitDepth,
	}
	if err := enc.Write(slice); err != nil {
		enc.Close()
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
