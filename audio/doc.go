// Package audio prepares source recordings for transcription.
//
// A Normalizer resamples arbitrary input audio to a canonical sample rate
// and mono channel layout. A Segmenter slices the normalized audio into
// fixed-length overlapping windows sized for the transcription model.
//
// Two interchangeable segmenter backends exist: FFmpegSegmenter streams
// through ffmpeg and never holds the decoded waveform in memory, while
// WAVSegmenter decodes and slices in memory. Both derive their cut points
// from PlanSegments, so they agree on segment count and boundaries up to
// sample rounding.
package audio
