package ingestion

import (
	"context"
	"sync"

	"github.com/perceptic/audiograph/audio"
	"github.com/perceptic/audiograph/core"
)

// transcribeAll runs every segment through the transcriber on the worker
// pool and returns results indexed by segment order, regardless of
// completion order. A failed segment carries its error in the result;
// it never aborts the batch.
func (p *Pipeline) transcribeAll(ctx context.Context, segments []audio.Segment, language core.Language) []core.TranscriptionResult {
	results := make([]core.TranscriptionResult, len(segments))
	if len(segments) == 0 {
		return results
	}

	transcriber := p.provider.Transcriber()

	var wg sync.WaitGroup
	for i, seg := range segments {
		i, seg := i, seg
		results[i].SegmentIndex = seg.Index

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			tr, err := transcriber.Transcribe(ctx, seg.Path, language)
			if err != nil {
				results[i].Err = err
				return
			}
			results[i].Text = tr.Text
		})
		if submitErr != nil {
			// Pool is released or overloaded; record and move on.
			results[i].Err = submitErr
			wg.Done()
		}
	}
	wg.Wait()

	return results
}
