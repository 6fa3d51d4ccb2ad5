package ingestion

import (
	"os"
	"path/filepath"

	"github.com/perceptic/audiograph/audio"
)

// cleanup removes the normalized waveform and segment files produced
// for one document. Best effort: a failed removal is logged, never
// surfaced, and the original source file is never touched. Only files
// matching the intermediate naming patterns are eligible.
func (p *Pipeline) cleanup(normalized string, segments []audio.Segment) {
	if p.keepArtifacts {
		return
	}

	paths := make([]string, 0, len(segments)+1)
	for _, seg := range segments {
		paths = append(paths, seg.Path)
	}
	paths = append(paths, normalized)

	for _, path := range paths {
		if path == "" || !audio.IsIntermediate(filepath.Base(path)) {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			p.logger.Warn("failed to remove intermediate file", "path", path, "err", err)
		}
	}
}
