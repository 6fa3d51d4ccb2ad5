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


package chunking

import (
	"fmt"

	"github.com/perceptic/audiograph/core"
)

// Meta carries the document provenance attached to every produced chunk.
type Meta struct {
	DocID    string
	FileName string
	Language core.Language
}

// Strategy produces the ordered chunk sequence for one cleaned text.
type Strategy interface {
	// Chunk splits text into chunks tagged with the given provenance.
	// Empty input yields zero chunks. Chunk ids are deterministic given
	// the docID and the chunk's position.
	Chunk(text string, meta Meta) ([]core.Chunk, error)
}

// Per-modality splitting defaults. Spoken-word transcripts bias toward
// longer chunks than document or image text.
const (
	audioChunkSize    = 1200
	audioChunkOverlap = 180

	documentChunkSize    = 800
	documentChunkOverlap = 120

	imageChunkSize    = 600
	imageChunkOverlap = 80
)

// ForModality selects the chunking strategy for a modality.
// An unknown modality is a configuration error, never a silent fallback.
func ForModality(m core.Modality) (Strategy, error) {
	switch m {
	case core.ModalityAudio:
		return newRecursiveStrategy(m, "audio_recursive_char", audioChunkSize, audioChunkOverlap), nil
	case core.ModalityVideo:
		return newRecursiveStrategy(m, "video_recursive_char", audioChunkSize, audioChunkOverlap), nil
	case core.ModalityDocument:
		return newRecursiveStrategy(m, "document_recursive_char", documentChunkSize, documentChunkOverlap), nil
	case core.ModalityImage:
		return newRecursiveStrategy(m, "image_recursive_char", imageChunkSize, imageChunkOverlap), nil
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnknownModality, m)
}
