package chunking

import (
	"strings"
	"time"

	"github.com/perceptic/audiograph/core"
	"github.com/tmc/langchaingo/textsplitter"
)

// recursiveStrategy implements Strategy on top of a recursive character
// splitter tuned per modality.
type recursiveStrategy struct {
	modality     core.Modality
	tag          string
	chunkSize    int
	chunkOverlap int
}

func newRecursiveStrategy(modality core.Modality, tag string, size, overlap int) *recursiveStrategy {
	return &recursiveStrategy{
		modality:     modality,
		tag:          tag,
		chunkSize:    size,
		chunkOverlap: overlap,
	}
}

// Chunk splits text at paragraph, line, sentence, whitespace and finally
// character boundaries, bounded by the strategy's chunk size with a fixed
// inter-chunk overlap.
func (s *recursiveStrategy) Chunk(text string, meta Meta) ([]core.Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.chunkSize),
		textsplitter.WithChunkOverlap(s.chunkOverlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " ", ""}),
	)

	pieces, err := splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	chunks := make([]core.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, core.Chunk{
			ID:              core.ChunkID(meta.DocID, s.modality, i+1),
			DocID:           meta.DocID,
			FileName:        meta.FileName,
			Language:        meta.Language,
			Modality:        s.modality,
			RoleRestriction: []core.Role{core.RolePublicRead},
			CreatedAt:       now,
			Strategy:        s.tag,
			Text:            piece,
		})
	}
	return chunks, nil
}
