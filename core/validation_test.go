package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripleValidate(t *testing.T) {
	tests := []struct {
		name    string
		triple  Triple
		wantErr error
	}{
		{"valid", Triple{Subject: "s", Predicate: "p", Object: "o", Confidence: 0.5}, nil},
		{"boundary low", Triple{Subject: "s", Predicate: "p", Object: "o", Confidence: 0}, nil},
		{"boundary high", Triple{Subject: "s", Predicate: "p", Object: "o", Confidence: 1}, nil},
		{"empty subject", Triple{Predicate: "p", Object: "o", Confidence: 0.5}, ErrEmptyTripleTerm},
		{"empty predicate", Triple{Subject: "s", Object: "o", Confidence: 0.5}, ErrEmptyTripleTerm},
		{"empty object", Triple{Subject: "s", Predicate: "p", Confidence: 0.5}, ErrEmptyTripleTerm},
		{"confidence below range", Triple{Subject: "s", Predicate: "p", Object: "o", Confidence: -0.1}, ErrInvalidConfidence},
		{"confidence above range", Triple{Subject: "s", Predicate: "p", Object: "o", Confidence: 1.01}, ErrInvalidConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.triple.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestChunkValidate(t *testing.T) {
	valid := Chunk{ID: "ch_doc_1_audio_001", DocID: "doc_1"}
	assert.NoError(t, valid.Validate())

	noID := Chunk{DocID: "doc_1"}
	assert.ErrorIs(t, noID.Validate(), ErrEmptyChunkID)

	noDoc := Chunk{ID: "ch_x"}
	assert.ErrorIs(t, noDoc.Validate(), ErrEmptyDocID)
}

func TestDocumentMetaValidate(t *testing.T) {
	valid := DocumentMeta{DocID: "doc_1", Modality: ModalityAudio}
	assert.NoError(t, valid.Validate())

	noID := DocumentMeta{Modality: ModalityAudio}
	assert.ErrorIs(t, noID.Validate(), ErrEmptyDocID)

	badModality := DocumentMeta{DocID: "doc_1", Modality: "hologram"}
	assert.ErrorIs(t, badModality.Validate(), ErrUnknownModality)
}
