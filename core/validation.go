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


package core

// Validate checks that the triple is structurally sound: all three terms
// present and the confidence within [0,1].
func (t *Triple) Validate() error {
	if t.Subject == "" || t.Predicate == "" || t.Object == "" {
		return ErrEmptyTripleTerm
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return ErrInvalidConfidence
	}
	return nil
}

// Validate checks that the chunk carries the identity required for
// persistence across all stores.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return ErrEmptyChunkID
	}
	if c.DocID == "" {
		return ErrEmptyDocID
	}
	return nil
}

// Validate checks that the document metadata carries a usable identity.
func (d *DocumentMeta) Validate() error {
	if d.DocID == "" {
		return ErrEmptyDocID
	}
	if _, err := ParseModality(string(d.Modality)); err != nil {
		return err
	}
	return nil
}
