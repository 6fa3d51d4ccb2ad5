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

import "errors"

// Domain validation errors
var (
	// ErrUnknownModality indicates an unrecognized modality tag.
	ErrUnknownModality = errors.New("unknown modality")

	// ErrEmptyDocID indicates a missing document identifier.
	ErrEmptyDocID = errors.New("document id cannot be empty")

	// ErrEmptyChunkID indicates a missing chunk identifier.
	ErrEmptyChunkID = errors.New("chunk id cannot be empty")

	// ErrEmptyTripleTerm indicates a triple with an empty subject,
	// predicate or object.
	ErrEmptyTripleTerm = errors.New("triple terms cannot be empty")

	// ErrInvalidConfidence indicates a confidence score outside [0,1].
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")
)
