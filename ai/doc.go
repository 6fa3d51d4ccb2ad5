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


// Package ai defines the model capability contracts consumed by the
// ingestion pipeline: speech-to-text transcription, transcript cleaning,
// structured knowledge extraction and text embedding.
//
// The concrete model backends live in subpackages (openai for
// OpenAI-compatible APIs, mock for tests). The pipeline only ever sees
// these interfaces, so backends can be swapped without touching the
// orchestration code. A Provider is constructed once at process start and
// passed by reference wherever a capability is needed; there is no hidden
// module-level model state.
package ai
