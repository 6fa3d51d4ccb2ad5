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


// Package openai implements the ai capability interfaces against
// OpenAI-compatible HTTP APIs.
//
// Cleaning, extraction and embedding go through langchaingo clients;
// transcription talks to the audio/transcriptions endpoint directly since
// langchaingo has no audio surface. All services work against any
// OpenAI-compatible server (OpenAI, Ollama, vLLM, LocalAI).
package openai
