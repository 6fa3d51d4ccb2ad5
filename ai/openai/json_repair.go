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


package openai

import "strings"

// repairJSON attempts to fix common JSON formatting issues in LLM output.
// It handles keys missing their opening quote, e.g. `, confidence":` becomes
// `, "confidence":`.
func repairJSON(s string) string {
	src := []rune(s)
	fixed := make([]rune, 0, len(src)+16)

	i := 0
	for i < len(src) {
		ch := src[i]
		if ch != '{' && ch != ',' {
			fixed = append(fixed, ch)
			i++
			continue
		}

		fixed = append(fixed, ch)
		i++

		// Skip whitespace after the opener
		for i < len(src) && (src[i] == ' ' || src[i] == '\n' || src[i] == '\t') {
			fixed = append(fixed, src[i])
			i++
		}

		// A bare word here may be a key missing its opening quote
		if i < len(src) && src[i] != '"' && isLetter(src[i]) {
			keyStart := i
			for i < len(src) && (isLetter(src[i]) || src[i] == '_') {
				i++
			}
			if i+1 < len(src) && src[i] == '"' && src[i+1] == ':' {
				fixed = append(fixed, '"')
				fixed = append(fixed, src[keyStart:i]...)
				continue
			}
			// Not a broken key; copy what was consumed
			fixed = append(fixed, src[keyStart:i]...)
		}
	}

	return string(fixed)
}

// stripFences removes markdown code fences that models sometimes wrap
// around JSON output despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
