// Copyright 2025 Berkdoc
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

// repairJSON attempts to fix common JSON formatting issues from LLM
// responses. It specifically handles missing opening quotes before object
// keys, e.g. `{tags":` -> `{"tags":`.
func repairJSON(s string) string {
	var fixed strings.Builder
	fixed.Grow(len(s) + 16)

	i := 0
	for i < len(s) {
		ch := s[i]
		fixed.WriteByte(ch)
		i++
		if ch != '{' && ch != ',' {
			continue
		}

		// Skip whitespace after { or ,
		for i < len(s) && (s[i] == ' ' || s[i] == '\n' || s[i] == '\t') {
			fixed.WriteByte(s[i])
			i++
		}

		// A key must start with a quote; a bare letter here means the
		// opening quote was dropped.
		if i >= len(s) || s[i] == '"' || !isLetter(s[i]) {
			continue
		}

		keyStart := i
		for i < len(s) && (isLetter(s[i]) || s[i] == '_' || s[i] == ' ') {
			i++
		}

		if i+1 < len(s) && s[i] == '"' && s[i+1] == ':' {
			// Unquoted key confirmed: insert the missing opening quote.
			fixed.WriteByte('"')
			fixed.WriteString(strings.TrimSpace(s[keyStart:i]))
		} else {
			// Not a key after all; copy what was skipped untouched.
			fixed.WriteString(s[keyStart:i])
		}
	}

	return fixed.String()
}

// isLetter returns true if the byte is an ASCII letter.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
