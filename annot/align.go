// Copyright 2025 EPITAG contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package annot

import "unicode"

// tokenSpan locates an interpretive token inside the diplomatic text.
// Offsets are rune offsets; a token the walker could not place has
// start == -1.
type tokenSpan struct {
	start int
	end   int
}

func (ts tokenSpan) located() bool {
	return ts.start >= 0
}

// alignTokens maps each interpretive token onto a rune range of the
// diplomatic inscription. The walker moves strictly left to right:
// it matches token letters case-insensitively against the inscription,
// skipping markup and any other non-letter characters in between.
// A token whose letters cannot be found in order from the current
// position is left unlocated and the walker keeps its position, so one
// bad token does not derail the rest of the sequence.
func alignTokens(inscription string, surfaces []string) []tokenSpan {
	src := []rune(inscription)
	spans := make([]tokenSpan, len(surfaces))
	pos := 0

	for i, surface := range surfaces {
		want := matchableRunes(surface)
		if len(want) == 0 {
			spans[i] = tokenSpan{-1, -1}
			continue
		}
		start, end := matchFrom(src, pos, want)
		if start < 0 {
			spans[i] = tokenSpan{-1, -1}
			continue
		}
		spans[i] = tokenSpan{start, end}
		pos = end
	}
	return spans
}

// matchableRunes reduces a token surface to the lower-cased letters
// (and numeral signs) that can actually occur in the diplomatic text.
func matchableRunes(s string) []rune {
	var ans []rune
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || isKeraiaLike(r) {
			ans = append(ans, unicode.ToLower(r))
		}
	}
	return ans
}

func isKeraiaLike(r rune) bool {
	return r == '\u0374' || r == '\u0375' || r == '\u02b9'
}

// matchFrom finds the first position at or after `from` where all
// runes of `want` occur in order, letters between them being only
// non-letter characters (markup, digits of gap counts, spaces).
func matchFrom(src []rune, from int, want []rune) (int, int) {
	for start := from; start < len(src); start++ {
		wi := 0
		end := start
		matchStart := -1
		broken := false
		for end < len(src) && wi < len(want) {
			r := src[end]
			switch {
			case unicode.ToLower(r) == want[wi]:
				if wi == 0 {
					matchStart = end
				}
				wi++
			case unicode.IsLetter(r):
				// a non-matching letter breaks this attempt
				broken = true
			}
			if broken {
				break
			}
			end++
		}
		if wi == len(want) {
			return matchStart, end
		}
	}
	return -1, -1
}
