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

package markup

import (
	"strings"
	"unicode"
)

// Span is a single recognized notation occurrence. Start and End are
// rune offsets into the scanned text, End pointing one past the last
// rune of the span (brackets included).
type Span struct {
	Symbol    string    `json:"symbol"`
	Start     int       `json:"start"`
	End       int       `json:"end"`
	Semantics Semantics `json:"semantics"`

	// Value holds the enclosed text for paired symbols (the restored
	// reading, the erroneous letters of <e=X>, the digit count of [n]).
	Value string `json:"value,omitempty"`
}

// Issue reports notation the scanner could not pair, typically an
// opening bracket with no closing counterpart. Issues never abort
// the scan.
type Issue struct {
	Symbol   string `json:"symbol"`
	Position int    `json:"position"`
}

// Covers tells whether the span covers the given rune offset.
func (sp Span) Covers(pos int) bool {
	return pos >= sp.Start && pos < sp.End
}

// Overlaps tells whether the span intersects the rune range [start, end).
func (sp Span) Overlaps(start, end int) bool {
	return start < sp.End && end > sp.Start
}

var pairClosers = map[rune]rune{
	'(': ')',
	'[': ']',
	'⟦': '⟧',
	'{': '}',
	'<': '>',
}

// Scan walks text once left to right and produces all notation spans
// in source order, plus unterminated-markup issues. Longer symbols win
// over their prefixes (// over /, <e= over <); a bracketed span whose
// content is digits only becomes a gap marker rather than a restoration.
func Scan(text string) ([]Span, []Issue) {
	var spans []Span
	var issues []Issue
	rr := []rune(text)

	for i := 0; i < len(rr); {
		r := rr[i]
		switch {
		case r == '/':
			if i+1 < len(rr) && rr[i+1] == '/' {
				spans = append(spans, Span{Symbol: "//", Start: i, End: i + 2, Semantics: SemColumnBreak})
				i += 2
			} else {
				spans = append(spans, Span{Symbol: "/", Start: i, End: i + 1, Semantics: SemLineBreak})
				i++
			}
		case r == '*':
			spans = append(spans, Span{Symbol: "*", Start: i, End: i + 1, Semantics: SemEditorialFlag})
			i++
		case r == '+':
			spans = append(spans, Span{Symbol: "+", Start: i, End: i + 1, Semantics: SemLetterTrace})
			i++
		case r == KaiSymbol:
			spans = append(spans, Span{Symbol: "ϗ", Start: i, End: i + 1, Semantics: SemKaiSymbol})
			i++
		case pairClosers[r] != 0:
			end := findCloser(rr, i, pairClosers[r])
			if end < 0 {
				issues = append(issues, Issue{Symbol: string(r), Position: i})
				i++
				continue
			}
			spans = append(spans, classifyPair(rr, i, end))
			i = end + 1
		default:
			if n := numeralRun(rr, i); n > i {
				spans = append(spans, Span{
					Symbol:    "ʹ",
					Start:     i,
					End:       n,
					Semantics: SemNumeral,
					Value:     string(rr[i:n]),
				})
				i = n
				continue
			}
			i++
		}
	}
	return spans, issues
}

// GapSpans filters scan output down to the spans relevant for the
// confidence policy: restorations and numeric lacunae.
func GapSpans(spans []Span) []Span {
	var ans []Span
	for _, sp := range spans {
		if sp.Semantics.IsGap() {
			ans = append(ans, sp)
		}
	}
	return ans
}

func findCloser(rr []rune, start int, closer rune) int {
	for i := start + 1; i < len(rr); i++ {
		if rr[i] == closer {
			return i
		}
	}
	return -1
}

func classifyPair(rr []rune, start, end int) Span {
	inner := string(rr[start+1 : end])
	switch rr[start] {
	case '(':
		return Span{Symbol: "()", Start: start, End: end + 1, Semantics: SemExpansion, Value: inner}
	case '[':
		if isDigitsOnly(inner) {
			return Span{Symbol: "[n]", Start: start, End: end + 1, Semantics: SemGap, Value: inner}
		}
		return Span{Symbol: "[]", Start: start, End: end + 1, Semantics: SemRestoration, Value: inner}
	case '⟦':
		return Span{Symbol: "⟦⟧", Start: start, End: end + 1, Semantics: SemErasure, Value: inner}
	case '{':
		return Span{Symbol: "{}", Start: start, End: end + 1, Semantics: SemSuperfluous, Value: inner}
	default: // '<'
		// the <e=X> form keeps the letters actually cut on the stone
		value := inner
		if strings.HasPrefix(inner, "e=") {
			value = inner[2:]
		}
		return Span{Symbol: "<e=X>", Start: start, End: end + 1, Semantics: SemCorrection, Value: value}
	}
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// numeralRun returns the end offset of a Greek numeral starting at i,
// or i when there is none. A run is either a standalone archaic numeral
// letter or a sequence of Greek letters closed by a keraia.
func numeralRun(rr []rune, i int) int {
	if archaicNumerals[rr[i]] {
		end := i + 1
		for end < len(rr) && archaicNumerals[rr[end]] {
			end++
		}
		if end < len(rr) && isKeraia(rr[end]) {
			end++
		}
		return end
	}
	if !isGreekLetter(rr[i]) {
		return i
	}
	end := i
	for end < len(rr) && (isGreekLetter(rr[end]) || archaicNumerals[rr[end]]) {
		end++
	}
	if end < len(rr) && isKeraia(rr[end]) {
		return end + 1
	}
	return i
}
