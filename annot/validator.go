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

import (
	"fmt"
	"strings"
	"unicode"

	"epitag/annot/markup"
	"epitag/merror"
)

// Validate checks a proposed token sequence against the interpretive
// text and the markup of the diplomatic inscription. It is a pure
// function: no I/O, no shared state, deterministic for a given input.
// All violations are collected in a single pass (never fail-fast) so
// an annotator can fix a whole batch at once. The returned error is
// non-nil only for precondition violations; domain problems always
// land in Result.Rejections.
//
// On success Result.Tokens holds the normalized sequence: POS tags in
// canonical upper case, confidence in canonical title case, fields
// trimmed. Validating that output again yields the same sequence.
func Validate(inscription, interpretive string, proposed []Token) (Result, error) {
	expected := strings.Fields(interpretive)
	if len(expected) == 0 {
		return Result{}, merror.InputError{Msg: "record has empty interpretive text"}
	}

	var rejections []Rejection

	spans, issues := markup.Scan(inscription)
	for _, iss := range issues {
		rejections = append(rejections, Rejection{
			TokenIndex: -1,
			Code:       RejectUnterminatedMarkup,
			Message:    fmt.Sprintf("unterminated %s at offset %d", iss.Symbol, iss.Position),
		})
	}

	if idx, ok := firstDivergence(expected, proposed); !ok {
		rejections = append(rejections, Rejection{
			TokenIndex: -1,
			Code:       RejectTokenCountMismatch,
			Message: fmt.Sprintf(
				"expected %d tokens, got %d; first divergence at index %d",
				len(expected), len(proposed), idx,
			),
		})
	}

	normalized := make([]Token, len(proposed))
	for i, tok := range proposed {
		norm, rejs := checkToken(i, tok)
		normalized[i] = norm
		rejections = append(rejections, rejs...)
	}

	surfaces := make([]string, len(normalized))
	for i, tok := range normalized {
		surfaces[i] = tok.Surface
	}
	rejections = append(
		rejections,
		checkMarkupConstraints(inscription, markup.GapSpans(spans), normalized, surfaces)...,
	)

	if len(rejections) > 0 {
		return Result{Valid: false, Rejections: rejections}, nil
	}
	return Result{Valid: true, Tokens: normalized}, nil
}

// firstDivergence compares the proposed surfaces with the whitespace
// tokens of the interpretive text. It returns the first index where
// the two sequences part ways and ok=false on any mismatch.
func firstDivergence(expected []string, proposed []Token) (int, bool) {
	n := len(expected)
	if len(proposed) < n {
		n = len(proposed)
	}
	for i := 0; i < n; i++ {
		if strings.TrimSpace(proposed[i].Surface) != expected[i] {
			return i, false
		}
	}
	if len(expected) != len(proposed) {
		return n, false
	}
	return -1, true
}

// checkToken normalizes one token and collects its field-level and
// consistency violations.
func checkToken(idx int, tok Token) (Token, []Rejection) {
	var rejs []Rejection
	reject := func(code RejectCode, msg string, args ...any) {
		rejs = append(rejs, Rejection{
			TokenIndex: idx,
			Surface:    tok.Surface,
			Code:       code,
			Message:    fmt.Sprintf(msg, args...),
		})
	}

	norm := Token{
		Surface: strings.TrimSpace(tok.Surface),
		Lemma:   strings.TrimSpace(tok.Lemma),
		Reason:  strings.TrimSpace(tok.Reason),
		Notes:   strings.TrimSpace(tok.Notes),
	}

	for _, f := range []struct {
		name  string
		value string
	}{
		{"surface", norm.Surface},
		{"lemma", norm.Lemma},
		{"pos", string(tok.Pos)},
		{"confidence", string(tok.Confidence)},
		{"reason", norm.Reason},
	} {
		if strings.TrimSpace(f.value) == "" {
			reject(RejectMissingField, "empty field %q", f.name)
		}
	}

	pos, posOK := ParsePOS(string(tok.Pos))
	norm.Pos = pos
	if string(tok.Pos) != "" && !posOK {
		reject(RejectInvalidPOS, "tag %q is not a UD POS tag", string(tok.Pos))
	}

	conf, confOK := ParseConfidence(string(tok.Confidence))
	norm.Confidence = conf
	if string(tok.Confidence) != "" && !confOK {
		reject(RejectInconsistentConfidence, "unknown confidence level %q", string(tok.Confidence))
	}

	switch conf {
	case ConfidenceLow:
		// a token we cannot read reliably gets no linguistic claims
		if posOK && pos != PosX {
			reject(RejectInconsistentConfidence, "Low confidence requires pos=X, got %s", pos)
		}
		if norm.Lemma != "" && norm.Lemma != norm.Surface {
			reject(RejectInconsistentConfidence, "Low confidence requires lemma=surface")
		}
	case ConfidenceMedium:
		if norm.Reason == "" {
			reject(RejectInconsistentConfidence, "Medium confidence requires the ambiguity to be stated in reason")
		}
	}

	// token-level markup checks which need no alignment
	if markup.ContainsKai(norm.Surface) {
		if norm.Lemma != markup.KaiLemma || (posOK && pos != PosCCONJ) {
			reject(RejectMarkupMismatch, "token derived from ϗ must have lemma %q and pos CCONJ", markup.KaiLemma)
		}
	}
	if markup.IsGreekNumeral(norm.Surface) && posOK && pos != PosNUM {
		reject(RejectMarkupMismatch, "Greek numeral %q must be tagged NUM", norm.Surface)
	}

	return norm, rejs
}

// checkMarkupConstraints applies the conservative confidence policy
// around lacunae: a token whose letters fall even partially inside a
// restored span, and a token immediately adjacent to a numeric gap
// marker, must not claim High confidence. The adjacency rule is
// narrow: only the nearest located token on each side of a gap counts.
func checkMarkupConstraints(
	inscription string,
	gaps []markup.Span,
	tokens []Token,
	surfaces []string,
) []Rejection {
	if len(gaps) == 0 || len(tokens) == 0 {
		return nil
	}
	var rejections []Rejection
	spans := alignTokens(inscription, surfaces)
	src := []rune(inscription)

	reject := func(idx int, msg string, args ...any) {
		rejections = append(rejections, Rejection{
			TokenIndex: idx,
			Surface:    tokens[idx].Surface,
			Code:       RejectOverconfidentNearGap,
			Message:    fmt.Sprintf(msg, args...),
		})
	}

	for _, gap := range gaps {
		switch gap.Semantics {
		case markup.SemRestoration:
			for i, ts := range spans {
				if !ts.located() || tokens[i].Confidence != ConfidenceHigh {
					continue
				}
				if gap.Overlaps(ts.start, ts.end) {
					reject(i, "token spans restored text [%s]", gap.Value)
				}
			}
		case markup.SemGap:
			if i, ok := nearestBefore(spans, src, gap.Start); ok && tokens[i].Confidence == ConfidenceHigh {
				reject(i, "token immediately precedes a lacuna of %s characters", gap.Value)
			}
			if i, ok := nearestAfter(spans, src, gap.End); ok && tokens[i].Confidence == ConfidenceHigh {
				reject(i, "token immediately follows a lacuna of %s characters", gap.Value)
			}
		}
	}
	return rejections
}

// nearestBefore finds the token whose span ends right before the given
// offset with no letters in between, i.e. the token physically touching
// the left edge of a lacuna.
func nearestBefore(spans []tokenSpan, src []rune, offset int) (int, bool) {
	best := -1
	for i, ts := range spans {
		if ts.located() && ts.end <= offset && (best == -1 || ts.end > spans[best].end) {
			best = i
		}
	}
	if best == -1 || hasLetterBetween(src, spans[best].end, offset) {
		return 0, false
	}
	return best, true
}

// nearestAfter is the right-edge counterpart of nearestBefore.
func nearestAfter(spans []tokenSpan, src []rune, offset int) (int, bool) {
	best := -1
	for i, ts := range spans {
		if ts.located() && ts.start >= offset && (best == -1 || ts.start < spans[best].start) {
			best = i
		}
	}
	if best == -1 || hasLetterBetween(src, offset, spans[best].start) {
		return 0, false
	}
	return best, true
}

func hasLetterBetween(src []rune, from, to int) bool {
	if from < 0 {
		from = 0
	}
	if to > len(src) {
		to = len(src)
	}
	for i := from; i < to; i++ {
		if unicode.IsLetter(src[i]) {
			return true
		}
	}
	return false
}
