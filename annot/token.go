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

import "fmt"

// Token is one annotated word of the interpretive text. Surface must
// match the corresponding whitespace token of text_interpretive_word;
// the remaining fields are supplied by the annotator (human or LLM).
type Token struct {
	Surface    string     `json:"surface"`
	Lemma      string     `json:"lemma"`
	Pos        POS        `json:"pos"`
	Confidence Confidence `json:"confidence"`

	// Reason is the grammatical/morphological justification.
	Reason string `json:"reason"`

	// Notes is the epigraphic/contextual justification, typically
	// referencing the markup around the token.
	Notes string `json:"notes,omitempty"`
}

// RejectCode identifies why a proposed token (or the whole proposal)
// was refused.
type RejectCode string

const (
	RejectInvalidPOS             RejectCode = "InvalidPOS"
	RejectInconsistentConfidence RejectCode = "InconsistentConfidence"
	RejectMarkupMismatch         RejectCode = "MarkupMismatch"
	RejectOverconfidentNearGap   RejectCode = "OverconfidentNearGap"
	RejectTokenCountMismatch     RejectCode = "TokenCountMismatch"
	RejectMissingField           RejectCode = "MissingField"
	RejectUnterminatedMarkup     RejectCode = "UnterminatedMarkup"
)

// Rejection is one collected violation. TokenIndex is -1 for issues
// not attributable to a single token (count mismatches reported
// against the full sequence, markup scan problems).
type Rejection struct {
	TokenIndex int        `json:"tokenIndex"`
	Surface    string     `json:"surface,omitempty"`
	Code       RejectCode `json:"code"`
	Message    string     `json:"message"`
}

func (r Rejection) String() string {
	if r.TokenIndex < 0 {
		return fmt.Sprintf("%s: %s", r.Code, r.Message)
	}
	return fmt.Sprintf("%s at %d (%s): %s", r.Code, r.TokenIndex, r.Surface, r.Message)
}

// Result is the outcome of one validation pass. On success Tokens
// holds the normalized sequence; otherwise Rejections lists every
// violation found, so an annotator can fix them in one go.
type Result struct {
	Valid      bool        `json:"valid"`
	Tokens     []Token     `json:"tokens,omitempty"`
	Rejections []Rejection `json:"rejections,omitempty"`
}
