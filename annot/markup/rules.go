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

// Package markup interprets the epigraphic notation (Leiden-style
// conventions) used by the inscription corpus. The symbol table is fixed,
// process-wide and immutable; the scanner itself keeps no state between
// calls.
package markup

// Semantics classifies what a notation symbol says about the text
// it wraps or marks.
type Semantics string

const (
	// SemExpansion - (abc): resolved abbreviation, letters supplied
	// by the editor but implied by the stone.
	SemExpansion Semantics = "expansion"
	// SemRestoration - [abc]: text lost from the support and restored
	// by the editor. The enclosed reading is a conjecture.
	SemRestoration Semantics = "restoration"
	// SemGap - [3]: lacuna of approximately n characters; the digit is
	// a placeholder count, not a literal reading.
	SemGap Semantics = "gap"
	// SemErasure - ⟦abc⟧: text deliberately erased in antiquity
	// (damnatio memoriae and similar).
	SemErasure Semantics = "erasure"
	// SemCorrection - <e=X>: editorial correction; X preserves the
	// erroneous letters actually cut on the stone.
	SemCorrection Semantics = "correction"
	// SemSuperfluous - {abc}: letters present on the stone but judged
	// superfluous by the editor.
	SemSuperfluous Semantics = "superfluous"
	// SemLineBreak - /: end of a physical line.
	SemLineBreak Semantics = "lineBreak"
	// SemColumnBreak - //: end of a text block or column.
	SemColumnBreak Semantics = "columnBreak"
	// SemEditorialFlag - *: form flagged by the editor as non-standard
	// or invented (common in defixiones).
	SemEditorialFlag Semantics = "editorialFlag"
	// SemLetterTrace - +: trace of a letter that cannot be identified.
	SemLetterTrace Semantics = "letterTrace"
	// SemKaiSymbol - ϗ: the Greek kai abbreviation symbol; always
	// reads as the conjunction καί.
	SemKaiSymbol Semantics = "kaiSymbol"
	// SemNumeral - Greek alphabetic numeral (archaic numeral letters
	// or a letter run closed by a keraia).
	SemNumeral Semantics = "numeral"
)

// Rule describes one symbol of the notation. The table is presented
// verbatim to API clients and to annotators via the prompt legend.
type Rule struct {
	Symbol    string    `json:"symbol"`
	Semantics Semantics `json:"semantics"`
	Note      string    `json:"note"`
}

var rules = []Rule{
	{"()", SemExpansion, "abbreviation expanded by the editor"},
	{"[]", SemRestoration, "text lost and restored; reading is conjectural"},
	{"[n]", SemGap, "lacuna of approximately n characters (n is a count, not text)"},
	{"⟦⟧", SemErasure, "text erased in antiquity"},
	{"<e=X>", SemCorrection, "editorial correction, X = letters actually on the stone"},
	{"{}", SemSuperfluous, "superfluous letters on the stone"},
	{"/", SemLineBreak, "line break"},
	{"//", SemColumnBreak, "text block / column break"},
	{"*", SemEditorialFlag, "non-standard or invented form"},
	{"+", SemLetterTrace, "unidentifiable letter trace"},
	{"ϗ", SemKaiSymbol, "kai symbol, reads as καί (CCONJ)"},
	{"ʹ", SemNumeral, "Greek alphabetic numeral"},
}

// Rules returns the static symbol table. Callers must not modify
// the returned slice.
func Rules() []Rule {
	return rules
}

// IsGap tells whether a span semantics marks lost text, i.e. whether
// meaning around it is unreliable.
func (s Semantics) IsGap() bool {
	return s == SemGap || s == SemRestoration
}
