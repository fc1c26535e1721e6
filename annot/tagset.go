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

// Package annot validates and normalizes per-token annotations of
// epigraphic inscriptions against the Universal Dependencies tagset
// and the corpus markup conventions. Everything here is pure and
// stateless; the tag and confidence tables are immutable package data.
package annot

import "strings"

// POS is a Universal Dependencies v2 part-of-speech tag.
type POS string

const (
	PosADJ   POS = "ADJ"
	PosADP   POS = "ADP"
	PosADV   POS = "ADV"
	PosAUX   POS = "AUX"
	PosCCONJ POS = "CCONJ"
	PosDET   POS = "DET"
	PosINTJ  POS = "INTJ"
	PosNOUN  POS = "NOUN"
	PosNUM   POS = "NUM"
	PosPART  POS = "PART"
	PosPRON  POS = "PRON"
	PosPROPN POS = "PROPN"
	PosPUNCT POS = "PUNCT"
	PosSCONJ POS = "SCONJ"
	PosSYM   POS = "SYM"
	PosVERB  POS = "VERB"
	PosX     POS = "X"
)

// TagGloss pairs a UD tag with its annotator-facing gloss. The glosses
// follow the legend shipped with the gold-standard sheets.
type TagGloss struct {
	Tag   POS    `json:"tag"`
	Gloss string `json:"gloss"`
}

var udTags = []TagGloss{
	{PosADJ, "adjective (magnus, bonus)"},
	{PosADP, "adposition (in, ad, cum)"},
	{PosADV, "adverb (bene, semper, non)"},
	{PosAUX, "auxiliary verb (sum as copula/auxiliary)"},
	{PosCCONJ, "coordinating conjunction (et, -que, aut)"},
	{PosDET, "determiner (hic, ille, ipse)"},
	{PosINTJ, "interjection (o, eheu)"},
	{PosNOUN, "noun (homo, res, urbs)"},
	{PosNUM, "numeral (unus, tres, XX)"},
	{PosPART, "particle (ne, -ne interrogative)"},
	{PosPRON, "pronoun (ego, qui, is)"},
	{PosPROPN, "proper noun (Roma, Iulius, Marcus)"},
	{PosPUNCT, "punctuation (. , :)"},
	{PosSCONJ, "subordinating conjunction (ut, cum, si)"},
	{PosSYM, "symbol (special symbols)"},
	{PosVERB, "verb (amo, facio, dico)"},
	{PosX, "other (foreign, abbreviations, uncertain)"},
}

var udTagSet = func() map[POS]bool {
	ans := make(map[POS]bool, len(udTags))
	for _, t := range udTags {
		ans[t.Tag] = true
	}
	return ans
}()

// Tagset returns the closed UD tag set with glosses. Callers must not
// modify the returned slice.
func Tagset() []TagGloss {
	return udTags
}

// ParsePOS coerces a raw tag to its canonical upper-case spelling.
// The second value is false for tags outside the closed set.
func ParsePOS(raw string) (POS, bool) {
	tag := POS(strings.ToUpper(strings.TrimSpace(raw)))
	return tag, udTagSet[tag]
}

// Confidence is the annotator's certainty level for a single token.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ParseConfidence coerces a raw value to canonical title-case spelling.
func ParseConfidence(raw string) (Confidence, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return ConfidenceHigh, true
	case "medium":
		return ConfidenceMedium, true
	case "low":
		return ConfidenceLow, true
	}
	return Confidence(strings.TrimSpace(raw)), false
}
