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

import "unicode"

// KaiSymbol is the Greek kai abbreviation ϗ (U+03D7). Wherever it
// appears, the corresponding interpretive token reads καί.
const KaiSymbol = 'ϗ'

// KaiLemma is the only admissible lemma for a token derived from ϗ.
const KaiLemma = "καί"

const (
	keraia      = 'ʹ' // ʹ Greek numeral sign
	lowerKeraia = '͵' // ͵ Greek lower numeral sign (thousands)
	modPrime    = 'ʹ' // frequent transcription substitute for the keraia
	apostrophe  = '\''     // ASCII fallback seen in older transcriptions
)

// archaicNumerals are letters which survive in Greek orthography only
// as numerals, so a bare occurrence is a numeral even without a keraia.
var archaicNumerals = map[rune]bool{
	'ϛ': true, // ϛ stigma = 6
	'Ϛ': true, // Ϛ
	'ϝ': true, // ϝ digamma = 6
	'Ϝ': true, // Ϝ
	'ϙ': true, // ϙ koppa = 90
	'Ϙ': true, // Ϙ
	'ϟ': true, // ϟ modern koppa
	'Ϟ': true, // Ϟ
	'ϡ': true, // ϡ sampi = 900
	'Ϡ': true, // Ϡ
}

func isKeraia(r rune) bool {
	return r == keraia || r == lowerKeraia || r == modPrime || r == apostrophe
}

func isGreekLetter(r rune) bool {
	return unicode.Is(unicode.Greek, r) && unicode.IsLetter(r)
}

// IsGreekNumeral reports whether a token surface is a Greek alphabetic
// numeral: either a run of Greek letters closed by a keraia (ιβʹ), or a
// form consisting of archaic numeral letters only (ϙ, ϡ).
func IsGreekNumeral(s string) bool {
	rr := []rune(s)
	if len(rr) == 0 {
		return false
	}
	if isKeraia(rr[len(rr)-1]) {
		if len(rr) == 1 {
			return false
		}
		for _, r := range rr[:len(rr)-1] {
			if !isGreekLetter(r) && !isKeraia(r) {
				return false
			}
		}
		return true
	}
	for _, r := range rr {
		if !archaicNumerals[r] {
			return false
		}
	}
	return true
}

// ContainsKai reports whether a token surface carries the ϗ symbol.
func ContainsKai(s string) bool {
	for _, r := range s {
		if r == KaiSymbol {
			return true
		}
	}
	return false
}
