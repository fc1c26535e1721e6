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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epitag/merror"
)

func tok(surface, lemma string, pos POS, conf Confidence) Token {
	return Token{
		Surface:    surface,
		Lemma:      lemma,
		Pos:        pos,
		Confidence: conf,
		Reason:     "morphology matches attested forms",
		Notes:      "no markup involved",
	}
}

func codesOf(rejs []Rejection) map[RejectCode]bool {
	ans := make(map[RejectCode]bool)
	for _, r := range rejs {
		ans[r.Code] = true
	}
	return ans
}

func TestValidateAcceptsCleanProposal(t *testing.T) {
	res, err := Validate(
		"hic situs est",
		"hic situs est",
		[]Token{
			tok("hic", "hic", PosADV, ConfidenceHigh),
			tok("situs", "sino", PosVERB, ConfidenceHigh),
			tok("est", "sum", PosAUX, ConfidenceHigh),
		},
	)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Len(t, res.Tokens, 3)
	assert.Empty(t, res.Rejections)
}

func TestValidateIsIdempotent(t *testing.T) {
	proposed := []Token{
		{Surface: "hic", Lemma: "hic", Pos: "adv", Confidence: "HIGH", Reason: "local adverb"},
		{Surface: "situs", Lemma: "sino", Pos: "verb", Confidence: "high", Reason: "participle"},
	}
	res, err := Validate("hic situs", "hic situs", proposed)
	require.NoError(t, err)
	require.True(t, res.Valid)
	assert.Equal(t, PosADV, res.Tokens[0].Pos)
	assert.Equal(t, ConfidenceHigh, res.Tokens[0].Confidence)

	again, err := Validate("hic situs", "hic situs", res.Tokens)
	require.NoError(t, err)
	require.True(t, again.Valid)
	assert.Equal(t, res.Tokens, again.Tokens)
}

func TestValidateEmptyInterpretiveText(t *testing.T) {
	_, err := Validate("[6]", "   ", nil)
	require.Error(t, err)
	assert.IsType(t, merror.InputError{}, err)
}

func TestValidateInvalidPOS(t *testing.T) {
	res, err := Validate("ave", "ave", []Token{tok("ave", "ave", "GREETING", ConfidenceHigh)})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, codesOf(res.Rejections)[RejectInvalidPOS])
}

func TestValidateLowConfidenceInvariant(t *testing.T) {
	// Low confidence with a real tag and a differing lemma breaks
	// the invariant twice
	res, err := Validate("abc", "abc", []Token{tok("abc", "abcus", PosNOUN, ConfidenceLow)})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	var n int
	for _, r := range res.Rejections {
		if r.Code == RejectInconsistentConfidence {
			n++
		}
	}
	assert.Equal(t, 2, n)

	// the canonical Low form passes
	res, err = Validate("abc", "abc", []Token{tok("abc", "abc", PosX, ConfidenceLow)})
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestValidateMediumNeedsReason(t *testing.T) {
	bad := tok("patri", "pater", PosNOUN, ConfidenceMedium)
	bad.Reason = "  "
	res, err := Validate("patri", "patri", []Token{bad})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	codes := codesOf(res.Rejections)
	assert.True(t, codes[RejectInconsistentConfidence])
	assert.True(t, codes[RejectMissingField])
}

func TestValidateMissingFields(t *testing.T) {
	res, err := Validate("abc", "abc", []Token{{Surface: "abc"}})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	var fields int
	for _, r := range res.Rejections {
		if r.Code == RejectMissingField {
			fields++
		}
	}
	// lemma, pos, confidence, reason
	assert.Equal(t, 4, fields)
}

func TestValidateTokenCountMismatch(t *testing.T) {
	res, err := Validate(
		"Dis Manibus sacrum",
		"Dis Manibus sacrum",
		[]Token{
			tok("Dis", "deus", PosNOUN, ConfidenceHigh),
			tok("Manibus", "manes", PosNOUN, ConfidenceHigh),
		},
	)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.True(t, codesOf(res.Rejections)[RejectTokenCountMismatch])
	for _, r := range res.Rejections {
		if r.Code == RejectTokenCountMismatch {
			assert.Contains(t, r.Message, "index 2")
		}
	}
}

func TestValidateTokenOrderMismatch(t *testing.T) {
	res, err := Validate(
		"Dis Manibus",
		"Dis Manibus",
		[]Token{
			tok("Manibus", "manes", PosNOUN, ConfidenceHigh),
			tok("Dis", "deus", PosNOUN, ConfidenceHigh),
		},
	)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	for _, r := range res.Rejections {
		if r.Code == RejectTokenCountMismatch {
			assert.Contains(t, r.Message, "index 0")
		}
	}
}

func TestValidateOverconfidentInRestoredSpan(t *testing.T) {
	// scenario: "Iulius" spans the restored gap [us in]
	res, err := Validate(
		"D(is) M(anibus) / Iuli[us in]fans",
		"Dis Manibus Iulius infans",
		[]Token{
			tok("Dis", "deus", PosNOUN, ConfidenceHigh),
			tok("Manibus", "manes", PosNOUN, ConfidenceHigh),
			tok("Iulius", "Iulius", PosPROPN, ConfidenceHigh),
			tok("infans", "infans", PosNOUN, ConfidenceHigh),
		},
	)
	require.NoError(t, err)
	assert.False(t, res.Valid)

	flagged := make(map[int]bool)
	for _, r := range res.Rejections {
		require.Equal(t, RejectOverconfidentNearGap, r.Code)
		flagged[r.TokenIndex] = true
	}
	assert.True(t, flagged[2], "Iulius must be flagged")
	assert.False(t, flagged[0])
	assert.False(t, flagged[1])
}

func TestValidateRestoredSpanAcceptsDowngraded(t *testing.T) {
	iulius := tok("Iulius", "Iulius", PosPROPN, ConfidenceMedium)
	iulius.Reason = "ending restored, nominative assumed from context"
	infans := tok("infans", "infans", PosNOUN, ConfidenceMedium)
	infans.Reason = "initial letters restored"
	res, err := Validate(
		"D(is) M(anibus) / Iuli[us in]fans",
		"Dis Manibus Iulius infans",
		[]Token{
			tok("Dis", "deus", PosNOUN, ConfidenceHigh),
			tok("Manibus", "manes", PosNOUN, ConfidenceHigh),
			iulius,
			infans,
		},
	)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestValidateAdjacencyToNumericGap(t *testing.T) {
	res, err := Validate(
		"vixit annos [3] hic situs est",
		"vixit annos hic situs est",
		[]Token{
			tok("vixit", "vivo", PosVERB, ConfidenceHigh),
			tok("annos", "annus", PosNOUN, ConfidenceHigh),
			tok("hic", "hic", PosADV, ConfidenceHigh),
			tok("situs", "sino", PosVERB, ConfidenceHigh),
			tok("est", "sum", PosAUX, ConfidenceHigh),
		},
	)
	require.NoError(t, err)
	assert.False(t, res.Valid)

	flagged := make(map[int]bool)
	for _, r := range res.Rejections {
		require.Equal(t, RejectOverconfidentNearGap, r.Code)
		flagged[r.TokenIndex] = true
	}
	assert.True(t, flagged[1], "token before the lacuna")
	assert.True(t, flagged[2], "token after the lacuna")
	assert.False(t, flagged[0])
	assert.False(t, flagged[3])
	assert.False(t, flagged[4])
}

func TestValidateKaiSymbol(t *testing.T) {
	bad := tok("ϗ", "ϗ", PosNOUN, ConfidenceHigh)
	res, err := Validate("Ζωσίμη ϗ Ἑρμῆς", "Ζωσίμη ϗ Ἑρμῆς", []Token{
		tok("Ζωσίμη", "Ζωσίμη", PosPROPN, ConfidenceHigh),
		bad,
		tok("Ἑρμῆς", "Ἑρμῆς", PosPROPN, ConfidenceHigh),
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, codesOf(res.Rejections)[RejectMarkupMismatch])

	good := tok("ϗ", "καί", PosCCONJ, ConfidenceHigh)
	res, err = Validate("Ζωσίμη ϗ Ἑρμῆς", "Ζωσίμη ϗ Ἑρμῆς", []Token{
		tok("Ζωσίμη", "Ζωσίμη", PosPROPN, ConfidenceHigh),
		good,
		tok("Ἑρμῆς", "Ἑρμῆς", PosPROPN, ConfidenceHigh),
	})
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestValidateGreekNumeral(t *testing.T) {
	bad := tok("ϙ", "ϙ", PosNOUN, ConfidenceHigh)
	res, err := Validate("ἐτῶν ϙ", "ἐτῶν ϙ", []Token{
		tok("ἐτῶν", "ἔτος", PosNOUN, ConfidenceHigh),
		bad,
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, codesOf(res.Rejections)[RejectMarkupMismatch])

	good := tok("ϙ", "ϙ", PosNUM, ConfidenceHigh)
	res, err = Validate("ἐτῶν ϙ", "ἐτῶν ϙ", []Token{
		tok("ἐτῶν", "ἔτος", PosNOUN, ConfidenceHigh),
		good,
	})
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestValidateUnterminatedMarkupReported(t *testing.T) {
	res, err := Validate("Iuli[us", "Iulius", []Token{
		tok("Iulius", "Iulius", PosPROPN, ConfidenceMedium),
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.Len(t, res.Rejections, 1)
	assert.Equal(t, RejectUnterminatedMarkup, res.Rejections[0].Code)
	assert.Equal(t, -1, res.Rejections[0].TokenIndex)
}

func TestValidateCollectsAcrossChecks(t *testing.T) {
	// one pass must surface violations of different kinds together
	bad := Token{Surface: "Iulius", Lemma: "Iulius", Pos: "NAME", Confidence: "High", Reason: "x"}
	res, err := Validate(
		"Iuli[us in]fans",
		"Iulius infans",
		[]Token{bad, tok("infans", "infans", PosNOUN, ConfidenceHigh)},
	)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	codes := codesOf(res.Rejections)
	assert.True(t, codes[RejectInvalidPOS])
	assert.True(t, codes[RejectOverconfidentNearGap])
}
