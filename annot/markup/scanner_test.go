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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanExpansionAndLineBreak(t *testing.T) {
	spans, issues := Scan("D(is) M(anibus) / Iuli[us in]fans")
	assert.Empty(t, issues)

	var symbols []string
	for _, sp := range spans {
		symbols = append(symbols, sp.Symbol)
	}
	assert.Equal(t, []string{"()", "()", "/", "[]"}, symbols)

	assert.Equal(t, "is", spans[0].Value)
	assert.Equal(t, "us in", spans[3].Value)
	assert.Equal(t, SemRestoration, spans[3].Semantics)
}

func TestScanNumericGap(t *testing.T) {
	spans, issues := Scan("vixit an[3]s XX")
	assert.Empty(t, issues)
	assert.Len(t, spans, 1)
	assert.Equal(t, "[n]", spans[0].Symbol)
	assert.Equal(t, SemGap, spans[0].Semantics)
	assert.Equal(t, "3", spans[0].Value)
}

func TestScanColumnBreakBeforeLineBreak(t *testing.T) {
	spans, _ := Scan("a // b / c")
	assert.Equal(t, "//", spans[0].Symbol)
	assert.Equal(t, "/", spans[1].Symbol)
}

func TestScanCorrection(t *testing.T) {
	spans, issues := Scan("fecit <e=FICIT> sibi")
	assert.Empty(t, issues)
	assert.Len(t, spans, 1)
	assert.Equal(t, "<e=X>", spans[0].Symbol)
	assert.Equal(t, "FICIT", spans[0].Value)
}

func TestScanErasureAndSuperfluous(t *testing.T) {
	spans, issues := Scan("⟦Getae⟧ {h}ic")
	assert.Empty(t, issues)
	assert.Equal(t, SemErasure, spans[0].Semantics)
	assert.Equal(t, "Getae", spans[0].Value)
	assert.Equal(t, SemSuperfluous, spans[1].Semantics)
	assert.Equal(t, "h", spans[1].Value)
}

func TestScanUnterminatedBracketResumes(t *testing.T) {
	spans, issues := Scan("Iuli[us (et) filius")
	assert.Len(t, issues, 1)
	assert.Equal(t, "[", issues[0].Symbol)
	assert.Equal(t, 4, issues[0].Position)
	// scanning resumed: the expansion after the bad bracket is still found
	assert.Len(t, spans, 1)
	assert.Equal(t, "()", spans[0].Symbol)
}

func TestScanKaiSymbol(t *testing.T) {
	spans, _ := Scan("Ζωσίμη ϗ Ἑρμῆς")
	var found bool
	for _, sp := range spans {
		if sp.Semantics == SemKaiSymbol {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScanGreekNumeralRun(t *testing.T) {
	spans, _ := Scan("ἐτῶν ιβʹ")
	var numerals []Span
	for _, sp := range spans {
		if sp.Semantics == SemNumeral {
			numerals = append(numerals, sp)
		}
	}
	assert.Len(t, numerals, 1)
	assert.Equal(t, "ιβʹ", numerals[0].Value)
}

func TestScanRuneOffsets(t *testing.T) {
	// offsets must be rune-based even after multi-byte characters
	spans, _ := Scan("⟦ab⟧ [3]")
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, 4, spans[0].End)
	assert.Equal(t, 5, spans[1].Start)
	assert.Equal(t, 8, spans[1].End)
}

func TestGapSpans(t *testing.T) {
	spans, _ := Scan("D(is) [3] Iuli[us]")
	gaps := GapSpans(spans)
	assert.Len(t, gaps, 2)
	assert.Equal(t, SemGap, gaps[0].Semantics)
	assert.Equal(t, SemRestoration, gaps[1].Semantics)
}

func TestIsGreekNumeral(t *testing.T) {
	assert.True(t, IsGreekNumeral("ϙ"))
	assert.True(t, IsGreekNumeral("ιβʹ"))
	assert.True(t, IsGreekNumeral("ϡ"))
	assert.False(t, IsGreekNumeral("annos"))
	assert.False(t, IsGreekNumeral("καί"))
	assert.False(t, IsGreekNumeral(""))
}

func TestSpanOverlaps(t *testing.T) {
	sp := Span{Start: 4, End: 11}
	assert.True(t, sp.Overlaps(0, 5))
	assert.True(t, sp.Overlaps(10, 12))
	assert.False(t, sp.Overlaps(0, 4))
	assert.False(t, sp.Overlaps(11, 15))
}
