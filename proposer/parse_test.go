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

package proposer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epitag/annot"
)

const sampleReply = "```json\n" + `[
	{
		"Interpretive Notes": "expanded from D(is)",
		"Reason for classification": "dative plural of deus",
		"Confidence": "High",
		"Lemma": "deus",
		"POS": "NOUN"
	},
	{
		"Interpretive Notes": "expanded from M(anibus)",
		"Reason for classification": "dative plural of manes",
		"Confidence": "High",
		"Lemma": "manes",
		"POS": "NOUN"
	}
]` + "\n```"

func TestParseReplyStripsFences(t *testing.T) {
	tokens, err := ParseReply(sampleReply, []string{"Dis", "Manibus"})
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "Dis", tokens[0].Surface)
	assert.Equal(t, "deus", tokens[0].Lemma)
	assert.Equal(t, annot.POS("NOUN"), tokens[0].Pos)
	assert.Equal(t, annot.Confidence("High"), tokens[0].Confidence)
	assert.Equal(t, "expanded from M(anibus)", tokens[1].Notes)
}

func TestParseReplyCountMismatch(t *testing.T) {
	_, err := ParseReply(sampleReply, []string{"Dis", "Manibus", "sacrum"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 annotations for 3 words")
}

func TestParseReplyNoArray(t *testing.T) {
	_, err := ParseReply("I cannot annotate this inscription.", []string{"Dis"})
	assert.Error(t, err)
}

func TestParseReplyToleratesLeadingProse(t *testing.T) {
	reply := "Here are the annotations:\n" + `[
		{"Interpretive Notes": "n", "Reason for classification": "r",
		 "Confidence": "Low", "Lemma": "abc", "POS": "X"}
	]`
	tokens, err := ParseReply(reply, []string{"abc"})
	require.NoError(t, err)
	assert.Equal(t, annot.Confidence("Low"), tokens[0].Confidence)
}
