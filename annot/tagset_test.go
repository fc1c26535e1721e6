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
)

func TestTagsetIsClosed(t *testing.T) {
	assert.Len(t, Tagset(), 17)
}

func TestParsePOS(t *testing.T) {
	tag, ok := ParsePOS(" propn ")
	assert.True(t, ok)
	assert.Equal(t, PosPROPN, tag)

	_, ok = ParsePOS("NAME")
	assert.False(t, ok)

	_, ok = ParsePOS("")
	assert.False(t, ok)
}

func TestParseConfidence(t *testing.T) {
	c, ok := ParseConfidence("HIGH")
	assert.True(t, ok)
	assert.Equal(t, ConfidenceHigh, c)

	c, ok = ParseConfidence("medium")
	assert.True(t, ok)
	assert.Equal(t, ConfidenceMedium, c)

	_, ok = ParseConfidence("certain")
	assert.False(t, ok)
}
