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
	"encoding/json"
	"fmt"
	"strings"

	"epitag/annot"
)

// sheetToken mirrors the column layout of the gold-standard review
// sheets, which is also the reply contract given to the model.
type sheetToken struct {
	InterpretiveNotes string `json:"Interpretive Notes"`
	Reason            string `json:"Reason for classification"`
	Confidence        string `json:"Confidence"`
	Lemma             string `json:"Lemma"`
	POS               string `json:"POS"`
}

// ParseReply decodes a model reply into tokens, zipping the objects
// with the interpretive-text words in order. Models like to wrap JSON
// in Markdown fences; those are stripped. A reply with a wrong number
// of objects is an error here, not a validation rejection, because
// there is nothing meaningful to zip the surfaces with.
func ParseReply(reply string, surfaces []string) ([]annot.Token, error) {
	raw := stripFences(reply)
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array in reply")
	}

	var items []sheetToken
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("malformed JSON array: %w", err)
	}
	if len(items) != len(surfaces) {
		return nil, fmt.Errorf(
			"reply has %d annotations for %d words", len(items), len(surfaces))
	}

	ans := make([]annot.Token, len(items))
	for i, item := range items {
		ans[i] = annot.Token{
			Surface:    surfaces[i],
			Lemma:      item.Lemma,
			Pos:        annot.POS(item.POS),
			Confidence: annot.Confidence(item.Confidence),
			Reason:     item.Reason,
			Notes:      item.InterpretiveNotes,
		}
	}
	return ans, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
