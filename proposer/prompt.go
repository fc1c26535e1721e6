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
	"fmt"
	"strings"

	"epitag/annot"
	"epitag/annot/markup"
	"epitag/records"
)

// BuildPrompt renders the annotation instructions for one record. The
// output contract (one JSON object per interpretive token, in order,
// with the spreadsheet column keys) is what ParseReply expects back.
func BuildPrompt(rec records.Record) string {
	var sb strings.Builder

	sb.WriteString("Annotate every word of the interpretive text of the following inscription.\n\n")
	if rec.TypeOfInscription != "" {
		fmt.Fprintf(&sb, "Inscription type: %s\n", rec.TypeOfInscription)
	}
	fmt.Fprintf(&sb, "Diplomatic text (with epigraphic markup):\n%s\n\n", rec.Inscription)
	if rec.TextConservative != "" {
		fmt.Fprintf(&sb, "Conservative transcription:\n%s\n\n", rec.TextConservative)
	}
	fmt.Fprintf(&sb, "Interpretive text (annotate these words, in this order):\n%s\n\n", rec.TextInterpretiveWord)

	sb.WriteString("Universal Dependencies v2 POS tags:\n")
	for _, t := range annot.Tagset() {
		fmt.Fprintf(&sb, "%s=%s\n", t.Tag, t.Gloss)
	}

	sb.WriteString("\nEpigraphic notation in the diplomatic text:\n")
	for _, r := range markup.Rules() {
		fmt.Fprintf(&sb, "%s  %s\n", r.Symbol, r.Note)
	}

	sb.WriteString(`
Rules:
- Produce exactly one JSON object per word of the interpretive text, in the same order.
- Confidence is High, Medium or Low. Use Low when the reading is too damaged to
  commit to a tag; a Low word gets POS "X" and its lemma equal to the word itself.
- With Medium confidence, "Reason for classification" must state the specific ambiguity.
- Words restored inside [ ] brackets or touching a lacuna must not be High confidence.
- The kai symbol always has lemma "` + markup.KaiLemma + `" and POS CCONJ; Greek numerals are NUM.
- "Interpretive Notes" justifies the reading epigraphically, referencing the markup.

Reply with a JSON array of objects with exactly these keys:
"Interpretive Notes", "Reason for classification", "Confidence", "Lemma", "POS"
`)
	return sb.String()
}
