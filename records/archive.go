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

// Package records gives read-only access to the inscription export the
// annotation campaign runs on. The archive is loaded once at startup
// and never mutated afterwards, so it is safe to share between
// concurrent handlers and workers.
package records

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"epitag/merror"
)

// ID is a LIST corpus identifier. The upstream export writes it
// as a JSON number, hand-edited files often quote it; both forms
// are accepted.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid record ID: %s", data)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Dating is the production interval of an inscription (years, negative
// for BCE). Either bound may be missing.
type Dating struct {
	NotBefore *int `json:"not_before"`
	NotAfter  *int `json:"not_after"`
}

type Geography struct {
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	UrbanContextCity string   `json:"urban_context_city,omitempty"`
}

// Record mirrors one item of the LIST JSON export (Stage 1 extraction
// format). The inscription field keeps the diplomatic text with its
// epigraphic markup; text_interpretive_word is the cleaned, expanded
// reading tokenizable by whitespace.
type Record struct {
	ID                       ID        `json:"LIST-ID"`
	Inscription              string    `json:"inscription"`
	TextConservative         string    `json:"text_conservative"`
	TextInterpretiveWord     string    `json:"text_interpretive_word"`
	TextInterpretiveSentence string    `json:"text_interpretive_sentence,omitempty"`
	TypeOfInscription        string    `json:"type_of_inscription_auto,omitempty"`
	Dating                   Dating    `json:"dating"`
	Geography                Geography `json:"geography"`
	TextLength               int       `json:"text_length"`
}

// NumTokens returns the number of whitespace tokens of the
// interpretive text, i.e. the number of annotations a proposal
// must contain.
func (rec Record) NumTokens() int {
	return len(strings.Fields(rec.TextInterpretiveWord))
}

// Preview returns a shortened interpretive text for listings.
func (rec Record) Preview(maxLen int) string {
	rr := []rune(rec.TextInterpretiveWord)
	if len(rr) <= maxLen {
		return rec.TextInterpretiveWord
	}
	return string(rr[:maxLen]) + "..."
}

// Conf configures the archive source file.
type Conf struct {
	DataPath string `json:"dataPath"`
}

// Archive is the in-memory inscription collection.
type Archive struct {
	items []Record
	index map[ID]int
}

// Load reads the JSON export once. Records without an ID or without
// interpretive text are kept (the corpus contains such items) but
// logged, since they cannot be validated.
func Load(conf *Conf) (*Archive, error) {
	rawData, err := os.ReadFile(conf.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load records archive: %w", err)
	}
	var items []Record
	if err := json.Unmarshal(rawData, &items); err != nil {
		return nil, fmt.Errorf("failed to parse records archive: %w", err)
	}
	arch := &Archive{
		items: items,
		index: make(map[ID]int, len(items)),
	}
	var numEmpty int
	for i, rec := range items {
		if rec.TextInterpretiveWord == "" {
			numEmpty++
		}
		arch.index[rec.ID] = i
	}
	log.Info().
		Int("numRecords", len(items)).
		Int("numWithoutText", numEmpty).
		Str("path", conf.DataPath).
		Msg("loaded inscription archive")
	return arch, nil
}

// Get returns the record with the given ID.
func (arch *Archive) Get(id ID) (Record, error) {
	idx, ok := arch.index[id]
	if !ok {
		return Record{}, merror.InputError{Msg: fmt.Sprintf("record %s not found", id)}
	}
	return arch.items[idx], nil
}

// Size returns the number of records in the archive.
func (arch *Archive) Size() int {
	return len(arch.items)
}

// All returns the archive contents in export order. The slice is
// shared; callers must not modify it.
func (arch *Archive) All() []Record {
	return arch.items
}
