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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"epitag/annot"
	"epitag/cnf"
	"epitag/records"
	"epitag/results"
)

type validateInput struct {
	RecordID records.ID      `json:"recordId,omitempty"`
	Record   *records.Record `json:"record,omitempty"`
	Tokens   []annot.Token   `json:"tokens"`
}

// runValidate performs a single validation without any server
// infrastructure. It is meant for batch scripts checking annotation
// files before import.
func runValidate(conf *cnf.Conf, inputPath string) {
	if inputPath == "" {
		log.Fatal().Msg("missing input file argument")
		return
	}
	rawInput, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read input file")
		return
	}
	var input validateInput
	if err := json.Unmarshal(rawInput, &input); err != nil {
		log.Fatal().Err(err).Msg("failed to parse input file")
		return
	}

	var rec records.Record
	if input.Record != nil {
		rec = *input.Record

	} else {
		archive, err := records.Load(conf.Records)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load records archive")
			return
		}
		rec, err = archive.Get(input.RecordID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to find record")
			return
		}
	}

	result, err := annot.Validate(rec.Inscription, rec.TextInterpretiveWord, input.Tokens)
	if err != nil {
		log.Fatal().Err(err).Msg("validation failed")
		return
	}
	report := results.ValidationReport{
		RecordID:  rec.ID,
		NumTokens: rec.NumTokens(),
		Result:    result,
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to serialize report")
		return
	}
	fmt.Println(string(out))
	if !result.Valid {
		os.Exit(1)
	}
}
