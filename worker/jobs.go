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

package worker

import (
	"context"
	"time"

	"epitag/annot"
	"epitag/annot/markup"
	"epitag/merror"
	"epitag/rdb"
	"epitag/records"
	"epitag/results"
)

const proposeTimeout = 120 * time.Second

func (w *Worker) resolveRecord(id records.ID, inline *records.Record) (records.Record, error) {
	if inline != nil {
		return *inline, nil
	}
	return w.archive.Get(id)
}

func (w *Worker) validateTokens(args rdb.ValidateTokensArgs) rdb.SerializableResult {
	rec, err := w.resolveRecord(args.RecordID, args.Record)
	if err != nil {
		return results.ValidationReport{RecordID: args.RecordID, Error: err}
	}
	res, err := annot.Validate(rec.Inscription, rec.TextInterpretiveWord, args.Tokens)
	if err != nil {
		return results.ValidationReport{RecordID: rec.ID, Error: err}
	}
	return results.ValidationReport{
		RecordID:  rec.ID,
		NumTokens: rec.NumTokens(),
		Result:    res,
	}
}

func (w *Worker) scanMarkup(args rdb.ScanMarkupArgs) rdb.SerializableResult {
	text := args.Inscription
	recID := args.RecordID
	if text == "" && recID != "" {
		rec, err := w.archive.Get(recID)
		if err != nil {
			return results.ErrorResult{Func: rdb.FuncScanMarkup, Error: err.Error()}
		}
		text = rec.Inscription
	}
	spans, issues := markup.Scan(text)
	return results.MarkupScan{
		RecordID: recID,
		Spans:    spans,
		Issues:   issues,
	}
}

func (w *Worker) proposeTokens(args rdb.ProposeTokensArgs) rdb.SerializableResult {
	if w.proposer == nil {
		return results.Proposal{
			RecordID: args.RecordID,
			Error:    merror.InternalError{Msg: "no annotation proposer configured"},
		}
	}
	rec, err := w.archive.Get(args.RecordID)
	if err != nil {
		return results.Proposal{RecordID: args.RecordID, Error: err}
	}
	ctx, cancel := context.WithTimeout(context.Background(), proposeTimeout)
	defer cancel()
	tokens, err := w.proposer.Propose(ctx, rec)
	if err != nil {
		return results.Proposal{RecordID: rec.ID, Error: err}
	}
	validation, err := annot.Validate(rec.Inscription, rec.TextInterpretiveWord, tokens)
	if err != nil {
		return results.Proposal{RecordID: rec.ID, Tokens: tokens, Error: err}
	}
	return results.Proposal{
		RecordID:   rec.ID,
		Model:      w.proposer.Model(),
		Tokens:     tokens,
		Validation: validation,
	}
}

func (w *Worker) archiveInfo() rdb.SerializableResult {
	return results.ArchiveInfo{NumRecords: w.archive.Size()}
}
