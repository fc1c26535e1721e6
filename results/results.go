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

package results

import (
	"errors"

	"github.com/bytedance/sonic"

	"epitag/annot"
	"epitag/annot/markup"
	"epitag/rdb"
	"epitag/records"
)

// ErrorResult carries a failed job outcome.
type ErrorResult struct {
	Func  string `json:"func,omitempty"`
	Error string `json:"error"`
}

func (res ErrorResult) Err() error {
	if res.Error != "" {
		return errors.New(res.Error)
	}
	return nil
}

func (res ErrorResult) Type() rdb.ResultType {
	return rdb.ResultTypeError
}

// ----

type validationReportResponse struct {
	RecordID   records.ID     `json:"recordId,omitempty"`
	NumTokens  int            `json:"numTokens"`
	Result     annot.Result   `json:"result"`
	ResultType rdb.ResultType `json:"resultType"`
	Error      string         `json:"error,omitempty"`
}

// ValidationReport is the outcome of one validation pass over a
// proposed token sequence.
type ValidationReport struct {
	RecordID  records.ID   `json:"recordId,omitempty"`
	NumTokens int          `json:"numTokens"`
	Result    annot.Result `json:"result"`
	Error     error        `json:"error,omitempty"`
}

func (res ValidationReport) Err() error {
	return res.Error
}

func (res ValidationReport) Type() rdb.ResultType {
	return rdb.ResultTypeValidation
}

func (res ValidationReport) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(validationReportResponse{
		RecordID:   res.RecordID,
		NumTokens:  res.NumTokens,
		Result:     res.Result,
		ResultType: res.Type(),
		Error:      errToStr(res.Error),
	})
}

func (res *ValidationReport) UnmarshalJSON(data []byte) error {
	var tmp validationReportResponse
	if err := sonic.Unmarshal(data, &tmp); err != nil {
		return err
	}
	res.RecordID = tmp.RecordID
	res.NumTokens = tmp.NumTokens
	res.Result = tmp.Result
	if tmp.Error != "" {
		res.Error = errors.New(tmp.Error)
	}
	return nil
}

// ----

// MarkupScan lists the notation spans of one inscription.
type MarkupScan struct {
	RecordID records.ID     `json:"recordId,omitempty"`
	Spans    []markup.Span  `json:"spans"`
	Issues   []markup.Issue `json:"issues,omitempty"`
}

func (res MarkupScan) Err() error {
	return nil
}

func (res MarkupScan) Type() rdb.ResultType {
	return rdb.ResultTypeMarkupScan
}

// ----

type proposalResponse struct {
	RecordID   records.ID     `json:"recordId"`
	Model      string         `json:"model"`
	Tokens     []annot.Token  `json:"tokens"`
	Validation annot.Result   `json:"validation"`
	ResultType rdb.ResultType `json:"resultType"`
	Error      string         `json:"error,omitempty"`
}

// Proposal is an LLM-proposed annotation sequence together with its
// validation outcome. The proposal is returned even when invalid so
// reviewers can see what the model produced.
type Proposal struct {
	RecordID   records.ID    `json:"recordId"`
	Model      string        `json:"model"`
	Tokens     []annot.Token `json:"tokens"`
	Validation annot.Result  `json:"validation"`
	Error      error         `json:"error,omitempty"`
}

func (res Proposal) Err() error {
	return res.Error
}

func (res Proposal) Type() rdb.ResultType {
	return rdb.ResultTypeProposal
}

func (res Proposal) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(proposalResponse{
		RecordID:   res.RecordID,
		Model:      res.Model,
		Tokens:     res.Tokens,
		Validation: res.Validation,
		ResultType: res.Type(),
		Error:      errToStr(res.Error),
	})
}

func (res *Proposal) UnmarshalJSON(data []byte) error {
	var tmp proposalResponse
	if err := sonic.Unmarshal(data, &tmp); err != nil {
		return err
	}
	res.RecordID = tmp.RecordID
	res.Model = tmp.Model
	res.Tokens = tmp.Tokens
	res.Validation = tmp.Validation
	if tmp.Error != "" {
		res.Error = errors.New(tmp.Error)
	}
	return nil
}

// ----

// ArchiveInfo summarizes the inscription archive a worker serves.
type ArchiveInfo struct {
	NumRecords int `json:"numRecords"`
}

func (res ArchiveInfo) Err() error {
	return nil
}

func (res ArchiveInfo) Type() rdb.ResultType {
	return rdb.ResultTypeArchiveInfo
}
