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

package rdb

import (
	"encoding/json"
	"fmt"
)

type ResultType string

func (rt ResultType) String() string {
	return string(rt)
}

const (
	ResultTypeValidation  ResultType = "validation"
	ResultTypeMarkupScan  ResultType = "markupScan"
	ResultTypeProposal    ResultType = "proposal"
	ResultTypeArchiveInfo ResultType = "archiveInfo"
	ResultTypeError       ResultType = "error"
)

// SerializableResult is implemented by all worker job outcomes.
type SerializableResult interface {
	Err() error
	Type() ResultType
}

// WorkerResult is the envelope a worker publishes back to the API
// server. Value keeps the job outcome serialized so the envelope can
// cross Redis without type registration.
type WorkerResult struct {
	ID           string          `json:"id"`
	ResultType   ResultType      `json:"resultType"`
	Value        json.RawMessage `json:"value"`
	HasUserError bool            `json:"hasUserError"`
}

// CreateWorkerResult wraps a job outcome into a publishable envelope.
func CreateWorkerResult(res SerializableResult) (*WorkerResult, error) {
	value, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s result: %w", res.Type(), err)
	}
	return &WorkerResult{
		ResultType: res.Type(),
		Value:      value,
	}, nil
}

// AttachError turns the envelope into an error result, e.g. when the
// stored payload cannot be fetched or decoded.
func (wr *WorkerResult) AttachError(err error, userError bool) {
	wr.ResultType = ResultTypeError
	wr.HasUserError = userError
	wr.Value, _ = json.Marshal(map[string]string{"error": err.Error()})
}

// DecodeValue extracts a typed job outcome from the envelope.
func DecodeValue[T any](wr *WorkerResult) (T, error) {
	var ans T
	if err := json.Unmarshal(wr.Value, &ans); err != nil {
		return ans, fmt.Errorf("failed to decode %s result: %w", wr.ResultType, err)
	}
	return ans, nil
}
