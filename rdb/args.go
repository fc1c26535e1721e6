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
	"epitag/annot"
	"epitag/records"
)

// Job function names as understood by workers.
const (
	FuncValidateTokens = "validateTokens"
	FuncScanMarkup     = "scanMarkup"
	FuncProposeTokens  = "proposeTokens"
	FuncArchiveInfo    = "archiveInfo"
)

// ValidateTokensArgs asks for validation of a proposed annotation
// sequence. Either RecordID points into the worker's archive, or
// Record carries the inscription inline (ad-hoc validation of material
// outside the archive).
type ValidateTokensArgs struct {
	RecordID records.ID      `json:"recordId,omitempty"`
	Record   *records.Record `json:"record,omitempty"`
	Tokens   []annot.Token   `json:"tokens"`
}

type ScanMarkupArgs struct {
	RecordID    records.ID `json:"recordId,omitempty"`
	Inscription string     `json:"inscription,omitempty"`
}

type ProposeTokensArgs struct {
	RecordID records.ID `json:"recordId"`
}

type ArchiveInfoArgs struct{}
