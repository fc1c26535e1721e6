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

package handlers

import (
	"errors"
	"net/http"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"epitag/annot"
	"epitag/rdb"
	"epitag/records"
	"epitag/results"
)

type validateBody struct {
	Record *records.Record `json:"record"`
	Tokens []annot.Token   `json:"tokens"`
}

// Validate checks a proposed annotation sequence against an inline
// inscription. The caller supplies both the record (at least the
// diplomatic and interpretive texts) and the tokens.
func (a *Actions) Validate(ctx *gin.Context) {
	var body validateBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	if body.Record == nil {
		uniresp.RespondWithErrorJSON(
			ctx,
			errors.New("missing `record` attribute"),
			http.StatusBadRequest,
		)
		return
	}
	worker, ok := a.runQuery(ctx, rdb.FuncValidateTokens, rdb.ValidateTokensArgs{
		Record: body.Record,
		Tokens: body.Tokens,
	})
	if !ok {
		return
	}
	report, ok := typedOrRespondError[results.ValidationReport](ctx, worker)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, report)
}

type validateRecordBody struct {
	Tokens []annot.Token `json:"tokens"`
}

// ValidateRecord checks a proposed annotation sequence against an
// archived inscription.
func (a *Actions) ValidateRecord(ctx *gin.Context) {
	recID := records.ID(ctx.Param("recordId"))
	if _, err := a.archive.Get(recID); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return
	}
	var body validateRecordBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	worker, ok := a.runQuery(ctx, rdb.FuncValidateTokens, rdb.ValidateTokensArgs{
		RecordID: recID,
		Tokens:   body.Tokens,
	})
	if !ok {
		return
	}
	report, ok := typedOrRespondError[results.ValidationReport](ctx, worker)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, report)
}
