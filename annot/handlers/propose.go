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
	"net/http"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"epitag/rdb"
	"epitag/records"
	"epitag/results"
)

// Propose asks a worker for an LLM annotation of an archived
// inscription and returns the proposal along with its validation.
// This is a long operation; the model round trip runs on the worker
// side with its own timeout.
func (a *Actions) Propose(ctx *gin.Context) {
	recID := records.ID(ctx.Param("recordId"))
	if _, err := a.archive.Get(recID); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return
	}
	worker, ok := a.runQuery(ctx, rdb.FuncProposeTokens, rdb.ProposeTokensArgs{
		RecordID: recID,
	})
	if !ok {
		return
	}
	proposal, ok := typedOrRespondError[results.Proposal](ctx, worker)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, proposal)
}
