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
	"epitag/annot/markup"
	"epitag/rdb"
	"epitag/records"
	"epitag/results"
)

// Tagset lists the accepted POS tags with their glosses.
func (a *Actions) Tagset(ctx *gin.Context) {
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{
		"tagset":      annot.Tagset(),
		"confidences": []annot.Confidence{
			annot.ConfidenceHigh, annot.ConfidenceMedium, annot.ConfidenceLow},
	})
}

// MarkupRules lists the recognized epigraphic notation symbols.
func (a *Actions) MarkupRules(ctx *gin.Context) {
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{
		"rules": markup.Rules(),
	})
}

type scanMarkupBody struct {
	Inscription string `json:"inscription"`
}

// ScanMarkup extracts notation spans from an ad-hoc diplomatic text.
func (a *Actions) ScanMarkup(ctx *gin.Context) {
	var body scanMarkupBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	if body.Inscription == "" {
		uniresp.RespondWithErrorJSON(
			ctx,
			errors.New("missing `inscription` attribute"),
			http.StatusBadRequest,
		)
		return
	}
	worker, ok := a.runQuery(ctx, rdb.FuncScanMarkup, rdb.ScanMarkupArgs{
		Inscription: body.Inscription,
	})
	if !ok {
		return
	}
	scan, ok := typedOrRespondError[results.MarkupScan](ctx, worker)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, scan)
}

// ScanRecordMarkup extracts notation spans from an archived
// inscription.
func (a *Actions) ScanRecordMarkup(ctx *gin.Context) {
	recID := records.ID(ctx.Param("recordId"))
	if _, err := a.archive.Get(recID); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return
	}
	worker, ok := a.runQuery(ctx, rdb.FuncScanMarkup, rdb.ScanMarkupArgs{
		RecordID: recID,
	})
	if !ok {
		return
	}
	scan, ok := typedOrRespondError[results.MarkupScan](ctx, worker)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, scan)
}
