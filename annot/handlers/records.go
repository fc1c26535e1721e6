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

	"epitag/records"
)

const (
	dfltRecordsPageSize = 50
	dfltSampleSize      = 10
	dfltSampleSeed      = 1
	recordPreviewLen    = 80
)

type recordListItem struct {
	ID         records.ID `json:"id"`
	Preview    string     `json:"preview"`
	Type       string     `json:"type,omitempty"`
	TextLength int        `json:"textLength"`
	NumTokens  int        `json:"numTokens"`
}

func listItemOf(rec records.Record) recordListItem {
	return recordListItem{
		ID:         rec.ID,
		Preview:    rec.Preview(recordPreviewLen),
		Type:       rec.TypeOfInscription,
		TextLength: rec.TextLength,
		NumTokens:  rec.NumTokens(),
	}
}

// Records lists archived inscriptions in export order, paged via
// `limit` and `offset`.
func (a *Actions) Records(ctx *gin.Context) {
	limit, ok := getURLIntArgOrFail(ctx, "limit", dfltRecordsPageSize)
	if !ok {
		return
	}
	offset, ok := getURLIntArgOrFail(ctx, "offset", 0)
	if !ok {
		return
	}
	all := a.archive.All()
	if offset < 0 || offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	items := make([]recordListItem, 0, end-offset)
	for _, rec := range all[offset:end] {
		items = append(items, listItemOf(rec))
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{
		"total":   a.archive.Size(),
		"records": items,
	})
}

// RecordInfo returns one archived inscription in full.
func (a *Actions) RecordInfo(ctx *gin.Context) {
	rec, err := a.archive.Get(records.ID(ctx.Param("recordId")))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, rec)
}

// SampleRecords draws a reproducible annotation batch from the longest
// decile of the archive.
func (a *Actions) SampleRecords(ctx *gin.Context) {
	n, ok := getURLIntArgOrFail(ctx, "n", dfltSampleSize)
	if !ok {
		return
	}
	seed, ok := getURLIntArgOrFail(ctx, "seed", dfltSampleSeed)
	if !ok {
		return
	}
	sample, err := a.archive.SampleTopDecile(n, int64(seed))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	items := make([]recordListItem, len(sample))
	for i, rec := range sample {
		items[i] = listItemOf(rec)
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{
		"seed":    seed,
		"records": items,
	})
}
