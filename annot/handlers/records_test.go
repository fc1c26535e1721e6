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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epitag/records"
)

const testArchiveJSON = `[
	{
		"LIST-ID": 101,
		"inscription": "D(is) M(anibus)",
		"text_interpretive_word": "Dis Manibus",
		"text_length": 11
	},
	{
		"LIST-ID": 102,
		"inscription": "Iuli[us in]fans hic situs est",
		"text_interpretive_word": "Iulius infans hic situs est",
		"text_length": 27
	},
	{
		"LIST-ID": 103,
		"inscription": "vixit annos [3]",
		"text_interpretive_word": "vixit annos",
		"text_length": 11
	}
]`

func testActions(t *testing.T) *Actions {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.json")
	require.NoError(t, os.WriteFile(path, []byte(testArchiveJSON), 0644))
	archive, err := records.Load(&records.Conf{DataPath: path})
	require.NoError(t, err)
	return &Actions{archive: archive}
}

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return ctx, rec
}

func TestRecordsListing(t *testing.T) {
	a := testActions(t)
	ctx, rec := testContext(t, "/records?limit=2")
	a.Records(ctx)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Total   int              `json:"total"`
		Records []recordListItem `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	require.Len(t, body.Records, 2)
	assert.Equal(t, records.ID("101"), body.Records[0].ID)
	assert.Equal(t, 2, body.Records[0].NumTokens)
}

func TestRecordsListingOffsetBeyondEnd(t *testing.T) {
	a := testActions(t)
	ctx, rec := testContext(t, "/records?offset=100")
	a.Records(ctx)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Records []recordListItem `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Records, 0)
}

func TestRecordsListingInvalidLimit(t *testing.T) {
	a := testActions(t)
	ctx, rec := testContext(t, "/records?limit=x")
	a.Records(ctx)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordInfo(t *testing.T) {
	a := testActions(t)
	ctx, rec := testContext(t, "/records/102")
	ctx.Params = gin.Params{{Key: "recordId", Value: "102"}}
	a.RecordInfo(ctx)

	require.Equal(t, http.StatusOK, rec.Code)
	var body records.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Iuli[us in]fans hic situs est", body.Inscription)
}

func TestRecordInfoNotFound(t *testing.T) {
	a := testActions(t)
	ctx, rec := testContext(t, "/records/999")
	ctx.Params = gin.Params{{Key: "recordId", Value: "999"}}
	a.RecordInfo(ctx)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSampleRecordsReproducible(t *testing.T) {
	a := testActions(t)

	draw := func() []recordListItem {
		ctx, rec := testContext(t, "/records/sample?n=1&seed=42")
		a.SampleRecords(ctx)
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Records []recordListItem `json:"records"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body.Records
	}
	first := draw()
	second := draw()
	assert.Equal(t, first, second)
}

func TestSampleRecordsInvalidSize(t *testing.T) {
	a := testActions(t)
	ctx, rec := testContext(t, "/records/sample?n=-3")
	a.SampleRecords(ctx)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTagsetHandler(t *testing.T) {
	a := testActions(t)
	ctx, rec := testContext(t, "/tagset")
	a.Tagset(ctx)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tagset      []json.RawMessage `json:"tagset"`
		Confidences []string          `json:"confidences"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Tagset, 17)
	assert.Equal(t, []string{"High", "Medium", "Low"}, body.Confidences)
}
