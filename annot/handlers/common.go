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
	"strconv"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"epitag/rdb"
	"epitag/results"
)

// runQuery publishes a job and blocks until a worker answers. The
// Redis adapter closes the wait channel on context cancellation, so a
// dying server does not leak the goroutine.
func (a *Actions) runQuery(ctx *gin.Context, fn string, args any) (*rdb.WorkerResult, bool) {
	query, err := rdb.NewQuery(fn, args)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			http.StatusInternalServerError,
		)
		return nil, false
	}
	var wait <-chan *rdb.WorkerResult
	switch fn {
	case rdb.FuncValidateTokens, rdb.FuncScanMarkup:
		// both operations are deterministic, so their results can be
		// served from the file cache
		wait, err = a.radapter.CacheResult(a.radapter.PublishQuery, query)
	default:
		wait, err = a.radapter.PublishQuery(query)
	}
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			http.StatusInternalServerError,
		)
		return nil, false
	}
	result := <-wait
	if result == nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(errors.New("no worker answered")),
			http.StatusServiceUnavailable,
		)
		return nil, false
	}
	return result, true
}

// typedOrRespondError unwraps a worker envelope into the expected
// result type, answering the request itself when the job failed.
func typedOrRespondError[T rdb.SerializableResult](
	ctx *gin.Context,
	w *rdb.WorkerResult,
) (T, bool) {
	var none T
	if w.ResultType == rdb.ResultTypeError {
		errRes, err := rdb.DecodeValue[results.ErrorResult](w)
		if err != nil {
			errRes.Error = err.Error()
		}
		if errRes.Error == "" {
			errRes.Error = "unspecified worker error"
		}
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(errRes.Err()),
			workerErrStatus(w),
		)
		return none, false
	}
	value, err := rdb.DecodeValue[T](w)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			http.StatusInternalServerError,
		)
		return none, false
	}
	if err := value.Err(); err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			workerErrStatus(w),
		)
		return none, false
	}
	return value, true
}

func workerErrStatus(w *rdb.WorkerResult) int {
	if w.HasUserError {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func getURLIntArgOrFail(ctx *gin.Context, name string, dflt int) (int, bool) {
	if !ctx.Request.URL.Query().Has(name) {
		return dflt, true
	}
	value, err := strconv.Atoi(ctx.Request.URL.Query().Get(name))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return 0, false
	}
	return value, true
}
