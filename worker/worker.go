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

// Package worker consumes validation jobs from the Redis queue. All
// actual work is a bounded pure computation, so a worker needs no
// cancellation beyond process shutdown.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"epitag/merror"
	"epitag/proposer"
	"epitag/rdb"
	"epitag/records"
	"epitag/results"
)

const (
	DefaultTickerInterval = 2 * time.Second
)

// StatusWriter receives a log entry for each processed job.
type StatusWriter interface {
	Write(rec results.JobLog)
}

type recoveredError struct {
	error
}

type Worker struct {
	ID         string
	messages   <-chan *redis.Message
	radapter   *rdb.Adapter
	archive    *records.Archive
	proposer   *proposer.Proposer
	ticker     *time.Ticker
	jobLogger  StatusWriter
	currJobLog *results.JobLog
	done       chan struct{}
}

func (w *Worker) publishResult(res rdb.SerializableResult, channel string) error {
	ans, err := rdb.CreateWorkerResult(res)
	if err != nil {
		return err
	}
	ans.ID = w.ID
	var inputErr merror.InputError
	ans.HasUserError = errors.As(res.Err(), &inputErr)

	w.currJobLog.End = time.Now()
	w.currJobLog.Err = res.Err()
	w.jobLogger.Write(*w.currJobLog)
	w.currJobLog = nil
	return w.radapter.PublishResult(channel, ans)
}

func (w *Worker) sendPublishingErr(query rdb.Query, err error) {
	res := results.ErrorResult{Func: query.Func, Error: err.Error()}
	if err := w.publishResult(res, query.Channel); err != nil {
		log.Error().Err(err).Msg("failed to publish general publishing error")
	}
}

func (w *Worker) runQueryProtected(query rdb.Query) (ansErr error) {
	defer func() {
		if r := recover(); r != nil {
			ansErr = recoveredError{merror.PanicValueToErr(r)}
			return
		}
	}()
	var ans rdb.SerializableResult
	switch query.Func {
	case rdb.FuncValidateTokens:
		var args rdb.ValidateTokensArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans = w.validateTokens(args)
	case rdb.FuncScanMarkup:
		var args rdb.ScanMarkupArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans = w.scanMarkup(args)
	case rdb.FuncProposeTokens:
		var args rdb.ProposeTokensArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans = w.proposeTokens(args)
	case rdb.FuncArchiveInfo:
		ans = w.archiveInfo()
	default:
		ans = results.ErrorResult{Error: fmt.Sprintf("unknown query function: %s", query.Func)}
	}
	if err := w.publishResult(ans, query.Channel); err != nil {
		w.sendPublishingErr(query, err)
		return err
	}
	return nil
}

func (w *Worker) tryNextQuery() error {
	// spread concurrent workers a bit so they do not all hit
	// the queue at the very same moment
	time.Sleep(time.Duration(rand.Intn(40)) * time.Millisecond)
	query, err := w.radapter.DequeueQuery()
	if err == rdb.ErrorEmptyQueue {
		return nil

	} else if err != nil {
		return err
	}
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Msg("received query")

	isActive, err := w.radapter.SomeoneListens(query)
	if err != nil {
		return err
	}
	if !isActive {
		log.Warn().
			Str("func", query.Func).
			Str("channel", query.Channel).
			Msg("worker found an inactive query")
		return nil
	}

	w.currJobLog = &results.JobLog{
		WorkerID: w.ID,
		Func:     query.Func,
		Begin:    time.Now(),
	}

	err = w.runQueryProtected(query)
	var rcvErr recoveredError
	if errors.As(err, &rcvErr) {
		ans := results.ErrorResult{
			Error: fmt.Sprintf("worker panicked: %s", rcvErr.Error()),
			Func:  query.Func,
		}
		if err := w.publishResult(ans, query.Channel); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("workerId", w.ID).Msg("worker exiting")
			close(w.done)
			return
		case <-w.ticker.C:
			if err := w.tryNextQuery(); err != nil {
				log.Error().Err(err).Msg("failed to process query")
			}
		case msg := <-w.messages:
			if msg.Payload == rdb.MsgNewQuery {
				if err := w.tryNextQuery(); err != nil {
					log.Error().Err(err).Msg("failed to process query")
				}
			}
		}
	}
}

func (w *Worker) Start(ctx context.Context) {
	go w.listen(ctx)
}

func (w *Worker) Stop(ctx context.Context) error {
	w.ticker.Stop()
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker %s did not stop in time", w.ID)
	}
}

func NewWorker(
	workerID string,
	radapter *rdb.Adapter,
	messages <-chan *redis.Message,
	archive *records.Archive,
	prop *proposer.Proposer,
	jobLogger StatusWriter,
) *Worker {
	return &Worker{
		ID:        workerID,
		radapter:  radapter,
		messages:  messages,
		archive:   archive,
		proposer:  prop,
		ticker:    time.NewTicker(DefaultTickerInterval),
		jobLogger: jobLogger,
		done:      make(chan struct{}),
	}
}
