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

package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"epitag/cnf"
	"epitag/monitoring"
	"epitag/proposer"
	"epitag/rdb"
	"epitag/records"
	"epitag/results"
	"epitag/worker"
)

func getWorkerID() (workerID string) {
	workerID = getEnv("WORKER_ID")
	if workerID == "" {
		workerID = strconv.Itoa(os.Getpid())
	}
	return
}

// -------

type NullStatusWriter struct{}

func (n *NullStatusWriter) Write(rec results.JobLog) {}

// -------

func runWorker(conf *cnf.Conf) {
	workerID := getWorkerID()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conf.Redis == nil {
		log.Fatal().Msg("missing `redis` configuration section")
		return
	}
	radapter := rdb.NewAdapter(ctx, conf.Redis)

	err := radapter.TestConnection(redisConnectionTestTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	archive, err := records.Load(conf.Records)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load records archive")
		return
	}

	var prop *proposer.Proposer
	if conf.Proposer != nil {
		prop = proposer.NewProposer(conf.Proposer)
		log.Info().Str("model", prop.Model()).Msg("annotation proposer enabled")
	}

	var statusWriter worker.StatusWriter
	if conf.StatusDB != nil {
		tsWriter, err := monitoring.NewTimescaleDBWriter(
			ctx,
			*conf.StatusDB,
			conf.TimezoneLocation(),
			func(err error) {
				log.Error().Err(err).Msg("status writer error")
			},
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize status writer")
			return
		}
		tsWriter.Start(ctx)
		statusWriter = tsWriter

	} else {
		statusWriter = &NullStatusWriter{}
	}

	ch := radapter.Subscribe()
	wrk := worker.NewWorker(workerID, radapter, ch, archive, prop, statusWriter)

	services := []service{wrk}
	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}
