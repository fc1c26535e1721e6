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
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"epitag/annot/handlers"
	"epitag/cnf"
	"epitag/general"
	"epitag/rdb"
	"epitag/records"
)

type apiServer struct {
	server   *http.Server
	conf     *cnf.Conf
	version  general.VersionInfo
	radapter *rdb.Adapter
	archive  *records.Archive
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	aActions := handlers.NewActions(api.conf, api.radapter, api.archive)

	engine.GET("/", mkServerInfo(api.conf, api.version, api.archive))

	engine.GET(
		"/tagset", aActions.Tagset)

	engine.GET(
		"/markup-rules", aActions.MarkupRules)

	engine.POST(
		"/validate", aActions.Validate)

	engine.POST(
		"/validate/:recordId", aActions.ValidateRecord)

	engine.POST(
		"/markup-scan", aActions.ScanMarkup)

	engine.GET(
		"/markup-scan/:recordId", aActions.ScanRecordMarkup)

	engine.GET(
		"/records", aActions.Records)

	engine.GET(
		"/records/sample", aActions.SampleRecords)

	engine.GET(
		"/records/:recordId", aActions.RecordInfo)

	if api.conf.Proposer != nil {
		protected := engine.Group("/").Use(AuthRequired(api.conf))
		protected.POST(
			"/propose/:recordId", aActions.Propose)

	} else {
		log.Warn().Msg("proposer not configured, endpoint /propose/:recordId will be disabled")
	}

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (api *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down EPITAG HTTP API server")
	return api.server.Shutdown(ctx)
}

func mkServerInfo(
	conf *cnf.Conf,
	version general.VersionInfo,
	archive *records.Archive,
) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(ctx.Writer, map[string]any{
			"name":       "EPITAG - epigraphic annotation validation server",
			"version":    version,
			"publicUrl":  conf.PublicURL,
			"numRecords": archive.Size(),
		})
	}
}

func runApiServer(conf *cnf.Conf, version general.VersionInfo) {
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
		return
	}
	archive, err := records.Load(conf.Records)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load records archive")
		return
	}
	server := &apiServer{
		conf:     conf,
		version:  version,
		radapter: radapter,
		archive:  archive,
	}

	services := []service{server}
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
