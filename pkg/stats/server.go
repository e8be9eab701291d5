/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package stats

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geboyr/csc5201-final/pkg/auth"
	"github.com/geboyr/csc5201-final/pkg/httpx"
	"github.com/geboyr/csc5201-final/pkg/metrics"
	"github.com/geboyr/csc5201-final/pkg/telemetry"
	"github.com/gorilla/mux"
)

// ServiceName tags reports emitted by the stats service itself.
const ServiceName = "stats_service"

// Ingest results counted in metrics.
const (
	ingestAccepted     = "accepted"
	ingestUnauthorized = "unauthorized"
	ingestMalformed    = "malformed"
	ingestError        = "error"
)

// Server exposes ingestion and the aggregate views over HTTP.
type Server struct {
	store     Store
	agg       *Aggregator
	gate      *auth.Gate
	reporter  telemetry.Reporter
	dashboard *Dashboard
	window    time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// ServerOptions wires a Server. Reporter receives reports for the rejection
// paths of the ingest endpoint; Dashboard is optional.
type ServerOptions struct {
	Store     Store
	Gate      *auth.Gate
	Reporter  telemetry.Reporter
	Dashboard *Dashboard
	Clock     Clock
	Window    time.Duration
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

func NewServer(opts ServerOptions) *Server {
	s := &Server{
		store:     opts.Store,
		agg:       NewAggregator(opts.Store, opts.Clock),
		gate:      opts.Gate,
		reporter:  opts.Reporter,
		dashboard: opts.Dashboard,
		window:    opts.Window,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}

	if s.reporter == nil {
		s.reporter = telemetry.Nop{}
	}

	if s.window <= 0 {
		s.window = DefaultWindow
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Aggregator returns the aggregator backing the read endpoints.
func (s *Server) Aggregator() *Aggregator {
	return s.agg
}

// RegisterRoutes registers the stats API routes with the router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/record_stat", s.recordStat).Methods(http.MethodPost)
	router.HandleFunc("/stats", s.listStats).Methods(http.MethodGet)
	router.HandleFunc("/stats/counts", s.getCounts).Methods(http.MethodGet)
	router.HandleFunc("/stats/series", s.getSeries).Methods(http.MethodGet)

	if s.dashboard != nil {
		router.Handle("/dash/ws", s.dashboard).Methods(http.MethodGet)
	}
}

func (s *Server) recordStat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := s.gate.AuthorizeRequest(r); err != nil {
		s.metrics.CountIngest(ingestUnauthorized)
		telemetry.Since(s.reporter, telemetry.Operation(ServiceName, "record_stat_unauthorized"), start)
		httpx.RespondUnauthorized(w)

		return
	}

	event, err := DecodeEvent(r.Body)
	if err != nil {
		s.metrics.CountIngest(ingestMalformed)
		telemetry.Since(s.reporter, telemetry.Operation(ServiceName, "record_stat_malformed"), start)
		s.logger.Debug("rejected malformed event", "error", err)
		httpx.RespondError(w, http.StatusBadRequest, "Invalid data")

		return
	}

	if _, err := s.store.Append(r.Context(), event.ServiceName, event.ResponseTime); err != nil {
		if errors.Is(err, ErrMalformed) {
			s.metrics.CountIngest(ingestMalformed)
			telemetry.Since(s.reporter, telemetry.Operation(ServiceName, "record_stat_malformed"), start)
			httpx.RespondError(w, http.StatusBadRequest, "Invalid data")

			return
		}

		s.metrics.CountIngest(ingestError)
		telemetry.Since(s.reporter, telemetry.Operation(ServiceName, "record_stat_error"), start)
		s.logger.Error("failed to store event", "error", err)
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	s.metrics.CountIngest(ingestAccepted)
	httpx.RespondJSON(w, http.StatusCreated, map[string]string{"message": "Stat recorded successfully"})
}

// listStats returns every recorded event, newest first.
func (s *Server) listStats(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.Events(r.Context(), time.Time{})
	if err != nil {
		s.logger.Error("failed to list events", "error", err)
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	newest := make([]Event, len(events))
	for i, e := range events {
		newest[len(events)-1-i] = e
	}

	httpx.RespondJSON(w, http.StatusOK, map[string][]Event{"stats": newest})
}

func (s *Server) getCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.agg.CountsByService(r.Context())
	if err != nil {
		s.logger.Error("failed to count events", "error", err)
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]map[string]int{"counts": counts})
}

type seriesResponse struct {
	Window string        `json:"window"`
	Series []SeriesPoint `json:"series"`
}

func (s *Server) getSeries(w http.ResponseWriter, r *http.Request) {
	window := s.window

	if raw := r.URL.Query().Get("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			httpx.RespondError(w, http.StatusBadRequest, ErrInvalidWindow.Error())
			return
		}

		window = d
	}

	series, err := s.agg.ResponseTimeSeries(r.Context(), window)
	if err != nil {
		s.logger.Error("failed to build series", "error", err)
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	httpx.RespondJSON(w, http.StatusOK, seriesResponse{Window: window.String(), Series: series})
}
