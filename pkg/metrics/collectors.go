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

// Package metrics pkg/metrics/collectors.go exposes Prometheus collectors shared by the services.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pantry"

// Report results recorded by the telemetry client.
const (
	ReportSent    = "sent"
	ReportFailed  = "failed"
	ReportDropped = "dropped"
)

// Metrics holds every collector. A nil *Metrics is valid and records nothing,
// which keeps tests and optional wiring simple.
type Metrics struct {
	gatherer prometheus.Gatherer

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	TelemetryReports *prometheus.CounterVec
	TelemetryQueue   prometheus.Gauge
	RecipeOutcomes   *prometheus.CounterVec
	EventsIngested   *prometheus.CounterVec
	DashboardClients prometheus.Gauge
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide collectors registered with the default registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	})

	return defaultMetrics
}

// New creates and registers the collectors with reg.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: gatherer,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests handled, by service, route and status code.",
		}, []string{"service", "route", "code"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "route"}),
		TelemetryReports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telemetry",
			Name:      "reports_total",
			Help:      "Telemetry reports by outcome (sent, failed, dropped).",
		}, []string{"result"}),
		TelemetryQueue: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "telemetry",
			Name:      "queue_depth",
			Help:      "Telemetry reports waiting for delivery.",
		}),
		RecipeOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recipe",
			Name:      "generations_total",
			Help:      "Recipe generations by terminal state and failure kind.",
		}, []string{"state", "kind"}),
		EventsIngested: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "ingest_total",
			Help:      "Telemetry ingest attempts by result.",
		}, []string{"result"}),
		DashboardClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "dashboard_clients",
			Help:      "Connected dashboard websocket clients.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}

	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(service, route, code string, seconds float64) {
	if m == nil {
		return
	}

	m.HTTPRequests.WithLabelValues(service, route, code).Inc()
	m.HTTPDuration.WithLabelValues(service, route).Observe(seconds)
}

func (m *Metrics) CountReport(result string) {
	if m == nil {
		return
	}

	m.TelemetryReports.WithLabelValues(result).Inc()
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}

	m.TelemetryQueue.Set(float64(n))
}

func (m *Metrics) CountRecipe(state, kind string) {
	if m == nil {
		return
	}

	m.RecipeOutcomes.WithLabelValues(state, kind).Inc()
}

func (m *Metrics) CountIngest(result string) {
	if m == nil {
		return
	}

	m.EventsIngested.WithLabelValues(result).Inc()
}

func (m *Metrics) AddDashboardClients(delta int) {
	if m == nil {
		return
	}

	m.DashboardClients.Add(float64(delta))
}
