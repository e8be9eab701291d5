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

package httpx

import (
	"log/slog"
	"net/http"

	"github.com/geboyr/csc5201-final/pkg/metrics"
	"github.com/gorilla/mux"
)

// MetricsPath serves the Prometheus exposition on every service.
const MetricsPath = "/metrics"

// NewRouter returns a router with the shared middleware chain and the
// metrics endpoint already registered.
func NewRouter(service string, logger *slog.Logger, m *metrics.Metrics) *mux.Router {
	router := mux.NewRouter()

	router.Use(RequestID, Recover(logger), AccessLog(logger, service, m), CommonMiddleware)
	router.Handle(MetricsPath, m.Handler()).Methods(http.MethodGet)

	return router
}
