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

package recipe

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/geboyr/csc5201-final/pkg/auth"
	"github.com/geboyr/csc5201-final/pkg/httpx"
	"github.com/geboyr/csc5201-final/pkg/telemetry"
	"github.com/gorilla/mux"
)

// GeneratePath is the recipe service's generation route.
const GeneratePath = "/generate_recipe"

// Status values of GenerateResponse.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// GenerateResponse is the body of POST /generate_recipe. Failures still
// answer 200; Status and Error tell them apart from a recipe.
type GenerateResponse struct {
	Recipe string `json:"recipe"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Server exposes the orchestrator over HTTP.
type Server struct {
	orchestrator *Orchestrator
	gate         *auth.Gate
	reporter     telemetry.Reporter
	logger       *slog.Logger
}

func NewServer(orchestrator *Orchestrator, gate *auth.Gate, reporter telemetry.Reporter, logger *slog.Logger) *Server {
	if reporter == nil {
		reporter = telemetry.Nop{}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		orchestrator: orchestrator,
		gate:         gate,
		reporter:     reporter,
		logger:       logger,
	}
}

// RegisterRoutes registers the recipe routes with the router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(GeneratePath, s.generateRecipe).Methods(http.MethodPost)
}

func (s *Server) generateRecipe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := s.gate.AuthorizeRequest(r); err != nil {
		telemetry.Since(s.reporter, telemetry.Operation(ServiceName, "generate_recipe_unauthorized"), start)
		httpx.RespondUnauthorized(w)

		return
	}

	res := s.orchestrator.Generate(r.Context())

	resp := GenerateResponse{Recipe: res.Message(), Status: StatusCompleted}
	if res.Err != nil {
		resp.Status = StatusFailed
		resp.Error = res.Kind()
	}

	httpx.RespondJSON(w, http.StatusOK, resp)
}
