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

package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/geboyr/csc5201-final/pkg/auth"
	"github.com/geboyr/csc5201-final/pkg/httpx"
	"github.com/geboyr/csc5201-final/pkg/telemetry"
	"github.com/gorilla/mux"
)

const (
	// ServiceName tags reports emitted by the catalog service.
	ServiceName = "ingredient_service"

	// DefaultUIPath is where form deletes redirect to. The page is served by
	// the front end, not by this service.
	DefaultUIPath = "/ui"

	// RecipeErrorPrefix starts the recipe text returned when generation fails.
	RecipeErrorPrefix = "Error generating recipe: "

	maxBodyBytes = 16 << 10
)

var errNoRecipeService = errors.New("recipe service not configured")

// Server exposes the ingredient CRUD API and the outward recipe endpoint.
type Server struct {
	store    Store
	gate     *auth.Gate
	reporter telemetry.Reporter
	recipes  RecipeGenerator
	uiPath   string
	logger   *slog.Logger
}

// ServerOptions wires a Server. Recipes may be nil, in which case /recipe
// always answers with an error string.
type ServerOptions struct {
	Store    Store
	Gate     *auth.Gate
	Reporter telemetry.Reporter
	Recipes  RecipeGenerator
	UIPath   string
	Logger   *slog.Logger
}

func NewServer(opts ServerOptions) *Server {
	s := &Server{
		store:    opts.Store,
		gate:     opts.Gate,
		reporter: opts.Reporter,
		recipes:  opts.Recipes,
		uiPath:   opts.UIPath,
		logger:   opts.Logger,
	}

	if s.reporter == nil {
		s.reporter = telemetry.Nop{}
	}

	if s.uiPath == "" {
		s.uiPath = DefaultUIPath
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// RegisterRoutes registers the catalog routes with the router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ingredients", s.listIngredients).Methods(http.MethodGet)
	router.HandleFunc("/ingredients", s.addIngredient).Methods(http.MethodPost)
	router.HandleFunc("/ingredients/{id:[0-9]+}", s.deleteIngredient).Methods(http.MethodDelete)
	router.HandleFunc("/ingredients/{id:[0-9]+}", s.formDeleteIngredient).Methods(http.MethodPost)
	router.HandleFunc("/recipe", s.generateRecipe).Methods(http.MethodPost)
}

func (s *Server) report(op string, start time.Time) {
	telemetry.Since(s.reporter, telemetry.Operation(ServiceName, op), start)
}

func (s *Server) listIngredients(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := s.gate.AuthorizeRequest(r); err != nil {
		s.report("list_unauthorized", start)
		httpx.RespondUnauthorized(w)

		return
	}

	items, err := s.store.List(r.Context())
	if err != nil {
		s.report("list_error", start)
		s.logger.Error("failed to list ingredients", "error", err)
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	s.report("list", start)
	httpx.RespondJSON(w, http.StatusOK, ListResponse{Ingredients: items})
}

func (s *Server) addIngredient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := s.gate.AuthorizeRequest(r); err != nil {
		s.report("add_unauthorized", start)
		httpx.RespondUnauthorized(w)

		return
	}

	var req AddRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.report("add_invalid", start)
		httpx.RespondError(w, http.StatusBadRequest, "Name not provided")

		return
	}

	item, err := s.store.Add(r.Context(), req.Name)
	if errors.Is(err, ErrNameRequired) {
		s.report("add_invalid", start)
		httpx.RespondError(w, http.StatusBadRequest, "Name not provided")

		return
	}

	if err != nil {
		s.report("add_error", start)
		s.logger.Error("failed to add ingredient", "error", err)
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	s.report("add", start)
	httpx.RespondJSON(w, http.StatusCreated, AddResponse{Message: "Ingredient added", ID: item.ID})
}

func (s *Server) deleteIngredient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := s.gate.AuthorizeRequest(r); err != nil {
		s.report("delete_unauthorized", start)
		httpx.RespondUnauthorized(w)

		return
	}

	if !s.delete(w, r, start) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// formDeleteIngredient serves the HTML form's delete button, which cannot
// send the credential header.
func (s *Server) formDeleteIngredient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !s.delete(w, r, start) {
		return
	}

	http.Redirect(w, r, s.uiPath, http.StatusSeeOther)
}

// delete removes the ingredient named by the route and writes the error
// response itself when it reports false.
func (s *Server) delete(w http.ResponseWriter, r *http.Request, start time.Time) bool {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.report("delete_not_found", start)
		httpx.RespondError(w, http.StatusNotFound, "Not found")

		return false
	}

	err = s.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		s.report("delete_not_found", start)
		httpx.RespondError(w, http.StatusNotFound, "Not found")

		return false
	}

	if err != nil {
		s.report("delete_error", start)
		s.logger.Error("failed to delete ingredient", "id", id, "error", err)
		httpx.RespondError(w, http.StatusInternalServerError, "Internal server error")

		return false
	}

	s.report("delete", start)

	return true
}

// generateRecipe never answers with a non-2xx status: failures are folded
// into the recipe text.
func (s *Server) generateRecipe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var (
		recipe string
		err    error
	)

	if s.recipes == nil {
		err = errNoRecipeService
	} else {
		recipe, err = s.recipes.GenerateRecipe(r.Context())
	}

	if err != nil {
		s.logger.Warn("recipe generation failed", "error", err)
		recipe = RecipeErrorPrefix + err.Error()
	}

	s.report("generate_recipe", start)
	httpx.RespondJSON(w, http.StatusOK, RecipeResponse{Recipe: recipe})
}
