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

// Package recipe pkg/recipe/orchestrator.go generates a recipe from the
// current catalog through an external completion provider.
package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/geboyr/csc5201-final/pkg/catalog"
	"github.com/geboyr/csc5201-final/pkg/metrics"
	"github.com/geboyr/csc5201-final/pkg/telemetry"
)

const (
	// ServiceName tags reports emitted by the recipe service.
	ServiceName = "recipe_service"

	defaultFetchTimeout   = 10 * time.Second
	defaultComposeTimeout = 60 * time.Second
)

// OperationName is the telemetry tag of one orchestration run.
var OperationName = telemetry.Operation(ServiceName, "generate_recipe")

// State is a step of one orchestration run.
type State int

const (
	StateIdle State = iota
	StateFetchingIngredients
	StateComposing
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingIngredients:
		return "fetching_ingredients"
	case StateComposing:
		return "composing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Result is the outcome of one run. Exactly one of Recipe and Err is set once
// State is terminal.
type Result struct {
	State       State
	Recipe      string
	Ingredients []string
	Err         error
	Elapsed     time.Duration
	Transitions []State
}

// Kind returns the failure kind, or "" for a completed run.
func (r *Result) Kind() string {
	return ErrorKind(r.Err)
}

// Message is the text shown to the user: the recipe, or a descriptive error.
func (r *Result) Message() string {
	if r.Err != nil {
		return catalog.RecipeErrorPrefix + r.Err.Error()
	}

	return r.Recipe
}

func (r *Result) enter(s State) {
	r.State = s
	r.Transitions = append(r.Transitions, s)
}

func (r *Result) fail(err error) {
	r.Err = err
	r.enter(StateFailed)
}

// Orchestrator runs the fetch-then-compose sequence. Neither leg is retried.
type Orchestrator struct {
	source         IngredientSource
	provider       Provider
	reporter       telemetry.Reporter
	metrics        *metrics.Metrics
	logger         *slog.Logger
	fetchTimeout   time.Duration
	composeTimeout time.Duration
}

// OrchestratorOptions wires an Orchestrator. Zero timeouts take the defaults.
type OrchestratorOptions struct {
	Source         IngredientSource
	Provider       Provider
	Reporter       telemetry.Reporter
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	FetchTimeout   time.Duration
	ComposeTimeout time.Duration
}

func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	o := &Orchestrator{
		source:         opts.Source,
		provider:       opts.Provider,
		reporter:       opts.Reporter,
		metrics:        opts.Metrics,
		logger:         opts.Logger,
		fetchTimeout:   opts.FetchTimeout,
		composeTimeout: opts.ComposeTimeout,
	}

	if o.reporter == nil {
		o.reporter = telemetry.Nop{}
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	if o.fetchTimeout <= 0 {
		o.fetchTimeout = defaultFetchTimeout
	}

	if o.composeTimeout <= 0 {
		o.composeTimeout = defaultComposeTimeout
	}

	return o
}

// Generate runs one orchestration. It never returns an error; failures are
// carried in the Result. The run is reported exactly once on reaching a
// terminal state, with the wall-clock time of every leg attempted.
func (o *Orchestrator) Generate(ctx context.Context) *Result {
	start := time.Now()
	res := &Result{State: StateIdle, Transitions: []State{StateIdle}}

	defer func() {
		res.Elapsed = time.Since(start)
		o.reporter.Report(OperationName, res.Elapsed)
		o.metrics.CountRecipe(res.State.String(), res.Kind())

		if res.Err != nil {
			o.logger.Warn("recipe generation failed",
				"kind", res.Kind(), "elapsed", res.Elapsed, "error", res.Err)
		}
	}()

	res.enter(StateFetchingIngredients)

	items, err := o.fetch(ctx)
	if err != nil {
		res.fail(fmt.Errorf("%w: failed to fetch ingredients: %w", ErrUpstreamUnavailable, err))
		return res
	}

	res.Ingredients = catalog.Names(items)
	res.enter(StateComposing)

	text, err := o.compose(ctx, BuildPrompt(res.Ingredients))
	if err != nil {
		res.fail(fmt.Errorf("%w: %w", ErrProviderError, err))
		return res
	}

	res.Recipe = text
	res.enter(StateCompleted)

	return res
}

func (o *Orchestrator) fetch(ctx context.Context) ([]catalog.Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
	defer cancel()

	return o.source.ListIngredients(ctx)
}

func (o *Orchestrator) compose(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.composeTimeout)
	defer cancel()

	text, err := o.provider.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
