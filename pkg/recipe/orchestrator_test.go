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
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/geboyr/csc5201-final/pkg/catalog"
	"github.com/geboyr/csc5201-final/pkg/metrics"
	"github.com/geboyr/csc5201-final/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGenerateCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := NewMockIngredientSource(ctrl)
	provider := NewMockProvider(ctrl)
	reporter := telemetry.NewMockReporter(ctrl)

	source.EXPECT().ListIngredients(gomock.Any()).Return([]catalog.Ingredient{
		{ID: 1, Name: "egg"},
		{ID: 2, Name: "flour"},
	}, nil)

	provider.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "egg, flour.")
			return "  Pancakes\n", nil
		})

	reporter.EXPECT().Report(OperationName, gomock.Any()).Times(1)

	o := NewOrchestrator(OrchestratorOptions{Source: source, Provider: provider, Reporter: reporter})

	res := o.Generate(context.Background())

	require.NoError(t, res.Err)
	assert.Equal(t, StateCompleted, res.State)
	assert.Equal(t, "Pancakes", res.Recipe)
	assert.Equal(t, "Pancakes", res.Message())
	assert.Equal(t, []string{"egg", "flour"}, res.Ingredients)
	assert.Empty(t, res.Kind())
	assert.Equal(t, []State{StateIdle, StateFetchingIngredients, StateComposing, StateCompleted}, res.Transitions)
}

func TestGenerateUpstreamUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := NewMockIngredientSource(ctrl)
	provider := NewMockProvider(ctrl)
	reporter := telemetry.NewMockReporter(ctrl)

	source.EXPECT().ListIngredients(gomock.Any()).Return(nil, errors.New("connection refused"))
	reporter.EXPECT().Report(OperationName, gomock.Any()).Times(1)

	o := NewOrchestrator(OrchestratorOptions{Source: source, Provider: provider, Reporter: reporter})

	res := o.Generate(context.Background())

	assert.Equal(t, StateFailed, res.State)
	assert.ErrorIs(t, res.Err, ErrUpstreamUnavailable)
	assert.Equal(t, KindUpstreamUnavailable, res.Kind())
	assert.Empty(t, res.Recipe)
	assert.True(t, strings.HasPrefix(res.Message(), catalog.RecipeErrorPrefix))
	assert.Contains(t, res.Message(), "connection refused")
	assert.Equal(t, []State{StateIdle, StateFetchingIngredients, StateFailed}, res.Transitions)
}

func TestGenerateProviderError(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		err     error
		wantErr error
	}{
		{name: "provider failure", err: errors.New("429 rate limited"), wantErr: ErrProviderError},
		{name: "empty content", text: "  \n", wantErr: ErrEmptyCompletion},
		{name: "deadline", err: context.DeadlineExceeded, wantErr: context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := NewMockIngredientSource(ctrl)
			provider := NewMockProvider(ctrl)
			reporter := telemetry.NewMockReporter(ctrl)

			source.EXPECT().ListIngredients(gomock.Any()).Return([]catalog.Ingredient{{ID: 1, Name: "egg"}}, nil)
			provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(tt.text, tt.err)
			reporter.EXPECT().Report(OperationName, gomock.Any()).Times(1)

			o := NewOrchestrator(OrchestratorOptions{Source: source, Provider: provider, Reporter: reporter})

			res := o.Generate(context.Background())

			assert.Equal(t, StateFailed, res.State)
			assert.ErrorIs(t, res.Err, ErrProviderError)
			assert.ErrorIs(t, res.Err, tt.wantErr)
			assert.Equal(t, KindProviderError, res.Kind())
			assert.Equal(t, []string{"egg"}, res.Ingredients)
			assert.Equal(t, []State{StateIdle, StateFetchingIngredients, StateComposing, StateFailed}, res.Transitions)
		})
	}
}

func TestGenerateEmptyCatalogStillComposes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := NewMockIngredientSource(ctrl)
	provider := NewMockProvider(ctrl)

	source.EXPECT().ListIngredients(gomock.Any()).Return([]catalog.Ingredient{}, nil)
	provider.EXPECT().Complete(gomock.Any(), BuildPrompt(nil)).Return("Water", nil)

	res := NewOrchestrator(OrchestratorOptions{Source: source, Provider: provider}).Generate(context.Background())

	assert.Equal(t, StateCompleted, res.State)
	assert.Empty(t, res.Ingredients)
}

func TestGenerateFetchTimeoutIncludedInElapsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := NewMockIngredientSource(ctrl)
	provider := NewMockProvider(ctrl)

	source.EXPECT().ListIngredients(gomock.Any()).DoAndReturn(
		func(ctx context.Context) ([]catalog.Ingredient, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	var reported time.Duration

	reporter := telemetry.ReporterFunc(func(name string, elapsed time.Duration) {
		assert.Equal(t, OperationName, name)
		reported = elapsed
	})

	const timeout = 30 * time.Millisecond

	o := NewOrchestrator(OrchestratorOptions{
		Source:       source,
		Provider:     provider,
		Reporter:     reporter,
		FetchTimeout: timeout,
	})

	res := o.Generate(context.Background())

	assert.ErrorIs(t, res.Err, ErrUpstreamUnavailable)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, res.Elapsed, timeout)
	assert.Equal(t, res.Elapsed, reported)
}

func TestGenerateCountsOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := metrics.New(prometheus.NewRegistry(), nil)

	source := NewMockIngredientSource(ctrl)
	source.EXPECT().ListIngredients(gomock.Any()).Return(nil, errors.New("down"))

	o := NewOrchestrator(OrchestratorOptions{Source: source, Provider: NewMockProvider(ctrl), Metrics: m})
	o.Generate(context.Background())

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.RecipeOutcomes.WithLabelValues("failed", KindUpstreamUnavailable)), 0)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "fetching_ingredients", StateFetchingIngredients.String())
	assert.Equal(t, "composing", StateComposing.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "state(9)", State(9).String())

	assert.True(t, StateCompleted.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateComposing.Terminal())
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]string{"egg", "flour", "milk"})

	assert.True(t, strings.HasSuffix(prompt, "The ingredients I have are: egg, flour, milk."))
	assert.Contains(t, prompt, "must not use any ingredient that is not on my list")
}

func TestErrorKind(t *testing.T) {
	assert.Empty(t, ErrorKind(nil))
	assert.Equal(t, KindUpstreamUnavailable, ErrorKind(ErrUpstreamUnavailable))
	assert.Equal(t, KindProviderError, ErrorKind(ErrProviderError))
}
