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

// cmd/recipe/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/geboyr/csc5201-final/pkg/auth"
	"github.com/geboyr/csc5201-final/pkg/catalog"
	"github.com/geboyr/csc5201-final/pkg/config"
	"github.com/geboyr/csc5201-final/pkg/httpx"
	"github.com/geboyr/csc5201-final/pkg/lifecycle"
	"github.com/geboyr/csc5201-final/pkg/logging"
	"github.com/geboyr/csc5201-final/pkg/metrics"
	"github.com/geboyr/csc5201-final/pkg/recipe"
	"github.com/geboyr/csc5201-final/pkg/telemetry"
	"github.com/geboyr/csc5201-final/pkg/tracing"
)

func main() {
	configPath := flag.String("config", "", "Path to optional JSON config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("recipe service failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.DefaultRecipeConfig()
	if err := config.Load(configPath, &cfg); err != nil {
		return err
	}

	logger := logging.New(recipe.ServiceName, cfg.Log)
	slog.SetDefault(logger)

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, recipe.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}

	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	m := metrics.Default()

	gate := auth.NewGate(cfg.IncomingAPIKeys)
	if gate.Len() == 0 {
		logger.Warn("VALID_INCOMING_API_KEYS is empty; every generation request will be rejected")
	}

	var (
		reporter telemetry.Reporter = telemetry.Nop{}
		services []lifecycle.Service
	)

	if cfg.StatsURL != "" {
		client, err := telemetry.NewHTTPClient(cfg.StatsURL, cfg.OutgoingAPIKey, tracing.Transport(nil),
			telemetry.WithTimeout(cfg.TelemetryTimeout.Std()),
			telemetry.WithQueueSize(cfg.TelemetryQueue),
			telemetry.WithLogger(logger),
			telemetry.WithMetrics(m),
		)
		if err != nil {
			return err
		}

		reporter = client
		services = append(services, client)
	} else {
		logger.Warn("STATS_URL not set; telemetry is disabled")
	}

	source, err := catalog.NewClient(cfg.CatalogURL, cfg.OutgoingAPIKey, tracing.Transport(nil), cfg.FetchTimeout.Std())
	if err != nil {
		return err
	}

	provider := recipe.NewOpenAIProvider(recipe.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.OpenAIModel,
		MaxTokens:   cfg.MaxTokens,
		Temperature: &cfg.Temperature,
		HTTPClient:  &http.Client{Transport: tracing.Transport(nil)},
	})

	orchestrator := recipe.NewOrchestrator(recipe.OrchestratorOptions{
		Source:         source,
		Provider:       provider,
		Reporter:       reporter,
		Metrics:        m,
		Logger:         logger,
		FetchTimeout:   cfg.FetchTimeout.Std(),
		ComposeTimeout: cfg.ComposeTimeout.Std(),
	})

	router := httpx.NewRouter(recipe.ServiceName, logger, m)
	recipe.NewServer(orchestrator, gate, reporter, logger).RegisterRoutes(router)

	return lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
		ListenAddr:      cfg.ListenAddr,
		HealthAddr:      cfg.HealthAddr,
		ServiceName:     recipe.ServiceName,
		Handler:         tracing.WrapHandler(router, recipe.ServiceName),
		Services:        services,
		MaxConns:        cfg.MaxConns,
		ShutdownTimeout: cfg.ShutdownTimeout.Std(),
		Logger:          logger,
	})
}
