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

// cmd/stats/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/geboyr/csc5201-final/pkg/auth"
	"github.com/geboyr/csc5201-final/pkg/config"
	"github.com/geboyr/csc5201-final/pkg/db"
	"github.com/geboyr/csc5201-final/pkg/httpx"
	"github.com/geboyr/csc5201-final/pkg/lifecycle"
	"github.com/geboyr/csc5201-final/pkg/logging"
	"github.com/geboyr/csc5201-final/pkg/metrics"
	"github.com/geboyr/csc5201-final/pkg/stats"
	"github.com/geboyr/csc5201-final/pkg/telemetry"
	"github.com/geboyr/csc5201-final/pkg/tracing"
)

func main() {
	configPath := flag.String("config", "", "Path to optional JSON config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("stats service failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.DefaultStatsConfig()
	if err := config.Load(configPath, &cfg); err != nil {
		return err
	}

	logger := logging.New(stats.ServiceName, cfg.Log)
	slog.SetDefault(logger)

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, stats.ServiceName, cfg.OTLPEndpoint)
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
		logger.Warn("VALID_INCOMING_API_KEYS is empty; every ingest request will be rejected")
	}

	store, closeStore, err := openStore(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// The service reports its own rejections straight into its store.
	reporter := telemetry.NewClient(stats.LocalSink(store),
		telemetry.WithTimeout(cfg.TelemetryTimeout.Std()),
		telemetry.WithQueueSize(cfg.TelemetryQueue),
		telemetry.WithLogger(logger),
		telemetry.WithMetrics(m),
	)

	dashboard := stats.NewDashboard(stats.NewAggregator(store, nil), stats.DashboardOptions{
		Window:   cfg.Window.Std(),
		Interval: cfg.RefreshInterval.Std(),
		Logger:   logger,
		Metrics:  m,
	})

	server := stats.NewServer(stats.ServerOptions{
		Store:     store,
		Gate:      gate,
		Reporter:  reporter,
		Dashboard: dashboard,
		Window:    cfg.Window.Std(),
		Logger:    logger,
		Metrics:   m,
	})

	router := httpx.NewRouter(stats.ServiceName, logger, m)
	server.RegisterRoutes(router)

	return lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
		ListenAddr:      cfg.ListenAddr,
		HealthAddr:      cfg.HealthAddr,
		ServiceName:     stats.ServiceName,
		Handler:         tracing.WrapHandler(router, stats.ServiceName),
		Services:        []lifecycle.Service{reporter, dashboard},
		MaxConns:        cfg.MaxConns,
		ShutdownTimeout: cfg.ShutdownTimeout.Std(),
		Logger:          logger,
	})
}

func openStore(path string, logger *slog.Logger) (stats.Store, func(), error) {
	if path == "" {
		logger.Warn("DB_PATH not set; events are kept in memory only")

		return stats.NewMemoryStore(nil), func() {}, nil
	}

	database, err := db.New(path)
	if err != nil {
		return nil, nil, err
	}

	return database, func() {
		if err := database.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}, nil
}
