/*-
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

// Package lifecycle pkg/lifecycle/server.go runs an HTTP service with its
// background services, health endpoint and signal-driven shutdown.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/netutil"
)

const (
	ShutdownTimeout   = 10 * time.Second
	ReadHeaderTimeout = 10 * time.Second
	IdleTimeout       = 120 * time.Second
)

// Service defines the interface that all background services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions holds configuration for creating a server.
type ServerOptions struct {
	ListenAddr  string
	HealthAddr  string
	ServiceName string
	Handler     http.Handler

	// Services are started in order before the listener opens and stopped in
	// reverse order after it closes.
	Services []Service

	// MaxConns caps concurrent HTTP connections; zero means no cap.
	MaxConns        int
	ShutdownTimeout time.Duration
	Logger          *slog.Logger

	// Listener and HealthListener, when set, are used instead of the
	// addresses.
	Listener       net.Listener
	HealthListener net.Listener
}

// RunServer starts the service and blocks until a signal arrives, ctx is
// canceled or a server fails. It then shuts everything down within the
// shutdown timeout.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("starting service", "service", opts.ServiceName)

	started, err := startServices(ctx, opts.Services)
	if err != nil {
		stopServices(context.Background(), started, logger)

		return fmt.Errorf("failed to start service: %w", err)
	}

	lis, err := listen(opts.Listener, opts.ListenAddr)
	if err != nil {
		stopServices(context.Background(), started, logger)

		return err
	}

	if opts.MaxConns > 0 {
		lis = netutil.LimitListener(lis, opts.MaxConns)
	}

	httpServer := &http.Server{
		Handler:           opts.Handler,
		ReadHeaderTimeout: ReadHeaderTimeout,
		IdleTimeout:       IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	// Create error channel for server errors
	errChan := make(chan error, 2)

	go func() {
		logger.Info("http server listening", "addr", lis.Addr().String())

		if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	var hs *healthServer

	if opts.HealthListener != nil || opts.HealthAddr != "" {
		hlis, err := listen(opts.HealthListener, opts.HealthAddr)
		if err != nil {
			cancel()
			shutdown(httpServer, nil, started, opts.ShutdownTimeout, logger)

			return err
		}

		hs = newHealthServer(opts.ServiceName, logger)

		go func() {
			logger.Info("grpc health server listening", "addr", hlis.Addr().String())

			if err := hs.Serve(hlis); err != nil {
				errChan <- err
			}
		}()
	}

	runErr := waitForShutdown(ctx, errChan, logger)

	cancel()

	if err := shutdown(httpServer, hs, started, opts.ShutdownTimeout, logger); err != nil && runErr == nil {
		runErr = err
	}

	return runErr
}

func listen(lis net.Listener, addr string) (net.Listener, error) {
	if lis != nil {
		return lis, nil
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return l, nil
}

func startServices(ctx context.Context, services []Service) ([]Service, error) {
	started := make([]Service, 0, len(services))

	for _, svc := range services {
		if err := svc.Start(ctx); err != nil {
			return started, err
		}

		started = append(started, svc)
	}

	return started, nil
}

func stopServices(ctx context.Context, services []Service, logger *slog.Logger) error {
	var errs []error

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(ctx); err != nil {
			logger.Error("error during service shutdown", "error", err)

			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func waitForShutdown(ctx context.Context, errChan <-chan error, logger *slog.Logger) error {
	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logger.Info("received signal, initiating shutdown", "signal", sig.String())
	case err := <-errChan:
		logger.Error("server error, initiating shutdown", "error", err)

		return err
	case <-ctx.Done():
		logger.Info("context canceled, initiating shutdown")
	}

	return nil
}

func shutdown(httpServer *http.Server, hs *healthServer, services []Service, timeout time.Duration, logger *slog.Logger) error {
	if timeout <= 0 {
		timeout = ShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error

	if hs != nil {
		hs.Stop(shutdownCtx)
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)

		errs = append(errs, fmt.Errorf("shutdown error: %w", err))
	}

	if err := stopServices(shutdownCtx, services, logger); err != nil {
		errs = append(errs, fmt.Errorf("shutdown error: %w", err))
	}

	logger.Info("service stopped")

	return errors.Join(errs...)
}
