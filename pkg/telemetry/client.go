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

package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/geboyr/csc5201-final/pkg/metrics"
	"golang.org/x/time/rate"
)

const (
	defaultQueueSize      = 1024
	defaultWorkers        = 2
	defaultTimeout        = 2 * time.Second
	defaultFailureLogRate = 10 * time.Second
)

// Client is the fire-and-forget Reporter used by every service. Report only
// enqueues; background workers deliver to the Sink with a short timeout.
// Delivery errors are logged and counted, never returned and never retried.
type Client struct {
	sink    Sink
	queue   *queue
	timeout time.Duration
	workers int
	logger  *slog.Logger
	metrics *metrics.Metrics

	// Failures are logged at warn level at most once per interval.
	failureLog rate.Sometimes

	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// Option configures a Client.
type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithQueueSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.queue = newQueue(n)
		}
	}
}

func WithWorkers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithFailureLogInterval(d time.Duration) Option {
	return func(c *Client) {
		c.failureLog = rate.Sometimes{First: 1, Interval: d}
	}
}

// NewClient creates a Client delivering to sink. Call Start to begin delivery;
// reports made before Start are buffered.
func NewClient(sink Sink, opts ...Option) *Client {
	c := &Client{
		sink:       sink,
		queue:      newQueue(defaultQueueSize),
		timeout:    defaultTimeout,
		workers:    defaultWorkers,
		logger:     slog.Default(),
		failureLog: rate.Sometimes{First: 1, Interval: defaultFailureLogRate},
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Report enqueues a latency observation and returns immediately.
func (c *Client) Report(name string, elapsed time.Duration) {
	if dropped := c.queue.push(NewEvent(name, elapsed)); dropped > 0 {
		for i := 0; i < dropped; i++ {
			c.metrics.CountReport(metrics.ReportDropped)
		}

		c.logger.Debug("telemetry queue full, dropped oldest report", "dropped", dropped)
	}

	c.metrics.SetQueueDepth(c.queue.len())
}

// Record delivers one observation synchronously, bounded by the client timeout,
// and returns the outcome. The caller decides what to do with the error.
func (c *Client) Record(ctx context.Context, name string, elapsed time.Duration) error {
	return c.send(ctx, NewEvent(name, elapsed))
}

// Start launches the delivery workers. It does not block.
func (c *Client) Start(_ context.Context) error {
	c.startOnce.Do(func() {
		for i := 0; i < c.workers; i++ {
			c.wg.Add(1)

			go c.worker()
		}
	})

	return nil
}

// Stop halts the workers and then delivers whatever is still queued until ctx
// expires. Undelivered reports are discarded.
func (c *Client) Stop(ctx context.Context) error {
	c.stopOnce.Do(func() {
		close(c.done)
	})

	c.wg.Wait()

	for {
		if ctx.Err() != nil {
			if n := c.queue.len(); n > 0 {
				c.logger.Warn("discarding undelivered telemetry on shutdown", "pending", n)
			}

			return nil
		}

		e, ok := c.queue.pop()
		if !ok {
			return nil
		}

		c.deliver(ctx, e)
	}
}

func (c *Client) worker() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		case e := <-c.queue.items:
			c.deliver(context.Background(), e)
		}
	}
}

func (c *Client) deliver(ctx context.Context, e Event) {
	if err := c.send(ctx, e); err != nil {
		c.logger.Debug("failed to record stat", "name", e.ServiceName, "error", err)
		c.failureLog.Do(func() {
			c.logger.Warn("failed to record stat", "name", e.ServiceName, "error", err)
		})
	}

	c.metrics.SetQueueDepth(c.queue.len())
}

func (c *Client) send(ctx context.Context, e Event) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.sink.Send(ctx, e); err != nil {
		c.metrics.CountReport(metrics.ReportFailed)

		return err
	}

	c.metrics.CountReport(metrics.ReportSent)

	return nil
}
