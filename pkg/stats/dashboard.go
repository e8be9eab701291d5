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

package stats

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/geboyr/csc5201-final/pkg/metrics"
	"github.com/gorilla/websocket"
)

const (
	// DefaultRefreshInterval matches the dashboard's one-minute update cadence.
	DefaultRefreshInterval = time.Minute

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientSendSize = 4
)

// Dashboard periodically recomputes the aggregate view and pushes it to
// connected websocket clients.
type Dashboard struct {
	agg      *Aggregator
	window   time.Duration
	interval time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*dashClient]struct{}
	current *View

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type dashClient struct {
	conn *websocket.Conn
	send chan *View
}

// DashboardOptions configures a Dashboard. Zero values take the defaults.
type DashboardOptions struct {
	Window   time.Duration
	Interval time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

func NewDashboard(agg *Aggregator, opts DashboardOptions) *Dashboard {
	d := &Dashboard{
		agg:      agg,
		window:   opts.Window,
		interval: opts.Interval,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*dashClient]struct{}),
		done:    make(chan struct{}),
	}

	if d.window <= 0 {
		d.window = DefaultWindow
	}

	if d.interval <= 0 {
		d.interval = DefaultRefreshInterval
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}

	return d
}

// Start computes the first snapshot and launches the refresh loop.
func (d *Dashboard) Start(ctx context.Context) error {
	if _, err := d.Refresh(ctx); err != nil {
		d.logger.Warn("initial dashboard refresh failed", "error", err)
	}

	d.wg.Add(1)

	go d.run(ctx)

	return nil
}

// Stop ends the refresh loop and disconnects every client.
func (d *Dashboard) Stop(_ context.Context) error {
	d.stopOnce.Do(func() {
		close(d.done)
	})

	d.wg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()

	for c := range d.clients {
		d.removeLocked(c)
	}

	return nil
}

func (d *Dashboard) run(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.done:
			return
		case <-ticker.C:
			if _, err := d.Refresh(ctx); err != nil {
				d.logger.Warn("dashboard refresh failed", "error", err)
			}
		}
	}
}

// Refresh recomputes the view and broadcasts it.
func (d *Dashboard) Refresh(ctx context.Context) (*View, error) {
	view, err := d.agg.Snapshot(ctx, d.window)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.current = view

	for c := range d.clients {
		select {
		case c.send <- view:
		default:
			// A client that cannot keep up misses this refresh.
			d.logger.Debug("dashboard client slow, skipping refresh")
		}
	}
	d.mu.Unlock()

	return view, nil
}

// Current returns the most recent view, or nil before the first refresh.
func (d *Dashboard) Current() *View {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.current
}

// ServeHTTP upgrades the request and streams views to the client.
func (d *Dashboard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &dashClient{conn: conn, send: make(chan *View, clientSendSize)}

	view := d.Current()
	if view == nil {
		if view, err = d.agg.Snapshot(r.Context(), d.window); err != nil {
			d.logger.Warn("dashboard snapshot failed", "error", err)
		}
	}

	if view != nil {
		c.send <- view
	}

	d.mu.Lock()
	d.clients[c] = struct{}{}
	d.mu.Unlock()

	d.metrics.AddDashboardClients(1)

	go d.writePump(c)
	d.readPump(c)
}

// readPump discards client messages and detects disconnects.
func (d *Dashboard) readPump(c *dashClient) {
	defer d.remove(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (*Dashboard) writePump(c *dashClient) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case view, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(view); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (d *Dashboard) remove(c *dashClient) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.removeLocked(c)
}

func (d *Dashboard) removeLocked(c *dashClient) {
	if _, ok := d.clients[c]; !ok {
		return
	}

	delete(d.clients, c)
	close(c.send)

	d.metrics.AddDashboardClients(-1)
}
