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
	"fmt"
	"sort"
	"time"
)

// Aggregator derives the dashboard series from a Store. Every call is a full
// scan of the log; nothing is cached between calls.
type Aggregator struct {
	store Store
	clock Clock
}

// NewAggregator creates an Aggregator. A nil clock uses the wall clock.
func NewAggregator(store Store, clock Clock) *Aggregator {
	if clock == nil {
		clock = SystemClock{}
	}

	return &Aggregator{store: store, clock: clock}
}

// CountsByService returns the number of events per service over the full history.
func (a *Aggregator) CountsByService(ctx context.Context) (map[string]int, error) {
	events, err := a.store.Events(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	counts := make(map[string]int)
	for _, e := range events {
		counts[e.ServiceName]++
	}

	return counts, nil
}

// ResponseTimeSeries returns events with timestamp >= now-window ordered by
// timestamp ascending, ties broken by insertion order.
func (a *Aggregator) ResponseTimeSeries(ctx context.Context, window time.Duration) ([]SeriesPoint, error) {
	if window < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWindow, window)
	}

	cutoff := a.clock.Now().Add(-window)

	events, err := a.store.Events(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	recent := make([]Event, 0, len(events))
	for _, e := range events {
		if !e.Timestamp.Before(cutoff) {
			recent = append(recent, e)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].Timestamp.Equal(recent[j].Timestamp) {
			return recent[i].Timestamp.Before(recent[j].Timestamp)
		}

		return recent[i].ID < recent[j].ID
	})

	points := make([]SeriesPoint, 0, len(recent))
	for _, e := range recent {
		points = append(points, SeriesPoint{
			ServiceName:  e.ServiceName,
			Timestamp:    e.Timestamp,
			ResponseTime: e.ResponseTime,
		})
	}

	return points, nil
}

// Snapshot computes both series at once.
func (a *Aggregator) Snapshot(ctx context.Context, window time.Duration) (*View, error) {
	counts, err := a.CountsByService(ctx)
	if err != nil {
		return nil, err
	}

	series, err := a.ResponseTimeSeries(ctx, window)
	if err != nil {
		return nil, err
	}

	return &View{
		Counts:      counts,
		Series:      series,
		Window:      window.String(),
		GeneratedAt: a.clock.Now().UTC(),
	}, nil
}
