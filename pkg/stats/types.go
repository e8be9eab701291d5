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

// Package stats pkg/stats/types.go records telemetry events and derives the dashboard series.
package stats

import (
	"time"
)

// DefaultWindow is the trailing interval charted by the dashboard.
const DefaultWindow = 6 * time.Hour

// Event is a recorded observation. Timestamp is assigned by the store on
// insert; ID is the insertion sequence and breaks timestamp ties.
type Event struct {
	ID           int64     `json:"id"`
	ServiceName  string    `json:"service_name"`
	Timestamp    time.Time `json:"timestamp"`
	ResponseTime float64   `json:"response_time"`
}

// SeriesPoint is one sample of the windowed response-time series.
type SeriesPoint struct {
	ServiceName  string    `json:"service_name"`
	Timestamp    time.Time `json:"timestamp"`
	ResponseTime float64   `json:"response_time"`
}

// View is the derived aggregate shown on the dashboard. It is recomputed from
// the full event history on every read.
type View struct {
	Counts      map[string]int `json:"counts"`
	Series      []SeriesPoint  `json:"series"`
	Window      string         `json:"window"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Clock supplies the current time. Stores and the aggregator take one so tests
// can pin "now".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
