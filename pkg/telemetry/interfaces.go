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

// Package telemetry pkg/telemetry/interfaces.go defines the best-effort latency reporting side channel.
package telemetry

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock_telemetry.go -package=telemetry github.com/geboyr/csc5201-final/pkg/telemetry Reporter,Sink

// Event is the payload delivered to the stats service.
type Event struct {
	ServiceName  string  `json:"service_name"`
	ResponseTime float64 `json:"response_time"` // seconds
}

// Reporter records how long an operation took. Implementations must never
// block the caller on delivery and must never surface delivery failures.
type Reporter interface {
	Report(name string, elapsed time.Duration)
}

// Sink delivers a single event and returns the outcome. Callers that must stay
// unaffected by telemetry log the error instead of propagating it.
type Sink interface {
	Send(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, event Event) error

func (f SinkFunc) Send(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(name string, elapsed time.Duration)

func (f ReporterFunc) Report(name string, elapsed time.Duration) {
	f(name, elapsed)
}

// Nop discards every report.
type Nop struct{}

func (Nop) Report(string, time.Duration) {}

// Since reports the time elapsed from start under name.
func Since(r Reporter, name string, start time.Time) {
	r.Report(name, time.Since(start))
}

// Operation builds the "<service>.<operation>" name used for reports.
func Operation(service, op string) string {
	return service + "." + op
}

// NewEvent converts an elapsed duration into the wire event. Negative
// durations are clamped to zero.
func NewEvent(name string, elapsed time.Duration) Event {
	if elapsed < 0 {
		elapsed = 0
	}

	return Event{ServiceName: name, ResponseTime: elapsed.Seconds()}
}
