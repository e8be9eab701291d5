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
	"time"
)

//go:generate mockgen -destination=mock_stats.go -package=stats github.com/geboyr/csc5201-final/pkg/stats Store

// Store is the append-only telemetry log. There is no update or delete.
type Store interface {
	// Append validates and records one event, assigning its timestamp.
	// Timestamps never decrease in insertion order.
	Append(ctx context.Context, serviceName string, responseTime float64) (Event, error)

	// Events returns every event with Timestamp >= since in insertion order.
	// The zero time returns the full history.
	Events(ctx context.Context, since time.Time) ([]Event, error)

	// Count returns the number of stored events.
	Count(ctx context.Context) (int, error)
}
