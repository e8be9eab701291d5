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

package db

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/geboyr/csc5201-final/pkg/stats"
)

// Append stores one event. The timestamp comes from the database's clock and
// never goes below the newest stored timestamp.
func (db *DB) Append(ctx context.Context, serviceName string, responseTime float64) (_ stats.Event, err error) {
	if err = stats.ValidateEvent(serviceName, responseTime); err != nil {
		return stats.Event{}, err
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats.Event{}, fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}

	defer func() { rollbackOnError(tx, err) }()

	ts := db.clock.Now().UTC().UnixNano()

	var last int64

	if err = tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(timestamp_ns), 0) FROM stats").Scan(&last); err != nil {
		return stats.Event{}, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	if ts < last {
		ts = last
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO stats (service_name, timestamp_ns, response_time) VALUES (?, ?, ?)",
		serviceName, ts, responseTime)
	if err != nil {
		return stats.Event{}, fmt.Errorf("%w stat: %w", ErrFailedToInsert, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return stats.Event{}, fmt.Errorf("%w stat: %w", ErrFailedToInsert, err)
	}

	if err = tx.Commit(); err != nil {
		return stats.Event{}, fmt.Errorf("%w stat: %w", ErrFailedToInsert, err)
	}

	return stats.Event{
		ID:           id,
		ServiceName:  serviceName,
		Timestamp:    time.Unix(0, ts).UTC(),
		ResponseTime: responseTime,
	}, nil
}

// Events returns events stamped at or after since, in insertion order.
// A zero since returns the whole log.
func (db *DB) Events(ctx context.Context, since time.Time) ([]stats.Event, error) {
	cutoff := int64(math.MinInt64)
	if !since.IsZero() {
		cutoff = since.UnixNano()
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, service_name, timestamp_ns, response_time
		FROM stats
		WHERE timestamp_ns >= ?
		ORDER BY id`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w stats: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	events := make([]stats.Event, 0)

	for rows.Next() {
		var (
			e  stats.Event
			ts int64
		)

		if err := rows.Scan(&e.ID, &e.ServiceName, &ts, &e.ResponseTime); err != nil {
			return nil, fmt.Errorf("%w stat: %w", ErrFailedToScan, err)
		}

		e.Timestamp = time.Unix(0, ts).UTC()
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w stats: %w", ErrFailedToQuery, err)
	}

	return events, nil
}

func (db *DB) Count(ctx context.Context) (int, error) {
	var n int

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stats").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w stats: %w", ErrFailedToQuery, err)
	}

	return n, nil
}
