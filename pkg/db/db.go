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

// Package db pkg/db/db.go provides SQLite persistence for the stats log and
// the ingredient catalog.
package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/geboyr/csc5201-final/pkg/stats"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const busyTimeoutMillis = 5000

const createTablesSQL = `
	-- Append-only telemetry log
	CREATE TABLE IF NOT EXISTS stats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		service_name TEXT NOT NULL,
		timestamp_ns INTEGER NOT NULL,
		response_time REAL NOT NULL
	);

	-- Ingredient catalog; AUTOINCREMENT keeps deleted ids from being reused
	CREATE TABLE IF NOT EXISTS ingredients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_stats_timestamp
		ON stats(timestamp_ns);
	`

// DB is a SQLite database holding both tables. It implements stats.Store
// and catalog.Store.
type DB struct {
	*sql.DB

	clock stats.Clock

	// writeMu serializes stats appends so timestamp clamping and insertion
	// order agree.
	writeMu sync.Mutex
}

// Option configures a DB.
type Option func(*DB)

// WithClock sets the clock used to stamp appended events.
func WithClock(c stats.Clock) Option {
	return func(db *DB) {
		if c != nil {
			db.clock = c
		}
	}
}

// New opens the database at dbPath and initializes the schema.
func New(dbPath string, opts ...Option) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = sqlDB.Close()

		return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
	}

	db := &DB{DB: sqlDB, clock: stats.SystemClock{}}

	for _, opt := range opts {
		opt(db)
	}

	if err := db.initSchema(); err != nil {
		_ = sqlDB.Close()

		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return db, nil
}

// dsn adds a busy timeout to every pooled connection so concurrent writers
// wait for the lock instead of failing.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return path + sep + "_busy_timeout=" + strconv.Itoa(busyTimeoutMillis)
}

// initSchema creates the database tables if they don't exist.
func (db *DB) initSchema() error {
	_, err := db.Exec(createTablesSQL)

	return err
}

func rollbackOnError(tx *sql.Tx, err error) {
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Warn("failed to rollback", "error", rbErr)
		}
	}
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Warn("failed to close rows", "error", err)
	}
}
