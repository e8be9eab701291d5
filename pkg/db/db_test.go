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
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/geboyr/csc5201-final/pkg/catalog"
	"github.com/geboyr/csc5201-final/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ stats.Store   = (*DB)(nil)
	_ catalog.Store = (*DB)(nil)
)

func newTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"), opts...)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return db
}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *stepClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

func TestStatsAppendAndEvents(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC)
	clock := &stepClock{now: base}
	db := newTestDB(t, WithClock(clock))

	first, err := db.Append(ctx, "a", 0.25)
	require.NoError(t, err)
	assert.Equal(t, base, first.Timestamp)

	// A clock step backwards is clamped to the newest stored timestamp.
	clock.set(base.Add(-time.Minute))

	second, err := db.Append(ctx, "b", 0.5)
	require.NoError(t, err)
	assert.Equal(t, base, second.Timestamp)
	assert.Greater(t, second.ID, first.ID)

	clock.set(base.Add(time.Hour))

	_, err = db.Append(ctx, "a", 1)
	require.NoError(t, err)

	all, err := db.Events(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ServiceName)
	assert.InDelta(t, 0.25, all[0].ResponseTime, 1e-9)

	recent, err := db.Events(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, base.Add(time.Hour), recent[0].Timestamp)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStatsAppendRejectsMalformed(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_, err := db.Append(ctx, "", 1)
	require.ErrorIs(t, err, stats.ErrMalformed)

	_, err = db.Append(ctx, "a", -1)
	require.ErrorIs(t, err, stats.ErrMalformed)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStatsAggregatorOverSQLite(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	for _, name := range []string{"a", "b", "a"} {
		_, err := db.Append(ctx, name, 0.1)
		require.NoError(t, err)
	}

	view, err := stats.NewAggregator(db, nil).Snapshot(ctx, stats.DefaultWindow)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, view.Counts)
	assert.Len(t, view.Series, 3)
}

func TestStatsConcurrentAppendMonotonic(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 10; j++ {
				_, err := db.Append(ctx, "svc", 0.01)
				assert.NoError(t, err)
			}
		}()
	}

	wg.Wait()

	events, err := db.Events(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 40)

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Timestamp.Before(events[i-1].Timestamp))
	}
}

func TestIngredientsLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	egg, err := db.Add(ctx, "egg")
	require.NoError(t, err)
	flour, err := db.Add(ctx, "flour")
	require.NoError(t, err)

	items, err := db.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []catalog.Ingredient{{ID: 1, Name: "egg"}, {ID: 2, Name: "flour"}}, items)

	require.NoError(t, db.Delete(ctx, egg.ID))

	err = db.Delete(ctx, egg.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	require.NoError(t, db.Delete(ctx, flour.ID))

	// Ids are never reused, even once the table is empty.
	milk, err := db.Add(ctx, "milk")
	require.NoError(t, err)
	assert.Equal(t, int64(3), milk.ID)

	_, err = db.Add(ctx, " ")
	assert.ErrorIs(t, err, catalog.ErrNameRequired)
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	db, err := New(path)
	require.NoError(t, err)

	_, err = db.Add(ctx, "egg")
	require.NoError(t, err)
	_, err = db.Append(ctx, "a", 1)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)

	defer db.Close()

	items, err := db.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
