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
	"sync"
	"time"
)

// MemoryStore is an in-process Store. Contents are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
	nextID int64
	clock  Clock
}

// NewMemoryStore creates an empty store. A nil clock uses the wall clock.
func NewMemoryStore(clock Clock) *MemoryStore {
	if clock == nil {
		clock = SystemClock{}
	}

	return &MemoryStore{
		events: make([]Event, 0),
		clock:  clock,
	}
}

func (s *MemoryStore) Append(_ context.Context, serviceName string, responseTime float64) (Event, error) {
	if err := ValidateEvent(serviceName, responseTime); err != nil {
		return Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.clock.Now().UTC()
	if n := len(s.events); n > 0 && ts.Before(s.events[n-1].Timestamp) {
		ts = s.events[n-1].Timestamp
	}

	s.nextID++

	e := Event{
		ID:           s.nextID,
		ServiceName:  serviceName,
		Timestamp:    ts,
		ResponseTime: responseTime,
	}
	s.events = append(s.events, e)

	return e, nil
}

func (s *MemoryStore) Events(_ context.Context, since time.Time) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, 0, len(s.events))

	for _, e := range s.events {
		if e.Timestamp.Before(since) {
			continue
		}

		out = append(out, e)
	}

	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.events), nil
}
