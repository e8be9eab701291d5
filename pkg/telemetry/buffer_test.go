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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueDropsOldest(t *testing.T) {
	q := newQueue(2)

	assert.Zero(t, q.push(Event{ServiceName: "a"}))
	assert.Zero(t, q.push(Event{ServiceName: "b"}))
	assert.Equal(t, 1, q.push(Event{ServiceName: "c"}))
	assert.Equal(t, 2, q.len())

	e, ok := q.pop()
	assert.True(t, ok)
	assert.Equal(t, "b", e.ServiceName)

	e, ok = q.pop()
	assert.True(t, ok)
	assert.Equal(t, "c", e.ServiceName)

	_, ok = q.pop()
	assert.False(t, ok)
}

func TestQueueMinimumSize(t *testing.T) {
	q := newQueue(0)

	q.push(Event{ServiceName: "a"})
	q.push(Event{ServiceName: "b"})

	e, ok := q.pop()
	assert.True(t, ok)
	assert.Equal(t, "b", e.ServiceName)
}

func BenchmarkQueuePush(b *testing.B) {
	q := newQueue(1000)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		q.push(Event{ServiceName: "test-service", ResponseTime: float64(i)})
	}
}
