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

// queue is a bounded channel-backed buffer. When full, the oldest pending
// report is discarded so producers never block.
type queue struct {
	items chan Event
	size  int
}

func newQueue(size int) *queue {
	if size < 1 {
		size = 1
	}

	return &queue{
		items: make(chan Event, size),
		size:  size,
	}
}

// push enqueues e and reports how many older entries were dropped to make room.
func (q *queue) push(e Event) (dropped int) {
	for {
		select {
		case q.items <- e:
			return dropped
		default:
		}

		// Full: drop the oldest point and try again.
		select {
		case <-q.items:
			dropped++
		default:
		}
	}
}

// pop returns the next pending entry without blocking.
func (q *queue) pop() (Event, bool) {
	select {
	case e := <-q.items:
		return e, true
	default:
		return Event{}, false
	}
}

func (q *queue) len() int {
	return len(q.items)
}
