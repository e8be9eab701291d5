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

package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore keeps ingredients in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	items  []Ingredient
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make([]Ingredient, 0)}
}

func (s *MemoryStore) List(_ context.Context) ([]Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Ingredient, len(s.items))
	copy(out, s.items)

	return out, nil
}

func (s *MemoryStore) Add(_ context.Context, name string) (Ingredient, error) {
	if strings.TrimSpace(name) == "" {
		return Ingredient{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++

	item := Ingredient{ID: s.nextID, Name: name}
	s.items = append(s.items, item)

	return item, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("%w: %d", ErrNotFound, id)
}
