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

import "context"

//go:generate mockgen -destination=mock_catalog.go -package=catalog github.com/geboyr/csc5201-final/pkg/catalog Store,RecipeGenerator

// Store persists the ingredient collection. Each call is a single atomic unit.
type Store interface {
	// List returns every ingredient ordered by id.
	List(ctx context.Context) ([]Ingredient, error)
	// Add creates an ingredient and returns it with its assigned id.
	Add(ctx context.Context, name string) (Ingredient, error)
	// Delete removes the ingredient with id, or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
}

// RecipeGenerator asks the recipe service for a recipe built from the
// current catalog.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context) (string, error)
}
