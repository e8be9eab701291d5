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

// Package catalog pkg/catalog/types.go manages the shared ingredient list.
package catalog

// Ingredient is one entry of the catalog. ID is assigned on creation and is
// never reused, even after the entry is deleted.
type Ingredient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListResponse is the body of GET /ingredients.
type ListResponse struct {
	Ingredients []Ingredient `json:"ingredients"`
}

// AddRequest is the body of POST /ingredients.
type AddRequest struct {
	Name string `json:"name"`
}

// AddResponse is the body returned after a successful add.
type AddResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// RecipeResponse is the body of the outward POST /recipe endpoint.
type RecipeResponse struct {
	Recipe string `json:"recipe"`
}

// Names returns the ingredient names in catalog order.
func Names(ingredients []Ingredient) []string {
	names := make([]string, 0, len(ingredients))
	for _, i := range ingredients {
		names = append(names, i.Name)
	}

	return names
}
