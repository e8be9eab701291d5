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

package recipe

import (
	"context"

	"github.com/geboyr/csc5201-final/pkg/catalog"
)

//go:generate mockgen -destination=mock_recipe.go -package=recipe github.com/geboyr/csc5201-final/pkg/recipe IngredientSource,Provider

// IngredientSource supplies the current ingredient set. catalog.Client is the
// production implementation.
type IngredientSource interface {
	ListIngredients(ctx context.Context) ([]catalog.Ingredient, error)
}

// Provider turns a prompt into generated text.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
