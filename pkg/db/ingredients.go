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
	"strings"

	"github.com/geboyr/csc5201-final/pkg/catalog"
)

func (db *DB) List(ctx context.Context) ([]catalog.Ingredient, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, name FROM ingredients ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w ingredients: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	items := make([]catalog.Ingredient, 0)

	for rows.Next() {
		var item catalog.Ingredient

		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("%w ingredient: %w", ErrFailedToScan, err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w ingredients: %w", ErrFailedToQuery, err)
	}

	return items, nil
}

func (db *DB) Add(ctx context.Context, name string) (catalog.Ingredient, error) {
	if strings.TrimSpace(name) == "" {
		return catalog.Ingredient{}, catalog.ErrNameRequired
	}

	res, err := db.ExecContext(ctx, "INSERT INTO ingredients (name) VALUES (?)", name)
	if err != nil {
		return catalog.Ingredient{}, fmt.Errorf("%w ingredient: %w", ErrFailedToInsert, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return catalog.Ingredient{}, fmt.Errorf("%w ingredient: %w", ErrFailedToInsert, err)
	}

	return catalog.Ingredient{ID: id, Name: name}, nil
}

func (db *DB) Delete(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM ingredients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w ingredient: %w", ErrFailedToDelete, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w ingredient: %w", ErrFailedToDelete, err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %d", catalog.ErrNotFound, id)
	}

	return nil
}
