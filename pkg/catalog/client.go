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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/geboyr/csc5201-final/pkg/auth"
)

const defaultClientTimeout = 10 * time.Second

// Client reads the ingredient list from a remote catalog service.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a Client for the catalog at baseURL that authenticates
// with token. base may be nil.
func NewClient(baseURL, token string, base http.RoundTripper, timeout time.Duration) (*Client, error) {
	endpoint, err := url.JoinPath(baseURL, "/ingredients")
	if err != nil {
		return nil, fmt.Errorf("invalid catalog url %q: %w", baseURL, err)
	}

	if timeout <= 0 {
		timeout = defaultClientTimeout
	}

	return &Client{
		endpoint: endpoint,
		client: &http.Client{
			Transport: auth.NewTransport(token, base),
			Timeout:   timeout,
		},
	}, nil
}

// ListIngredients fetches the current catalog.
func (c *Client) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ingredients: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body ListResponse

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode ingredients: %w", err)
	}

	if body.Ingredients == nil {
		body.Ingredients = []Ingredient{}
	}

	return body.Ingredients, nil
}
