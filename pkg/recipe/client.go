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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/geboyr/csc5201-final/pkg/auth"
)

const (
	// NoRecipe is returned when the recipe service answers without a recipe.
	NoRecipe = "No recipe generated."

	defaultClientTimeout = 90 * time.Second
)

// Client calls a remote recipe service. It satisfies catalog.RecipeGenerator.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a Client for the recipe service at baseURL that
// authenticates with token. base may be nil.
func NewClient(baseURL, token string, base http.RoundTripper, timeout time.Duration) (*Client, error) {
	endpoint, err := url.JoinPath(baseURL, GeneratePath)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe url %q: %w", baseURL, err)
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

// GenerateRecipe asks the recipe service for a recipe. Orchestration failures
// arrive as 200 answers whose text already describes the error, so they are
// returned as text, not as an error.
func (c *Client) GenerateRecipe(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call recipe service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)

		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body struct {
		Recipe *string `json:"recipe"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode recipe: %w", err)
	}

	if body.Recipe == nil {
		return NoRecipe, nil
	}

	return *body.Recipe, nil
}
