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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/geboyr/csc5201-final/pkg/auth"
)

// RecordPath is the stats service ingestion route.
const RecordPath = "/record_stat"

// HTTPSink posts events to the stats service using the outgoing credential.
type HTTPSink struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSink creates a sink for the stats service at baseURL. The request
// deadline comes from the context the client passes to Send.
func NewHTTPSink(baseURL, token string, base http.RoundTripper) (*HTTPSink, error) {
	endpoint, err := url.JoinPath(baseURL, RecordPath)
	if err != nil {
		return nil, fmt.Errorf("invalid stats url %q: %w", baseURL, err)
	}

	return &HTTPSink{
		endpoint: endpoint,
		client: &http.Client{
			Transport: auth.NewTransport(token, base),
		},
	}, nil
}

func (s *HTTPSink) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeEvent, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telemetry request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to record stat: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}

// NewHTTPClient returns a Client delivering to the stats service at baseURL.
func NewHTTPClient(baseURL, token string, base http.RoundTripper, opts ...Option) (*Client, error) {
	sink, err := NewHTTPSink(baseURL, token, base)
	if err != nil {
		return nil, err
	}

	return NewClient(sink, opts...), nil
}
