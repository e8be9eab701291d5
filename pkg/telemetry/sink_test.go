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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSinkSend(t *testing.T) {
	var (
		gotPath   string
		gotHeader string
		gotEvent  Event
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotEvent)

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sink, err := NewHTTPSink(srv.URL, "outgoing", nil)
	require.NoError(t, err)

	err = sink.Send(context.Background(), Event{ServiceName: "ingredient_service.add", ResponseTime: 0.25})
	require.NoError(t, err)

	assert.Equal(t, RecordPath, gotPath)
	assert.Equal(t, "ApiKey outgoing", gotHeader)
	assert.Equal(t, Event{ServiceName: "ingredient_service.add", ResponseTime: 0.25}, gotEvent)
}

func TestHTTPSinkNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sink, err := NewHTTPSink(srv.URL, "wrong", nil)
	require.NoError(t, err)

	err = sink.Send(context.Background(), Event{ServiceName: "x"})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestHTTPSinkUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	sink, err := NewHTTPSink(url, "k", nil)
	require.NoError(t, err)

	assert.Error(t, sink.Send(context.Background(), Event{ServiceName: "x"}))
}
