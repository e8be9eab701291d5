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

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateAuthorize(t *testing.T) {
	gate := NewGate([]string{"alpha", " beta ", ""})

	tests := []struct {
		name       string
		credential string
		wantErr    bool
	}{
		{name: "known key", credential: "alpha"},
		{name: "trimmed key", credential: "beta"},
		{name: "empty credential", credential: "", wantErr: true},
		{name: "case mismatch", credential: "Alpha", wantErr: true},
		{name: "unknown key", credential: "gamma", wantErr: true},
		{name: "prefix of key", credential: "alp", wantErr: true},
		{name: "whitespace", credential: " ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Authorize(tt.credential)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}

			assert.NoError(t, err)
		})
	}

	assert.Equal(t, 2, gate.Len())
}

func TestGateEmptyAllowListFailsClosed(t *testing.T) {
	for _, keys := range [][]string{nil, {}, {""}, {"", "  "}} {
		gate := NewGate(keys)

		assert.ErrorIs(t, gate.Authorize(""), ErrUnauthorized)
		assert.ErrorIs(t, gate.AuthorizeHeader("ApiKey "), ErrUnauthorized)
		assert.ErrorIs(t, gate.AuthorizeHeader("ApiKey anything"), ErrUnauthorized)
	}
}

func TestGateAuthorizeHeader(t *testing.T) {
	gate := NewGate([]string{"alpha"})

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{name: "valid header", header: "ApiKey alpha"},
		{name: "missing header", header: "", wantErr: true},
		{name: "missing prefix", header: "alpha", wantErr: true},
		{name: "wrong scheme", header: "Bearer alpha", wantErr: true},
		{name: "lowercase scheme", header: "apikey alpha", wantErr: true},
		{name: "empty token", header: "ApiKey ", wantErr: true},
		{name: "no separator", header: "ApiKeyalpha", wantErr: true},
		{name: "trailing garbage", header: "ApiKey alpha extra", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.AuthorizeHeader(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestGateAuthorizeRequest(t *testing.T) {
	gate := NewGate([]string{"alpha"})

	req := httptest.NewRequest(http.MethodGet, "/ingredients", http.NoBody)
	require.ErrorIs(t, gate.AuthorizeRequest(req), ErrUnauthorized)

	SetCredential(req, "alpha")
	assert.Equal(t, "ApiKey alpha", req.Header.Get(HeaderName))
	assert.NoError(t, gate.AuthorizeRequest(req))
}

func TestTransportSetsCredential(t *testing.T) {
	var got string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(HeaderName)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport("outgoing", nil)}

	req, err := http.NewRequest(http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "ApiKey outgoing", got)
	assert.Empty(t, req.Header.Get(HeaderName), "caller request must not be modified")
}
