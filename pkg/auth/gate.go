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

// Package auth pkg/auth/gate.go implements the API key gate shared by every service.
package auth

import (
	"errors"
	"net/http"
	"strings"
)

const (
	// HeaderName is the request header carrying the credential.
	HeaderName = "Authorization"

	// Scheme prefixes the token inside the header, e.g. "ApiKey s3cr3t".
	Scheme = "ApiKey"
)

var (
	// ErrUnauthorized is returned for a missing, malformed or unknown credential.
	ErrUnauthorized = errors.New("unauthorized")
)

// Gate validates presented credentials against a fixed allow-list.
// It is built once at startup and never mutated afterwards.
type Gate struct {
	keys map[string]struct{}
}

// NewGate creates a Gate from the configured keys. Blank entries are skipped,
// so an empty or whitespace-only allow-list rejects every request.
func NewGate(keys []string) *Gate {
	g := &Gate{keys: make(map[string]struct{}, len(keys))}

	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		g.keys[k] = struct{}{}
	}

	return g
}

// Len returns the number of accepted keys.
func (g *Gate) Len() int {
	return len(g.keys)
}

// Authorize reports whether credential is in the allow-list. The comparison is
// an exact, case-sensitive membership test with no side effects.
func (g *Gate) Authorize(credential string) error {
	if credential == "" {
		return ErrUnauthorized
	}

	if _, ok := g.keys[credential]; !ok {
		return ErrUnauthorized
	}

	return nil
}

// AuthorizeHeader parses an "ApiKey <token>" header value and authorizes the token.
func (g *Gate) AuthorizeHeader(value string) error {
	token, ok := CredentialFromHeader(value)
	if !ok {
		return ErrUnauthorized
	}

	return g.Authorize(token)
}

// AuthorizeRequest authorizes the credential carried by r.
func (g *Gate) AuthorizeRequest(r *http.Request) error {
	return g.AuthorizeHeader(r.Header.Get(HeaderName))
}

// CredentialFromHeader extracts the token from an "ApiKey <token>" header value.
func CredentialFromHeader(value string) (string, bool) {
	prefix := Scheme + " "
	if !strings.HasPrefix(value, prefix) {
		return "", false
	}

	token := strings.TrimPrefix(value, prefix)
	if token == "" {
		return "", false
	}

	return token, true
}

// FormatHeader renders token as an Authorization header value.
func FormatHeader(token string) string {
	return Scheme + " " + token
}

// SetCredential attaches token to an outgoing request.
func SetCredential(req *http.Request, token string) {
	req.Header.Set(HeaderName, FormatHeader(token))
}
