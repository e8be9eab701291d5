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

import "errors"

var (
	// ErrUpstreamUnavailable is the failure kind for the ingredient fetch leg:
	// timeout, refused connection, non-2xx or an undecodable body.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrProviderError is the failure kind for the completion leg.
	ErrProviderError = errors.New("provider error")
	// ErrEmptyCompletion is returned when the provider answers with no content.
	ErrEmptyCompletion = errors.New("provider returned no content")
	// ErrUnexpectedStatus is returned by Client for non-2xx answers.
	ErrUnexpectedStatus = errors.New("unexpected status from recipe service")
)

// Failure kinds as they appear on the wire and in metrics.
const (
	KindUpstreamUnavailable = "upstream_unavailable"
	KindProviderError       = "provider_error"
)

// ErrorKind maps an orchestration error to its wire kind, or "" for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUpstreamUnavailable):
		return KindUpstreamUnavailable
	default:
		return KindProviderError
	}
}
