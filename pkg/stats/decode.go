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

package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/geboyr/csc5201-final/pkg/telemetry"
)

const maxEventBytes = 64 << 10

// DecodeEvent parses an ingest payload. service_name must be a non-empty
// string and response_time must be a JSON number or numeric string holding a
// finite, non-negative value.
func DecodeEvent(r io.Reader) (telemetry.Event, error) {
	var raw map[string]json.RawMessage

	if err := json.NewDecoder(io.LimitReader(r, maxEventBytes)).Decode(&raw); err != nil {
		return telemetry.Event{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if raw == nil {
		return telemetry.Event{}, fmt.Errorf("%w: body is not an object", ErrMalformed)
	}

	var name string
	if err := json.Unmarshal(raw["service_name"], &name); err != nil {
		return telemetry.Event{}, fmt.Errorf("%w: service_name: %w", ErrMalformed, err)
	}

	rt, err := parseResponseTime(raw["response_time"])
	if err != nil {
		return telemetry.Event{}, err
	}

	if err := ValidateEvent(name, rt); err != nil {
		return telemetry.Event{}, err
	}

	return telemetry.Event{ServiceName: name, ResponseTime: rt}, nil
}

// ValidateEvent checks the fields a store is allowed to persist.
func ValidateEvent(serviceName string, responseTime float64) error {
	if strings.TrimSpace(serviceName) == "" {
		return fmt.Errorf("%w: service_name is required", ErrMalformed)
	}

	if math.IsNaN(responseTime) || math.IsInf(responseTime, 0) || responseTime < 0 {
		return fmt.Errorf("%w: response_time must be a non-negative number", ErrMalformed)
	}

	return nil
}

func parseResponseTime(b json.RawMessage) (float64, error) {
	if len(b) == 0 || bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return 0, fmt.Errorf("%w: response_time is required", ErrMalformed)
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		return f, nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return 0, fmt.Errorf("%w: response_time is not numeric", ErrMalformed)
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: response_time is not numeric", ErrMalformed)
	}

	return f, nil
}
