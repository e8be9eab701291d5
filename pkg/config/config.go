/*-
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

// Package config pkg/config/config.go loads service configuration from an
// optional JSON file overlaid with environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

var (
	errInvalidDuration = errors.New("invalid duration")

	// ErrInvalidConfig wraps struct tag validation failures.
	ErrInvalidConfig = errors.New("invalid configuration")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validator is implemented by configurations with checks beyond struct tags.
type Validator interface {
	Validate() error
}

// LoadFile is a generic helper that loads a JSON file from path into
// the struct pointed to by dst.
func LoadFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	return nil
}

// ParseEnv overlays environment variables onto dst. Unset variables leave
// the existing field values alone.
func ParseEnv(dst interface{}) error {
	if err := env.Parse(dst); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

// ValidateConfig runs the struct tag rules, then Validate if cfg implements
// Validator.
func ValidateConfig(cfg interface{}) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if v, ok := cfg.(Validator); ok {
		return v.Validate()
	}

	return nil
}

// Load fills dst, which should already hold the defaults, from the JSON file
// at path (skipped when path is empty) and then from the environment, and
// validates the result.
func Load(path string, dst interface{}) error {
	if path != "" {
		if err := LoadFile(path, dst); err != nil {
			return err
		}
	}

	if err := ParseEnv(dst); err != nil {
		return err
	}

	return ValidateConfig(dst)
}
