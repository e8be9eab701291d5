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

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/geboyr/csc5201-final/pkg/logging"
)

var errOpenAIKeyRequired = errors.New("OPENAI_API_KEY is required unless OPENAI_BASE_URL points at a compatible endpoint")

type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return errInvalidDuration
	}
}

// UnmarshalText lets Duration be read from environment variables.
func (d *Duration) UnmarshalText(b []byte) error {
	dur, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidDuration, err)
	}

	*d = Duration(dur)

	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Common is shared by every service.
type Common struct {
	ListenAddr      string   `json:"listen_addr" env:"LISTEN_ADDR" validate:"required"`
	HealthAddr      string   `json:"health_addr" env:"HEALTH_ADDR"`
	ShutdownTimeout Duration `json:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	MaxConns        int      `json:"max_conns" env:"MAX_CONNS" validate:"gte=0"`

	// Credentials never come from the JSON file.
	OutgoingAPIKey  string   `json:"-" env:"OUTGOING_API_KEY"`
	IncomingAPIKeys []string `json:"-" env:"VALID_INCOMING_API_KEYS" envSeparator:","`

	StatsURL         string   `json:"stats_url" env:"STATS_URL" validate:"omitempty,url"`
	TelemetryTimeout Duration `json:"telemetry_timeout" env:"TELEMETRY_TIMEOUT"`
	TelemetryQueue   int      `json:"telemetry_queue" env:"TELEMETRY_QUEUE_SIZE" validate:"gte=0"`

	OTLPEndpoint string `json:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	Log logging.Config `json:"log"`
}

func defaultCommon(listen, health string) Common {
	return Common{
		ListenAddr:       listen,
		HealthAddr:       health,
		ShutdownTimeout:  Duration(10 * time.Second),
		MaxConns:         1024,
		TelemetryTimeout: Duration(2 * time.Second),
		TelemetryQueue:   1024,
		Log:              logging.Config{Level: "info", Format: "json"},
	}
}

// StatsConfig configures the stats service. An empty DBPath keeps events in
// memory.
type StatsConfig struct {
	Common

	DBPath          string   `json:"db_path" env:"DB_PATH"`
	Window          Duration `json:"window" env:"STATS_WINDOW"`
	RefreshInterval Duration `json:"refresh_interval" env:"DASH_REFRESH_INTERVAL"`
}

func DefaultStatsConfig() StatsConfig {
	return StatsConfig{
		Common:          defaultCommon(":5002", ":50052"),
		Window:          Duration(6 * time.Hour),
		RefreshInterval: Duration(time.Minute),
	}
}

// CatalogConfig configures the catalog service.
type CatalogConfig struct {
	Common

	DBPath    string `json:"db_path" env:"DB_PATH"`
	RecipeURL string `json:"recipe_url" env:"RECIPE_URL" validate:"omitempty,url"`
	UIPath    string `json:"ui_path" env:"UI_PATH"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Common: defaultCommon(":5000", ":50050"),
		UIPath: "/ui",
	}
}

// RecipeConfig configures the recipe service.
type RecipeConfig struct {
	Common

	CatalogURL     string   `json:"catalog_url" env:"CATALOG_URL" validate:"required,url"`
	OpenAIAPIKey   string   `json:"-" env:"OPENAI_API_KEY"`
	OpenAIModel    string   `json:"openai_model" env:"OPENAI_MODEL"`
	OpenAIBaseURL  string   `json:"openai_base_url" env:"OPENAI_BASE_URL" validate:"omitempty,url"`
	MaxTokens      int      `json:"max_tokens" env:"OPENAI_MAX_TOKENS" validate:"gte=0"`
	Temperature    float32  `json:"temperature" env:"OPENAI_TEMPERATURE" validate:"gte=0,lte=2"`
	FetchTimeout   Duration `json:"fetch_timeout" env:"FETCH_TIMEOUT"`
	ComposeTimeout Duration `json:"compose_timeout" env:"COMPOSE_TIMEOUT"`
}

func DefaultRecipeConfig() RecipeConfig {
	return RecipeConfig{
		Common:         defaultCommon(":5001", ":50051"),
		OpenAIModel:    "gpt-4o-mini",
		MaxTokens:      750,
		Temperature:    0.7,
		FetchTimeout:   Duration(10 * time.Second),
		ComposeTimeout: Duration(60 * time.Second),
	}
}

func (c *RecipeConfig) Validate() error {
	if c.OpenAIAPIKey == "" && c.OpenAIBaseURL == "" {
		return errOpenAIKeyRequired
	}

	return nil
}
