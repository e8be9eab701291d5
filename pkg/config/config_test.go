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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"1m30s"`, want: 90 * time.Second},
		{name: "nanoseconds", input: `1000000000`, want: time.Second},
		{name: "bad string", input: `"soon"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Std())
		})
	}
}

func TestLoadStatsDefaultsFromEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9002")
	t.Setenv("VALID_INCOMING_API_KEYS", "k1,k2")
	t.Setenv("OUTGOING_API_KEY", "k1")
	t.Setenv("DB_PATH", "/tmp/stats.db")
	t.Setenv("STATS_WINDOW", "2h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := DefaultStatsConfig()
	require.NoError(t, Load("", &cfg))

	assert.Equal(t, ":9002", cfg.ListenAddr)
	assert.Equal(t, []string{"k1", "k2"}, cfg.IncomingAPIKeys)
	assert.Equal(t, "k1", cfg.OutgoingAPIKey)
	assert.Equal(t, "/tmp/stats.db", cfg.DBPath)
	assert.Equal(t, 2*time.Hour, cfg.Window.Std())
	assert.Equal(t, time.Minute, cfg.RefreshInterval.Std())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.TelemetryTimeout.Std())
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	path := writeFile(t, `{
		"listen_addr": ":7000",
		"recipe_url": "http://recipe:5001",
		"ui_path": "/home",
		"log": {"log_format": "text"}
	}`)

	t.Setenv("RECIPE_URL", "http://recipe.internal:5001")

	cfg := DefaultCatalogConfig()
	require.NoError(t, Load(path, &cfg))

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "http://recipe.internal:5001", cfg.RecipeURL)
	assert.Equal(t, "/home", cfg.UIPath)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("bad url", func(t *testing.T) {
		t.Setenv("STATS_URL", "not a url")

		cfg := DefaultStatsConfig()
		assert.ErrorIs(t, Load("", &cfg), ErrInvalidConfig)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")

		cfg := DefaultStatsConfig()
		assert.ErrorIs(t, Load("", &cfg), ErrInvalidConfig)
	})

	t.Run("missing listen addr", func(t *testing.T) {
		path := writeFile(t, `{"listen_addr": ""}`)

		cfg := DefaultCatalogConfig()
		assert.ErrorIs(t, Load(path, &cfg), ErrInvalidConfig)
	})

	t.Run("bad duration env", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "forever")

		cfg := DefaultCatalogConfig()
		assert.Error(t, Load("", &cfg))
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := DefaultCatalogConfig()
		assert.Error(t, Load(filepath.Join(t.TempDir(), "absent.json"), &cfg))
	})
}

func TestRecipeConfigValidate(t *testing.T) {
	t.Setenv("CATALOG_URL", "http://ingredients:5000")

	cfg := DefaultRecipeConfig()
	require.ErrorIs(t, Load("", &cfg), errOpenAIKeyRequired)

	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg = DefaultRecipeConfig()
	require.NoError(t, Load("", &cfg))
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 750, cfg.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-6)
}

func TestRecipeConfigRequiresCatalogURL(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := DefaultRecipeConfig()
	assert.ErrorIs(t, Load("", &cfg), ErrInvalidConfig)
}

func TestCredentialsNotReadFromFile(t *testing.T) {
	path := writeFile(t, `{"listen_addr": ":1", "OutgoingAPIKey": "leaked"}`)

	cfg := DefaultCatalogConfig()
	require.NoError(t, Load(path, &cfg))
	assert.Empty(t, cfg.OutgoingAPIKey)
}
