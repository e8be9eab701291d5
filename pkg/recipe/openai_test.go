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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model               string  `json:"model"`
	MaxCompletionTokens int     `json:"max_completion_tokens"`
	Temperature         float64 `json:"temperature"`
	Messages            []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newCompletionServer(t *testing.T, status int, body string, got *chatRequest) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)

	return ts
}

func TestOpenAIProviderComplete(t *testing.T) {
	var got chatRequest

	ts := newCompletionServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "gpt-4o-mini",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Omelette\n"}, "finish_reason": "stop"}]
	}`, &got)

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: ts.URL + "/v1"})

	text, err := p.Complete(context.Background(), BuildPrompt([]string{"egg"}))
	require.NoError(t, err)
	assert.Equal(t, "Omelette", text)

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, DefaultMaxTokens, got.MaxCompletionTokens)
	assert.InDelta(t, DefaultTemperature, got.Temperature, 1e-6)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, BuildPrompt([]string{"egg"}), got.Messages[0].Content)
}

func TestOpenAIProviderCustomModel(t *testing.T) {
	var got chatRequest

	ts := newCompletionServer(t, http.StatusOK,
		`{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`, &got)

	p := NewOpenAIProvider(OpenAIConfig{
		APIKey:      "sk-test",
		BaseURL:     ts.URL + "/v1",
		Model:       "local-llama",
		MaxTokens:   100,
		Temperature: float32Ptr(0.2),
	})

	_, err := p.Complete(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, "local-llama", got.Model)
	assert.Equal(t, 100, got.MaxCompletionTokens)
	assert.InDelta(t, 0.2, got.Temperature, 1e-6)
}

func TestOpenAIProviderZeroTemperature(t *testing.T) {
	var raw map[string]interface{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer ts.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: ts.URL + "/v1", Temperature: float32Ptr(0)})

	_, err := p.Complete(context.Background(), "hi")
	require.NoError(t, err)

	// Zero must reach the API rather than fall back to the default.
	require.Contains(t, raw, "temperature")
	assert.InDelta(t, 0, raw["temperature"], 1e-6)
}

func float32Ptr(v float32) *float32 {
	return &v
}

func TestOpenAIProviderNoChoices(t *testing.T) {
	ts := newCompletionServer(t, http.StatusOK, `{"id":"x","choices":[]}`, nil)

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: ts.URL + "/v1"})

	_, err := p.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenAIProviderAPIError(t *testing.T) {
	ts := newCompletionServer(t, http.StatusInternalServerError,
		`{"error":{"message":"boom","type":"server_error"}}`, nil)

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: ts.URL + "/v1"})

	_, err := p.Complete(context.Background(), "hi")
	assert.Error(t, err)
}
