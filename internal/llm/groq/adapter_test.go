package groq_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nulzo/homework-helper-api/internal/httpclient"
	"github.com/nulzo/homework-helper-api/internal/llm"
	"github.com/nulzo/homework-helper-api/internal/llm/groq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, baseURL string) llm.Provider {
	t.Helper()
	adapter, err := groq.NewAdapter(llm.ProviderConfig{
		ID:      "llama-test",
		Type:    "llama",
		APIKey:  "test-key",
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return adapter
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.3-70b-versatile", req["model"])
		assert.Equal(t, float64(1024), req["max_tokens"])
		assert.Equal(t, 0.7, req["temperature"])

		messages := req["messages"].([]interface{})
		require.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		assert.Equal(t,
			"Study Content: Photosynthesis basics\n\nUser Prompt: Summarize in 2 sentences",
			msg["content"],
		)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "Plants make food from light."},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer server.Close()

	adapter := newAdapter(t, server.URL)

	out, err := adapter.Generate(context.Background(), "Photosynthesis basics", "Summarize in 2 sentences")
	assert.NoError(t, err)
	assert.Equal(t, "Plants make food from light.", out)
	assert.Equal(t, "llama-test", adapter.Name())
	assert.Equal(t, "llama", adapter.Type())
}

func TestGenerate_MalformedShapeReturnsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	adapter := newAdapter(t, server.URL)

	out, err := adapter.Generate(context.Background(), "content", "prompt")
	assert.NoError(t, err)
	assert.Equal(t, groq.Sentinel, out)
}

func TestGenerate_UpstreamStatusIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
	}))
	defer server.Close()

	adapter := newAdapter(t, server.URL)

	_, err := adapter.Generate(context.Background(), "content", "prompt")
	require.Error(t, err)

	var upstreamErr *httpclient.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusUnauthorized, upstreamErr.StatusCode)
}

func TestGenerate_TransportFailureIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	adapter := newAdapter(t, server.URL)

	_, err := adapter.Generate(context.Background(), "content", "prompt")
	require.Error(t, err)

	var transportErr *httpclient.TransportError
	assert.True(t, errors.As(err, &transportErr))
}
