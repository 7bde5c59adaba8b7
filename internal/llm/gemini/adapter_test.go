package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nulzo/homework-helper-api/internal/httpclient"
	"github.com/nulzo/homework-helper-api/internal/llm"
	"github.com/nulzo/homework-helper-api/internal/llm/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, baseURL string) llm.Provider {
	t.Helper()
	adapter, err := gemini.NewAdapter(llm.ProviderConfig{
		ID:      "gemini-test",
		Type:    "gemini",
		APIKey:  "test-key",
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return adapter
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req gemini.GeminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t,
			"Study Content: Photosynthesis basics\n\nUser Prompt: Summarize in 2 sentences",
			req.Contents[0].Parts[0].Text,
		)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"candidates": [{
				"content": {
					"role": "model",
					"parts": [{"text": "Plants convert light to energy."}]
				},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer server.Close()

	adapter := newAdapter(t, server.URL)

	out, err := adapter.Generate(context.Background(), "Photosynthesis basics", "Summarize in 2 sentences")
	assert.NoError(t, err)
	assert.Equal(t, "Plants convert light to energy.", out)
	assert.Equal(t, "gemini-test", adapter.Name())
	assert.Equal(t, "gemini", adapter.Type())
}

func TestGenerate_MalformedShapeReturnsSentinel(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no candidates", `{"candidates": []}`},
		{"no parts", `{"candidates": [{"content": {"parts": []}}]}`},
		{"not json", `<html>gateway timeout</html>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			adapter := newAdapter(t, server.URL)

			out, err := adapter.Generate(context.Background(), "content", "prompt")
			assert.NoError(t, err, "malformed 200 bodies must be soft failures")
			assert.Equal(t, gemini.Sentinel, out)
		})
	}
}

func TestGenerate_UpstreamStatusIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer server.Close()

	adapter := newAdapter(t, server.URL)

	_, err := adapter.Generate(context.Background(), "content", "prompt")
	require.Error(t, err)

	var upstreamErr *httpclient.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
	assert.Contains(t, string(upstreamErr.Body), "quota exceeded")
}

func TestGenerate_TransportFailureIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	adapter := newAdapter(t, server.URL)

	_, err := adapter.Generate(context.Background(), "content", "prompt")
	require.Error(t, err)

	var transportErr *httpclient.TransportError
	assert.True(t, errors.As(err, &transportErr))
}
