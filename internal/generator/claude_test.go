package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaudeClient_Generate(t *testing.T) {
	var gotReq claudeRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, claudeAPIVersion, r.Header.Get("anthropic-version"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":"217107, 235701"}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	client := NewClaudeClient(ClaudeConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	messages := []Message{
		{Role: "system", Content: "You recommend stories."},
		{Role: "user", Content: "Please recommend 2 stories."},
	}

	text, err := client.Generate(context.Background(), messages, 0.7, 150)
	require.NoError(t, err)
	assert.Equal(t, "217107, 235701", text)

	// System role maps to the API's system field.
	assert.Equal(t, "You recommend stories.", gotReq.System)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.InDelta(t, 0.7, gotReq.Temperature, 1e-9)
	assert.Equal(t, 150, gotReq.MaxTokens)
}

func TestClaudeClient_Generate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer server.Close()

	client := NewClaudeClient(ClaudeConfig{APIKey: "k", BaseURL: server.URL})

	_, err := client.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClaudeClient_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"type":"overloaded_error","message":"try later"}}`))
	}))
	defer server.Close()

	client := NewClaudeClient(ClaudeConfig{APIKey: "k", BaseURL: server.URL})

	_, err := client.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded_error")
}

func TestClaudeClient_Generate_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"msg_1","content":[]}`))
	}))
	defer server.Close()

	client := NewClaudeClient(ClaudeConfig{APIKey: "k", BaseURL: server.URL})

	_, err := client.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestClaudeClient_Defaults(t *testing.T) {
	client := NewClaudeClient(ClaudeConfig{APIKey: "k"})
	assert.Equal(t, defaultModel, client.model)
	assert.Equal(t, claudeAPIURL, client.baseURL)
}
