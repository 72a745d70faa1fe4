package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIProviderRequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")

	_, err = NewOpenAIProvider(OpenAIConfig{APIKey: "   "})
	assert.Error(t, err)
}

func TestOpenAIProviderComplete(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "  Welcome to Rome.  "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16}
		}`))
	}))
	defer server.Close()

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
	})
	require.NoError(t, err)

	reply, err := p.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "you are a tour guide"},
		{Role: RoleUser, Content: "tell me about Rome"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Rome.", reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, RoleSystem, gotReq.Messages[0].Role)
}

func TestOpenAIProviderCompleteErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
	}))
	defer server.Close()

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestOpenAIProviderCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAIProviderCompleteEmptyReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "   "}}]}`))
	}))
	defer server.Close()

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty reply")
}

func TestScriptProviderReplaysInOrder(t *testing.T) {
	p := NewScriptProvider("one", "two")

	got, err := p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "a"}})
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	got, err = p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "b"}})
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	_, err = p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "c"}})
	assert.Error(t, err)
	assert.Equal(t, 3, p.Calls())
}
