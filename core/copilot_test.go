package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"parley/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL, systemPrompt string, maxRetries int) *CopilotClient {
	conf := &config.Configuration{}
	conf.Copilot.BaseURL = baseURL
	conf.Copilot.APIKey = "test-key"
	conf.Copilot.Model = "test-model"
	conf.Copilot.SystemPrompt = systemPrompt
	conf.Copilot.RequestTimeoutSecs = 5
	conf.Copilot.MaxRetries = maxRetries
	return NewCopilotClient(conf)
}

func TestCompleteParsesContent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload struct {
			Model    string        `json:"model"`
			Messages []ChatMessage `json:"messages"`
			Stream   bool          `json:"stream"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "test-model", payload.Model)
		assert.False(t, payload.Stream)
		require.Len(t, payload.Messages, 2)
		assert.Equal(t, ChatMessage{Role: "system", Content: "be brief"}, payload.Messages[0])
		assert.Equal(t, ChatMessage{Role: "user", Content: "hello"}, payload.Messages[1])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`)
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL, "be brief", 0)
	content, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, "hi there", content)
}

func TestCompleteUpstreamErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"unknown model"}}`)
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL, "", 3)
	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hello"}})

	var ue *UpstreamError
	require.Error(t, err)
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusBadRequest, ue.StatusCode)
	assert.Equal(t, "unknown model", ue.Message)
	assert.Equal(t, int32(1), calls.Load(), "4xx responses other than 429 must not be retried")
}

func TestCompleteRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":{"message":"overloaded"}}`)
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"recovered"}}]}`)
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL, "", 2)
	content, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, "recovered", content)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCompleteMissingContent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL, "", 0)
	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hello"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "choices.0.message.content")
}

func TestStreamCompletionAccumulatesDeltas(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"stream":true`)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{}}]}\n\n") // no content, skipped
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL, "", 0)
	var deltas []string
	full, err := client.StreamCompletion(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, func(delta string) error {
		deltas = append(deltas, delta)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo"}, deltas)
	assert.Equal(t, "Hello", full)
}

func TestStreamCompletionOnDeltaErrorAborts(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL, "", 0)
	sinkErr := errors.New("client went away")
	full, err := client.StreamCompletion(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, func(delta string) error {
		return sinkErr
	})
	require.ErrorIs(t, err, sinkErr)
	assert.Equal(t, "a", full, "text accumulated before the abort is returned")
}

func TestStreamCompletionUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"slow down"}}`)
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL, "", 0)
	_, err := client.StreamCompletion(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, func(string) error { return nil })

	var ue *UpstreamError
	require.Error(t, err)
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusTooManyRequests, ue.StatusCode)
	assert.Equal(t, "slow down", ue.Message)
}
