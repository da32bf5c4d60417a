package core

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"parley/config"
	"parley/logger"

	"github.com/andybalholm/brotli"
	"github.com/tidwall/gjson"
)

// ChatMessage is one turn sent to the upstream chat-completion API.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UpstreamError reports a failure response from the completion provider.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream completion API returned status %d: %s", e.StatusCode, e.Message)
}

// CopilotClient talks to an OpenAI-compatible chat-completion endpoint on
// behalf of the conversation handlers.
type CopilotClient struct {
	baseURL      string
	apiKey       string
	model        string
	systemPrompt string
	maxRetries   int
	client       *http.Client
}

// NewCopilotClient builds a client from the application configuration.
func NewCopilotClient(conf *config.Configuration) *CopilotClient {
	timeout := time.Duration(conf.Copilot.RequestTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &CopilotClient{
		baseURL:      strings.TrimRight(conf.Copilot.BaseURL, "/"),
		apiKey:       conf.Copilot.APIKey,
		model:        conf.Copilot.Model,
		systemPrompt: conf.Copilot.SystemPrompt,
		maxRetries:   conf.Copilot.MaxRetries,
		client:       &http.Client{Timeout: timeout},
	}
}

// withSystemPrompt prepends the configured system prompt, if any.
func (c *CopilotClient) withSystemPrompt(msgs []ChatMessage) []ChatMessage {
	if c.systemPrompt == "" {
		return msgs
	}
	out := make([]ChatMessage, 0, len(msgs)+1)
	out = append(out, ChatMessage{Role: "system", Content: c.systemPrompt})
	return append(out, msgs...)
}

func (c *CopilotClient) newRequest(ctx context.Context, msgs []ChatMessage, stream bool) (*http.Request, error) {
	payload := map[string]interface{}{
		"model":    c.model,
		"messages": c.withSystemPrompt(msgs),
		"stream":   stream,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshalling completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if !stream {
		req.Header.Set("Accept-Encoding", "br")
	}
	return req, nil
}

// responseReader returns the response body reader, decoding brotli when the
// provider honored our Accept-Encoding.
func responseReader(resp *http.Response) io.Reader {
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "br") {
		return brotli.NewReader(resp.Body)
	}
	return resp.Body
}

// upstreamError extracts the provider's error message from a failure body.
func upstreamError(statusCode int, body []byte) *UpstreamError {
	msg := gjson.GetBytes(body, "error.message").String()
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if len(msg) > 512 {
		msg = msg[:512]
	}
	return &UpstreamError{StatusCode: statusCode, Message: msg}
}

func retryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// Complete performs a synchronous completion and returns the assistant text.
// Retries transient upstream failures with exponential backoff.
func (c *CopilotClient) Complete(ctx context.Context, msgs []ChatMessage) (string, error) {
	var lastErr error
	backoff := 500 * time.Millisecond

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("CopilotClient: retrying completion (attempt %d/%d) after %v", attempt, c.maxRetries, backoff)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		content, err := c.completeOnce(ctx, msgs)
		if err == nil {
			return content, nil
		}
		lastErr = err

		ue, ok := err.(*UpstreamError)
		if !ok || !retryable(ue.StatusCode) {
			return "", err
		}
	}
	return "", lastErr
}

func (c *CopilotClient) completeOnce(ctx context.Context, msgs []ChatMessage) (string, error) {
	req, err := c.newRequest(ctx, msgs, false)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(responseReader(resp))
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", upstreamError(resp.StatusCode, body)
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("completion response missing choices.0.message.content")
	}
	return content.String(), nil
}

// StreamCompletion performs a streaming completion, invoking onDelta for each
// content fragment as it arrives. Returns the accumulated assistant text.
// An error from onDelta aborts the stream. Streaming requests are not retried;
// by the time a stream fails, deltas may already have reached the client.
func (c *CopilotClient) StreamCompletion(ctx context.Context, msgs []ChatMessage, onDelta func(delta string) error) (string, error) {
	req, err := c.newRequest(ctx, msgs, true)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling streaming completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(responseReader(resp), 64*1024))
		return "", upstreamError(resp.StatusCode, body)
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			break
		}
		delta := gjson.Get(data, "choices.0.delta.content")
		if !delta.Exists() || delta.String() == "" {
			continue
		}
		full.WriteString(delta.String())
		if err := onDelta(delta.String()); err != nil {
			return full.String(), err
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("reading completion stream: %w", err)
	}
	return full.String(), nil
}
