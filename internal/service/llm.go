package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/pageza/recipebox/backend/internal/logging"
)

// TextGenerator turns a prompt into model text. It is the only boundary the
// AI recipe flow has with the outside model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrBreakerOpen is returned while the upstream model is considered down.
var ErrBreakerOpen = errors.New("text generator unavailable")

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletionClient talks to an OpenAI-compatible chat completions
// endpoint (DeepSeek by default).
type ChatCompletionClient struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
}

type ChatCompletionOption func(*ChatCompletionClient)

// WithHTTPClient replaces the default client, mostly for tests.
func WithHTTPClient(c *http.Client) ChatCompletionOption {
	return func(cc *ChatCompletionClient) { cc.httpClient = c }
}

// WithBreakerSettings overrides the circuit breaker thresholds.
func WithBreakerSettings(failures uint32, openFor time.Duration) ChatCompletionOption {
	return func(cc *ChatCompletionClient) {
		cc.breaker = newBreaker(failures, openFor)
	}
}

func NewChatCompletionClient(apiKey, apiURL, model string, opts ...ChatCompletionOption) *ChatCompletionClient {
	c := &ChatCompletionClient{
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		breaker:    newBreaker(5, 30*time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newBreaker(failures uint32, openFor time.Duration) *gobreaker.CircuitBreaker[string] {
	log := logging.WithComponent("llm")
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "chat-completions",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}

// Generate sends prompt as a single user message and returns the first
// choice's content. The model is asked for a JSON object.
func (c *ChatCompletionClient) Generate(ctx context.Context, prompt string) (string, error) {
	content, err := c.breaker.Execute(func() (string, error) {
		return c.complete(ctx, prompt)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrBreakerOpen, err)
	}
	return content, err
}

func (c *ChatCompletionClient) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: "You are a professional chef. Respond only with valid JSON."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no response from API")
	}
	return result.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
