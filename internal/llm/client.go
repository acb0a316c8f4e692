// Package llm is a minimal client for the OpenAI chat completions
// endpoint, with bounded retry for transient failures.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Completer produces a completion for a prompt. Satisfied by *Client;
// tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client calls the chat completions API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
	logger     *logrus.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxRetries int
	Backoff    time.Duration
	Timeout    time.Duration
}

// NewClient creates a chat completions client.
func NewClient(opts Options, logger *logrus.Logger) *Client {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 2 * time.Second
	}
	return &Client{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		model:      opts.Model,
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     logger,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the prompt as a single user message and returns the
// generated text. Rate limits, server errors and transport failures
// are retried with a fixed backoff up to the configured attempt limit.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.backoff):
			}
		}

		text, retryable, err := c.doRequest(ctx, bodyBytes)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
		c.logger.WithError(err).WithField("attempt", attempt).Warn("Completion request failed")
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries, lastErr)
}

// doRequest performs one API call. The second return value reports
// whether the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body),
	)
	if err != nil {
		return "", false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("calling completions API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", retryable, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", retryable, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", false, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", false, fmt.Errorf("response contained no choices")
	}

	return result.Choices[0].Message.Content, false, nil
}
