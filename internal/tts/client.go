// Package tts is a minimal client for the OpenAI speech endpoint,
// returning MP3 audio for a piece of text.
package tts

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

// Narrator converts text to an audio byte stream. Satisfied by
// *Client; tests substitute fakes.
type Narrator interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Client calls the speech API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	voice      string
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
	Voice      string
	MaxRetries int
	Backoff    time.Duration
	Timeout    time.Duration
}

// NewClient creates a speech client.
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
		voice:      opts.Voice,
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     logger,
	}
}

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// Synthesize renders text as MP3 audio. Rate limits, server errors and
// transport failures are retried with a fixed backoff up to the
// configured attempt limit.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	bodyBytes, err := json.Marshal(speechRequest{
		Model: c.model,
		Voice: c.voice,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff):
			}
		}

		audio, retryable, err := c.doRequest(ctx, bodyBytes)
		if err == nil {
			return audio, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		c.logger.WithError(err).WithField("attempt", attempt).Warn("Speech request failed")
	}

	return nil, fmt.Errorf("speech synthesis failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) doRequest(ctx context.Context, body []byte) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/audio/speech", bytes.NewReader(body),
	)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("calling speech API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, false, nil
}
