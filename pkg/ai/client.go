package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cv-builder/pkg/ai/formatters"

	"go.uber.org/zap"
)

// DefaultBaseURL is the in-cluster address of the ai-service.
const DefaultBaseURL = "http://ai-service:8000"

// Client calls the internal ai-service chat endpoint.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Language string
	Attempts int
	Backoff  time.Duration
	logger   *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: timeout},
		Attempts: 3,
		Backoff:  time.Second,
		logger:   logger,
	}
}

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

// SuggestSummary asks the ai-service for a professional summary.
func (c *Client) SuggestSummary(ctx context.Context, req formatters.SummaryRequest) (string, error) {
	out, err := c.chat(ctx, formatters.SummaryPrompt(req, c.Language))
	if err != nil {
		return "", err
	}
	s := formatters.ParseSummary(out)
	if s == "" {
		return "", fmt.Errorf("ai-service returned an empty summary")
	}
	return s, nil
}

// SuggestBullets asks the ai-service for job description bullets.
func (c *Client) SuggestBullets(ctx context.Context, req formatters.BulletsRequest) ([]string, error) {
	out, err := c.chat(ctx, formatters.BulletsPrompt(req, c.Language))
	if err != nil {
		return nil, err
	}
	return formatters.ParseBullets(out), nil
}

func (c *Client) chat(ctx context.Context, input string) (string, error) {
	b, err := json.Marshal(chatRequest{Agent: "auto", Input: input})
	if err != nil {
		return "", err
	}
	c.logger.Debug("ai.client: POST /v1/chat", zap.String("base_url", c.BaseURL), zap.Int("bytes", len(b)))

	resp, err := c.doPostWithRetry(ctx, "/v1/chat", b)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("ai.client: non-200 response", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("decode ai-service response: %w", err)
	}
	return chatResp.Output, nil
}

// doPostWithRetry performs an HTTP POST to the given path with retry/backoff.
// Only transport errors are retried.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		c.logger.Debug("ai.client: attempt failed", zap.Int("attempt", i+1), zap.Error(err))
		// exponential backoff before retrying
		if i < attempts-1 {
			backoff := c.Backoff * time.Duration(1<<i)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}
