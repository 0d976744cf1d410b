// Package persistence talks to the CV persistence API over HTTP.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"

	"github.com/google/uuid"
)

// Client implements usecase.Persistence against /api/v1/cv.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type createResponse struct {
	ID uuid.UUID `json:"id"`
}

type recordResponse struct {
	Document model.CVDocument `json:"document"`
}

func (c *Client) Load(ctx context.Context, id uuid.UUID) (model.CVDocument, error) {
	var rec recordResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/cv/"+id.String(), nil, &rec); err != nil {
		return model.CVDocument{}, err
	}
	return rec.Document, nil
}

func (c *Client) Save(ctx context.Context, id uuid.UUID, doc model.CVDocument) error {
	return c.do(ctx, http.MethodPut, "/api/v1/cv/"+id.String(), doc, nil)
}

func (c *Client) Create(ctx context.Context, doc model.CVDocument) (uuid.UUID, error) {
	var out createResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/cv", doc, &out); err != nil {
		return uuid.Nil, err
	}
	if out.ID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: create returned no id", domain.ErrPersistence)
	}
	return out.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	case resp.StatusCode >= 300:
		return fmt.Errorf("%w: %s %s returned %d: %s", domain.ErrPersistence, method, path, resp.StatusCode, apiError(rb))
	}
	if out == nil || len(rb) == 0 {
		return nil
	}
	if err := json.Unmarshal(rb, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrPersistence, err)
	}
	return nil
}

func apiError(b []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(b))
}
