// Package auth talks to the external authentication service.
package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const healthPath = "/api/v1/health"

// Result is what the auth service answered. Body is the decoded JSON, or
// {"raw": text} when the answer is not JSON.
type Result struct {
	OK     bool        `json:"ok"`
	Status int         `json:"status"`
	Body   interface{} `json:"body"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Health calls the auth service's health endpoint, forwarding traceID.
func (c *Client) Health(ctx context.Context, traceID string) (Result, error) {
	return c.get(ctx, healthPath, traceID)
}

func (c *Client) get(ctx context.Context, path, traceID string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Result{}, errors.Wrap(err, "building auth request")
	}
	req.Header.Set("Accept", "application/json")
	if traceID != "" {
		req.Header.Set("X-Request-Id", traceID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, errors.Wrapf(err, "calling auth service %s", path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, errors.Wrap(err, "reading auth response")
	}

	var body interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		body = map[string]interface{}{"raw": string(raw)}
	}

	return Result{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
		Body:   body,
	}, nil
}
