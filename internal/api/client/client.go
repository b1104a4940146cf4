// Package client provides a thin HTTP client for the watcher's status API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"syscall"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

// ErrCycleRunning is returned by TriggerCycle when the server reports a
// cycle in progress.
var ErrCycleRunning = errors.New("a watch cycle is already running")

// Client talks to a running watcher's status server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a new API client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListWatches returns the status of every watched blueprint.
func (c *Client) ListWatches(ctx context.Context) ([]domain.WatchStatus, error) {
	var out []domain.WatchStatus
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/watches", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetWatch returns the status of one blueprint.
func (c *Client) GetWatch(ctx context.Context, blueprintID int64) (*domain.WatchStatus, error) {
	var out domain.WatchStatus
	path := "/api/v1/watches/" + strconv.FormatInt(blueprintID, 10)
	if _, err := c.do(ctx, http.MethodGet, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TriggerCycle asks the server to start a cycle now.
func (c *Client) TriggerCycle(ctx context.Context) error {
	status, err := c.do(ctx, http.MethodPost, "/api/v1/cycles", nil)
	if status == http.StatusConflict {
		return ErrCycleRunning
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, dst any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return 0, fmt.Errorf("status server not running at %s", c.baseURL)
		}
		return 0, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if dst != nil && len(body) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}

	return resp.StatusCode, nil
}
