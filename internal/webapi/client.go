package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/saberdeck/saberdeck/internal/logger"
)

// ErrNetwork marks any failed exchange: transport errors, non-2xx statuses
// and undecodable bodies.
var ErrNetwork = errors.New("network request failed")

const userAgent = "saberdeck/1.0"

// RequestError describes one failed request.
type RequestError struct {
	URL    string
	Status int // 0 when no response arrived
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP %d for %s", e.Status, e.URL)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}

// Client performs rate-limited GET requests against one API root.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	baseURL string
}

// New creates a client for baseURL.
func New(baseURL string, reqPerSec float64, timeout time.Duration) *Client {
	if reqPerSec <= 0 {
		reqPerSec = 5.0
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(reqPerSec), 5),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GetJSON fetches baseURL+path and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	target := c.baseURL + path
	start := time.Now()

	resp, err := c.get(ctx, target, "application/json")
	if err != nil {
		logger.Warn("request failed", logger.String("url", target), logger.ErrorField(err))
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{URL: target, Err: fmt.Errorf("decoding response: %w", err)}
	}
	logger.Debug("request finished", logger.String("url", target), logger.Duration("elapsed", time.Since(start)))
	return nil
}

// Get fetches an absolute URL. The caller closes the response body.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	return c.get(ctx, rawURL, "*/*")
}

func (c *Client) get(ctx context.Context, target, accept string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RequestError{URL: target, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &RequestError{URL: target, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{URL: target, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &RequestError{URL: target, Status: resp.StatusCode}
	}
	return resp, nil
}
