package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Complexlity/paywithglide/internal/metrics"
	"go.uber.org/zap"
)

// HTTPError is a non-success upstream response
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d", e.Status)
}

// Request describes one upstream JSON call
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   any
}

// Client is a JSON API client that retries rate-limited responses
type Client struct {
	name       string
	baseURL    string
	headers    http.Header
	httpClient *http.Client
	policy     Policy
	logger     *zap.Logger
	metrics    metrics.Recorder
}

// Option configures a Client
type Option func(*Client)

func WithPolicy(p Policy) Option {
	return func(c *Client) { c.policy = p }
}

func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// NewClient creates a client for the upstream identified by name (used in logs and metrics)
func NewClient(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		headers:    make(http.Header),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		policy:     DefaultPolicy,
		logger:     zap.NewNop(),
		metrics:    metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON issues a GET and decodes the response into out
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.Send(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.Send(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Send performs req under the client's retry policy. A 429 is retried, any other
// non-2xx fails immediately with *HTTPError. out may be nil.
func (c *Client) Send(ctx context.Context, req Request, out any) error {
	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		payload = b
	}

	labels := map[string]string{"source": c.name}
	start := time.Now()
	defer func() {
		c.metrics.ObserveLatency(metrics.UpstreamCall, time.Since(start), labels)
	}()

	var data []byte
	attempt := 0
	err := Do(ctx, c.policy, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			c.metrics.IncCounter(metrics.UpstreamRetry, labels)
			c.logger.Debug("retrying rate-limited request",
				zap.String("upstream", c.name),
				zap.String("path", req.Path),
				zap.Int("attempt", attempt),
			)
		}
		var err error
		data, err = c.doRequest(ctx, req, payload)
		return err
	})
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", c.name, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, req Request, payload []byte) ([]byte, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range c.headers {
		httpReq.Header[k] = vs
	}
	for k, vs := range req.Header {
		httpReq.Header[k] = vs
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, Retryable(&HTTPError{Status: resp.StatusCode, Body: string(data)})
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}

// IsStatus reports whether err is an *HTTPError with the given status
func IsStatus(err error, status int) bool {
	var herr *HTTPError
	return errors.As(err, &herr) && herr.Status == status
}
