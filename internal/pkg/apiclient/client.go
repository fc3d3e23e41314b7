package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

// RequestOptions mirrors the subset of fetch options the pages use.
type RequestOptions struct {
	Method  string
	Headers http.Header
	// JSON is marshalled as the request body when non-nil.
	JSON interface{}
	// Body is sent verbatim when JSON is nil.
	Body io.Reader
}

// Client issues requests against {base}/api and normalizes failures.
// It never retries, times out on its own, or caches; the caller's context
// bounds every request.
type Client struct {
	base    string
	http    *http.Client
	logger  zerolog.Logger
	metrics *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client for the given API base origin.
// The base is read once at startup and never changes afterwards.
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Base returns the configured origin without the /api suffix.
func (c *Client) Base() string {
	return c.base
}

// Path returns the absolute URL of an API path.
func (c *Client) Path(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return c.base + "/api" + p
}

// FetchJSON performs the request and returns the parsed JSON value, the raw
// text when the body is not JSON, or nil for an empty body.
// Non-2xx responses fail with *apperrors.HTTPError.
func (c *Client) FetchJSON(ctx context.Context, path string, opts *RequestOptions) (interface{}, error) {
	res, err := c.do(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return res.value, nil
}

// Fetch is FetchJSON for a plain GET.
func (c *Client) Fetch(ctx context.Context, path string) (interface{}, error) {
	return c.FetchJSON(ctx, path, nil)
}

// FetchInto performs the request and decodes the body over out. Fields absent
// from the body keep whatever value out already holds, and an empty body
// leaves out untouched.
func (c *Client) FetchInto(ctx context.Context, path string, opts *RequestOptions, out interface{}) error {
	res, err := c.do(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil || len(res.raw) == 0 {
		return nil
	}
	if !res.isJSON {
		return fmt.Errorf("%w: %s %s returned non-JSON body", apperrors.ErrUnexpectedPayload, res.method, path)
	}
	if err := json.Unmarshal(res.raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrUnexpectedPayload, res.method, path, err)
	}
	return nil
}

type result struct {
	method string
	raw    []byte
	value  interface{}
	isJSON bool
}

func (c *Client) do(ctx context.Context, path string, opts *RequestOptions) (*result, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	url := c.Path(path)

	body := opts.Body
	if opts.JSON != nil {
		payload, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	for key, values := range opts.Headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if opts.JSON != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(method, "error", time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn().Err(err).Str("method", method).Str("url", url).Msg("Backend request failed")
		return nil, &apperrors.NetworkError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(method, "error", time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &apperrors.NetworkError{Method: method, URL: url, Err: err}
	}
	elapsed := time.Since(start)
	c.metrics.observe(method, strconv.Itoa(resp.StatusCode), elapsed)

	res := &result{method: method, raw: raw}
	if len(raw) > 0 {
		var v interface{}
		if err := json.Unmarshal(raw, &v); err == nil {
			res.value = v
			res.isJSON = true
		} else {
			res.value = string(raw)
		}
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("latency", elapsed).
		Msg("Backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewHTTPError(resp.StatusCode, res.value, string(raw))
	}
	return res, nil
}

// IsCanceled reports whether err came from the caller's context ending.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
