package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// StatusError is returned for any response with status >= 400.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Client is a small JSON-over-HTTP helper shared by outbound adapters.
type Client struct {
	session *http.Client
	headers http.Header

	maxAttempts int
	backoff     time.Duration
}

// New returns a client with the given per-request timeout and default headers.
func New(timeout time.Duration, headers map[string]string) *Client {
	h := make(http.Header, len(headers)+1)
	h.Set("Accept", "application/json")
	for k, v := range headers {
		h.Set(k, v)
	}
	return &Client{
		session:     &http.Client{Timeout: timeout},
		headers:     h,
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
}

// WithRetryPolicy overrides the attempt count and initial backoff of DoWithRetry.
func (c *Client) WithRetryPolicy(maxAttempts int, backoff time.Duration) *Client {
	c.maxAttempts = max(1, maxAttempts)
	c.backoff = backoff
	return c
}

func (c *Client) NewRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Do sends req once. Responses with status >= 400 are drained, closed and
// returned as *StatusError.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// DoWithRetry retries transient failures (network errors, 429 and 5xx
// responses) with exponential backoff while respecting context cancellation.
// makeReq is called once per attempt.
func (c *Client) DoWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := c.backoff

	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !Retryable(err) || attempt == c.maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// Retryable reports whether err is worth another attempt.
func Retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
