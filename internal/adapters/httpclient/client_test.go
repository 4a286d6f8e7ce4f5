package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDoWithRetryRecoversFromTransientStatus(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "trips-test" {
			t.Errorf("expected custom user agent, got %q", r.Header.Get("User-Agent"))
		}
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(time.Second, map[string]string{"User-Agent": "trips-test"}).WithRetryPolicy(4, time.Millisecond)
	ctx := context.Background()
	resp, err := c.DoWithRetry(ctx, func() (*http.Request, error) {
		return c.NewRequest(ctx, http.MethodGet, srv.URL, nil)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if hits.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", hits.Load())
	}
}

func TestDoWithRetryStopsOnClientError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(time.Second, nil).WithRetryPolicy(4, time.Millisecond)
	ctx := context.Background()
	_, err := c.DoWithRetry(ctx, func() (*http.Request, error) {
		return c.NewRequest(ctx, http.MethodGet, srv.URL, nil)
	})

	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusForbidden || se.Body != "bad key" {
		t.Fatalf("expected 403 StatusError, got %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", hits.Load())
	}
}
