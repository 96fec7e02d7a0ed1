package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func fastRetries(t *testing.T) {
	original := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = original })
}

func TestClient_GetWithRetries_Success(t *testing.T) {
	fastRetries(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			// Simulate 503 twice
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()

	resp, err := client.get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected retry to succeed on 3rd attempt, got error: %v", err)
	}
	defer resp.Body.Close()

	if attempts.Load() != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts.Load())
	}
}

func TestClient_GetWithRetries_Fail(t *testing.T) {
	fastRetries(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer server.Close()

	client := NewClient()

	if _, err := client.get(context.Background(), server.URL); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if attempts.Load() != maxAttempts {
		t.Errorf("expected %d attempts, got %d", maxAttempts, attempts.Load())
	}
}

func TestClient_GetWithRetries_NoRetryOnClientError(t *testing.T) {
	fastRetries(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()

	if _, err := client.get(context.Background(), server.URL); err == nil {
		t.Fatalf("expected 404 to fail")
	}
	if attempts.Load() != 1 {
		t.Errorf("expected a single attempt for 404, got %d", attempts.Load())
	}
}

func TestClient_GetWithRetries_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient()
	if _, err := client.get(ctx, server.URL); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPlanningURL(t *testing.T) {
	client := NewClient(WithCredentials("harry.potter", ""), WithBaseURL("https://edt.example.com/"))

	raw := client.planningURL(time.Date(2025, 10, 14, 0, 0, 0, 0, time.Local))
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid URL %q: %v", raw, err)
	}

	if u.Host != "edt.example.com" || u.Path != "/WebPsDyn.aspx" {
		t.Errorf("unexpected URL %q", raw)
	}
	q := u.Query()
	if q.Get("action") != "posEDTLMS" || q.Get("serverID") != "C" {
		t.Errorf("unexpected fixed parameters in %q", raw)
	}
	if q.Get("Tel") != "harry.potter" {
		t.Errorf("expected Tel=harry.potter, got %q", q.Get("Tel"))
	}
	if q.Get("date") != "14/10/2025" {
		t.Errorf("expected date=14/10/2025, got %q", q.Get("date"))
	}
}
