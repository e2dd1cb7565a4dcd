package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode() = %d, want 200", resp.StatusCode())
	}

	body, _ := io.ReadAll(resp.Body())
	if string(body) != "hello" {
		t.Errorf("body = %q, want %q", string(body), "hello")
	}
}

func TestGet_SetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if gotUA != userAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, userAgent)
	}
}

func TestGetWithHeaders_SendsHeaders(t *testing.T) {
	var gotETag, gotModified string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotETag = r.Header.Get("If-None-Match")
		gotModified = r.Header.Get("If-Modified-Since")
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{
		"If-None-Match":     `"abc123"`,
		"If-Modified-Since": "Wed, 01 Jan 2025 00:00:00 GMT",
	})
	if err != nil {
		t.Fatalf("GetWithHeaders returned error: %v", err)
	}
	resp.Body().Close()

	if gotETag != `"abc123"` {
		t.Errorf("If-None-Match = %q, want %q", gotETag, `"abc123"`)
	}
	if gotModified == "" {
		t.Error("If-Modified-Since header was not sent")
	}
	if resp.StatusCode() != http.StatusNotModified {
		t.Errorf("StatusCode() = %d, want 304", resp.StatusCode())
	}
}

func TestGetWithHeaders_NotModifiedDoesNotRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("server was called %d times, want 1", n)
	}
}

func TestGet_RetriesOnceOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode() = %d, want 200 after retry", resp.StatusCode())
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("server was called %d times, want 2", n)
	}
}

func TestGet_ExactlyOneRetryThenSurfaces(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	// last response is surfaced, not swallowed
	if resp.StatusCode() != http.StatusBadGateway {
		t.Errorf("StatusCode() = %d, want 502", resp.StatusCode())
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("server was called %d times, want exactly 2", n)
	}
}

func TestGet_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Get(ctx, server.URL)
	if err == nil {
		t.Fatal("Get should fail when the context deadline passes")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Get took %v, cancellation did not take effect", elapsed)
	}
}
