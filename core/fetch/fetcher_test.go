package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	coreerrors "kenyanow-api/core/errors"
	"kenyanow-api/core/interfaces"
)

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("key not found")
}

func (m *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type mockResponse struct {
	status  int
	body    string
	headers map[string]string
}

func (r *mockResponse) StatusCode() int { return r.status }
func (r *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(bytes.NewReader([]byte(r.body)))
}
func (r *mockResponse) Header(key string) string { return r.headers[key] }

type mockHTTPClient struct {
	resp       *mockResponse
	err        error
	calls      int
	gotHeaders map[string]string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return m.GetWithHeaders(ctx, url, nil)
}

func (m *mockHTTPClient) GetWithHeaders(_ context.Context, _ string, headers map[string]string) (interfaces.Response, error) {
	m.calls++
	m.gotHeaders = headers
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func seedEntry(t *testing.T, cache *mockCache, url string, entry Entry) {
	t.Helper()
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal entry: %v", err)
	}
	cache.data[cacheKey(url)] = data
}

func newFetcherWith(cache *mockCache, client *mockHTTPClient) *Fetcher {
	return NewFetcher(interfaces.Dependencies{Cache: cache, HTTPClient: client})
}

func TestFetch_SuccessStoresEntry(t *testing.T) {
	cache := newMockCache()
	client := &mockHTTPClient{resp: &mockResponse{
		status: 200,
		body:   "<rss/>",
		headers: map[string]string{
			"ETag":          `"v1"`,
			"Last-Modified": "Wed, 01 Jan 2025 00:00:00 GMT",
		},
	}}
	f := newFetcherWith(cache, client)

	body, err := f.Fetch(context.Background(), "https://example.com/rss", time.Minute, time.Second)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if body != "<rss/>" {
		t.Errorf("body = %q, want %q", body, "<rss/>")
	}

	var entry Entry
	if err := json.Unmarshal(cache.data[cacheKey("https://example.com/rss")], &entry); err != nil {
		t.Fatalf("entry not stored: %v", err)
	}
	if entry.ETag != `"v1"` {
		t.Errorf("stored ETag = %q, want %q", entry.ETag, `"v1"`)
	}
	if entry.LastMod == "" {
		t.Error("stored entry missing Last-Modified")
	}
}

func TestFetch_FreshEntryAttachesRevalidationHeaders(t *testing.T) {
	cache := newMockCache()
	seedEntry(t, cache, "https://example.com/rss", Entry{
		Body:    "cached",
		ETag:    `"v1"`,
		LastMod: "Wed, 01 Jan 2025 00:00:00 GMT",
		TS:      time.Now(),
	})
	client := &mockHTTPClient{resp: &mockResponse{status: 200, body: "new", headers: map[string]string{}}}
	f := newFetcherWith(cache, client)

	if _, err := f.Fetch(context.Background(), "https://example.com/rss", time.Minute, time.Second); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if client.gotHeaders["If-None-Match"] != `"v1"` {
		t.Errorf("If-None-Match = %q, want %q", client.gotHeaders["If-None-Match"], `"v1"`)
	}
	if client.gotHeaders["If-Modified-Since"] == "" {
		t.Error("If-Modified-Since not attached for fresh entry")
	}
	if client.calls != 1 {
		t.Errorf("network calls = %d, want 1 (fresh entry must still revalidate)", client.calls)
	}
}

func TestFetch_NotModifiedReturnsCachedBody(t *testing.T) {
	cache := newMockCache()
	seedEntry(t, cache, "https://example.com/rss", Entry{
		Body: "cached body",
		ETag: `"v1"`,
		TS:   time.Now(),
	})
	client := &mockHTTPClient{resp: &mockResponse{status: 304, headers: map[string]string{}}}
	f := newFetcherWith(cache, client)

	body, err := f.Fetch(context.Background(), "https://example.com/rss", time.Minute, time.Second)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if body != "cached body" {
		t.Errorf("body = %q, want cached body unchanged", body)
	}
	if client.calls != 1 {
		t.Errorf("network calls = %d, want 1", client.calls)
	}
}

func TestFetch_StaleEntrySkipsRevalidationHeaders(t *testing.T) {
	cache := newMockCache()
	seedEntry(t, cache, "https://example.com/rss", Entry{
		Body: "old",
		ETag: `"v1"`,
		TS:   time.Now().Add(-time.Hour),
	})
	client := &mockHTTPClient{resp: &mockResponse{status: 200, body: "fresh", headers: map[string]string{}}}
	f := newFetcherWith(cache, client)

	body, err := f.Fetch(context.Background(), "https://example.com/rss", time.Minute, time.Second)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if body != "fresh" {
		t.Errorf("body = %q, want %q", body, "fresh")
	}
	if len(client.gotHeaders) != 0 {
		t.Errorf("stale entry attached headers: %v", client.gotHeaders)
	}
}

func TestFetch_NonSuccessStatusIsError(t *testing.T) {
	cache := newMockCache()
	client := &mockHTTPClient{resp: &mockResponse{status: 500, headers: map[string]string{}}}
	f := newFetcherWith(cache, client)

	_, err := f.Fetch(context.Background(), "https://example.com/rss", time.Minute, time.Second)
	if err == nil {
		t.Fatal("Fetch should fail on non-2xx status")
	}
	if !coreerrors.IsExternalAPI(err) {
		t.Errorf("error = %v, want ExternalAPIError", err)
	}
}

func TestFetch_NetworkErrorSurfaced(t *testing.T) {
	cache := newMockCache()
	client := &mockHTTPClient{err: errors.New("connection refused")}
	f := newFetcherWith(cache, client)

	_, err := f.Fetch(context.Background(), "https://example.com/rss", time.Minute, time.Second)
	if err == nil {
		t.Fatal("Fetch should surface network errors")
	}
}

func TestFetch_NoCacheConfigured(t *testing.T) {
	client := &mockHTTPClient{resp: &mockResponse{status: 200, body: "ok", headers: map[string]string{}}}
	f := NewFetcher(interfaces.Dependencies{HTTPClient: client})

	body, err := f.Fetch(context.Background(), "https://example.com/rss", time.Minute, time.Second)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if body != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}
}
