// ABOUTME: Conditional fetcher with a per-URL TTL response cache
// ABOUTME: Fresh entries revalidate via ETag/Last-Modified; 304 reuses the cached body

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	coreerrors "kenyanow-api/core/errors"
	"kenyanow-api/core/interfaces"
)

// Entry is one response-cache record. One entry per URL, overwritten on
// refresh, never merged.
type Entry struct {
	Body    string    `json:"body"`
	ETag    string    `json:"etag,omitempty"`
	LastMod string    `json:"lastMod,omitempty"`
	TS      time.Time `json:"ts"`
}

// Fetcher performs conditional HTTP fetches backed by a TTL cache keyed
// by source URL.
type Fetcher struct {
	deps interfaces.Dependencies
}

// NewFetcher creates a conditional fetcher.
func NewFetcher(deps interfaces.Dependencies) *Fetcher {
	return &Fetcher{deps: deps}
}

func cacheKey(url string) string {
	return "resp:" + url
}

// Fetch retrieves the document at url. A fresh cached entry does not skip
// the network call; it attaches revalidation headers so an unchanged
// document costs a 304 instead of a re-transfer. The timeout cancels the
// in-flight request; the underlying client retries once on failure.
func (f *Fetcher) Fetch(ctx context.Context, url string, ttl, timeout time.Duration) (string, error) {
	entry := f.cachedEntry(ctx, url, ttl)

	headers := make(map[string]string)
	if entry != nil {
		if entry.ETag != "" {
			headers["If-None-Match"] = entry.ETag
		}
		if entry.LastMod != "" {
			headers["If-Modified-Since"] = entry.LastMod
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := f.deps.HTTPClient.GetWithHeaders(reqCtx, url, headers)
	if err != nil {
		return "", coreerrors.WrapError(err, "fetching "+url)
	}
	defer resp.Body().Close()

	if resp.StatusCode() == http.StatusNotModified && entry != nil {
		// revalidated: the cached body is still current
		f.storeEntry(ctx, url, *entry, ttl)
		return entry.Body, nil
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode()),
			URL:        url,
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return "", coreerrors.WrapError(err, "reading response from "+url)
	}

	f.storeEntry(ctx, url, Entry{
		Body:    string(body),
		ETag:    resp.Header("ETag"),
		LastMod: resp.Header("Last-Modified"),
		TS:      time.Now(),
	}, ttl)

	return string(body), nil
}

// cachedEntry returns the response-cache entry for url if one is still
// fresh within ttl. Cache failures degrade to a plain fetch.
func (f *Fetcher) cachedEntry(ctx context.Context, url string, ttl time.Duration) *Entry {
	if f.deps.Cache == nil {
		return nil
	}

	data, err := f.deps.Cache.Get(ctx, cacheKey(url))
	if err != nil || data == nil {
		return nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	if time.Since(entry.TS) > ttl {
		return nil // stale
	}
	return &entry
}

// storeEntry replaces the cache entry for url. Errors are logged, not
// surfaced; caching is best effort.
func (f *Fetcher) storeEntry(ctx context.Context, url string, entry Entry, ttl time.Duration) {
	if f.deps.Cache == nil {
		return
	}

	entry.TS = time.Now()
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	if err := f.deps.Cache.Set(ctx, cacheKey(url), data, ttl); err != nil && f.deps.Logger != nil {
		f.deps.Logger.Warn("failed to cache response", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}
}
