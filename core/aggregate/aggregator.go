// ABOUTME: Feed aggregator fanning out over configured sources concurrently
// ABOUTME: Merges per-source results deterministically and dedupes by article ID

package aggregate

import (
	"context"
	"sort"
	"sync"
	"time"

	"kenyanow-api/core/domain"
	coreerrors "kenyanow-api/core/errors"
	"kenyanow-api/core/interfaces"
)

// maxConcurrentFetches bounds parallel source fetches.
const maxConcurrentFetches = 10

// Fetcher retrieves a feed document, consulting the response cache.
type Fetcher interface {
	Fetch(ctx context.Context, url string, ttl, timeout time.Duration) (string, error)
}

// Normalizer converts a raw feed document into articles.
type Normalizer interface {
	Normalize(content []byte, feedURL string, domestic bool) ([]domain.Article, error)
}

// Aggregator fetches and merges a set of sources into one article list.
type Aggregator struct {
	fetcher    Fetcher
	normalizer Normalizer
	deps       interfaces.Dependencies
	defaultTTL time.Duration
	timeout    time.Duration
}

// NewAggregator creates an aggregator. defaultTTL applies to sources that
// do not carry their own TTL override; timeout bounds each source fetch.
func NewAggregator(fetcher Fetcher, normalizer Normalizer, deps interfaces.Dependencies, defaultTTL, timeout time.Duration) *Aggregator {
	return &Aggregator{
		fetcher:    fetcher,
		normalizer: normalizer,
		deps:       deps,
		defaultTTL: defaultTTL,
		timeout:    timeout,
	}
}

// Aggregate fetches every source concurrently and returns the merged
// article list, newest first. Results are merged in source order before
// sorting, so equal timestamps resolve the same way on every run. A
// source that fails is logged and skipped; ErrAllFeedsFailed is returned
// only when no source yields articles.
func (a *Aggregator) Aggregate(ctx context.Context, sources []domain.Source) ([]domain.Article, error) {
	if len(sources) == 0 {
		return []domain.Article{}, nil
	}

	perSource := make([][]domain.Article, len(sources))
	failures := make([]error, len(sources))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentFetches)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, src domain.Source) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			articles, err := a.fetchSource(ctx, src)
			if err != nil {
				failures[idx] = err
				a.logFailure(src, err)
				return
			}
			perSource[idx] = articles
		}(i, src)
	}
	wg.Wait()

	failed := 0
	for _, err := range failures {
		if err != nil {
			failed++
		}
	}
	if failed == len(sources) {
		return nil, coreerrors.ErrAllFeedsFailed
	}

	// Merge in configured source order, keeping the first article seen
	// for each ID.
	seen := make(map[string]struct{})
	merged := make([]domain.Article, 0, 64)
	for _, articles := range perSource {
		for _, article := range articles {
			if _, dup := seen[article.ID]; dup {
				continue
			}
			seen[article.ID] = struct{}{}
			merged = append(merged, article)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	return merged, nil
}

func (a *Aggregator) fetchSource(ctx context.Context, src domain.Source) ([]domain.Article, error) {
	ttl := a.defaultTTL
	if src.TTLMs > 0 {
		ttl = time.Duration(src.TTLMs) * time.Millisecond
	}

	body, err := a.fetcher.Fetch(ctx, src.URL, ttl, a.timeout)
	if err != nil {
		return nil, err
	}
	return a.normalizer.Normalize([]byte(body), src.URL, src.Domestic)
}

func (a *Aggregator) logFailure(src domain.Source, err error) {
	if a.deps.Logger == nil {
		return
	}
	a.deps.Logger.Warn("source fetch failed", map[string]interface{}{
		"source": src.ID,
		"url":    src.URL,
		"error":  err.Error(),
	})
}
