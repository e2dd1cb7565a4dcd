// ABOUTME: News service exposing the kenya and global feed operations
// ABOUTME: Wires the source registry, aggregator and image resolver together

package news

import (
	"context"

	"kenyanow-api/core/domain"
	"kenyanow-api/core/interfaces"
)

// SourceProvider yields the active sources for a feed.
type SourceProvider interface {
	ActiveByFeed(feed string) []domain.Source
}

// Aggregator merges a set of sources into one article list.
type Aggregator interface {
	Aggregate(ctx context.Context, sources []domain.Source) ([]domain.Article, error)
}

// ImageResolver fills missing article images in place.
type ImageResolver interface {
	ResolveMissing(ctx context.Context, articles []domain.Article, limit int)
}

// Service is the feed-facing news service.
type Service struct {
	sources    SourceProvider
	aggregator Aggregator
	images     ImageResolver
	deps       interfaces.Dependencies
	imageBatch int
}

// NewService creates a news service. imageBatch caps how many global
// articles get an image scrape per request.
func NewService(sources SourceProvider, aggregator Aggregator, images ImageResolver, deps interfaces.Dependencies, imageBatch int) *Service {
	return &Service{
		sources:    sources,
		aggregator: aggregator,
		images:     images,
		deps:       deps,
		imageBatch: imageBatch,
	}
}

// Kenya returns the merged domestic feed, newest first.
func (s *Service) Kenya(ctx context.Context) ([]domain.Article, error) {
	return s.aggregator.Aggregate(ctx, s.sources.ActiveByFeed(domain.FeedKenya))
}

// Global returns the merged global feed, newest first. Global outlets
// rarely ship images in their feeds, so the head of the list gets an
// image scrape; failures there never fail the feed.
func (s *Service) Global(ctx context.Context) ([]domain.Article, error) {
	articles, err := s.aggregator.Aggregate(ctx, s.sources.ActiveByFeed(domain.FeedGlobal))
	if err != nil {
		return nil, err
	}

	if s.images != nil {
		s.images.ResolveMissing(ctx, articles, s.imageBatch)
	}
	return articles, nil
}
