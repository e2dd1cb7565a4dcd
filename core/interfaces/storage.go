// ABOUTME: Storage contract for the persistent client-side article store
// ABOUTME: Reads serve purely from local data and never block on the network

package interfaces

import (
	"context"

	"kenyanow-api/core/domain"
)

// ArticleStore persists articles per feed group with recency and category
// lookups. Upserts are last-write-wins by article ID; each upsert batch
// enforces the per-feed retention cap.
type ArticleStore interface {
	// Upsert writes a batch for one feed group, then evicts everything
	// beyond the retention cap, keeping the most recent by publish time.
	Upsert(ctx context.Context, feed string, articles []domain.Article) error

	// Recent returns up to limit articles for one feed group, newest
	// first.
	Recent(ctx context.Context, feed string, limit int) ([]domain.CachedArticle, error)

	// RecentAll returns up to limit articles across all feed groups,
	// newest first.
	RecentAll(ctx context.Context, limit int) ([]domain.CachedArticle, error)

	// ByCategory returns a page of locally-synced articles for a
	// category, newest first.
	ByCategory(ctx context.Context, category domain.Category, limit, offset int) ([]domain.CachedArticle, error)

	// CountCategory returns the number of locally-synced articles in a
	// category.
	CountCategory(ctx context.Context, category domain.Category) (int, error)
}
