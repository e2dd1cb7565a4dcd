// ABOUTME: Cache-first loader serving stored articles and refreshing in the background
// ABOUTME: Refreshes are detached from the caller and announce completion on the event bus

package loader

import (
	"context"
	"sync"
	"time"

	"kenyanow-api/core/classify"
	"kenyanow-api/core/domain"
	coreerrors "kenyanow-api/core/errors"
	"kenyanow-api/core/events"
	"kenyanow-api/core/interfaces"
)

// homeLimit bounds how many stored articles the home view returns.
const homeLimit = 60

// NewsService produces fresh feed data for a refresh.
type NewsService interface {
	Kenya(ctx context.Context) ([]domain.Article, error)
	Global(ctx context.Context) ([]domain.Article, error)
}

// Loader answers reads from the local store immediately and triggers a
// detached refresh so the next read is fresher. Callers never wait on
// the network.
type Loader struct {
	news           NewsService
	store          interfaces.ArticleStore
	bus            *events.Bus
	deps           interfaces.Dependencies
	refreshTimeout time.Duration

	mu        sync.Mutex
	refreshes map[string]bool
}

// NewLoader creates a cache-first loader. refreshTimeout bounds each
// background refresh independently of any caller context.
func NewLoader(news NewsService, store interfaces.ArticleStore, bus *events.Bus, deps interfaces.Dependencies, refreshTimeout time.Duration) *Loader {
	return &Loader{
		news:           news,
		store:          store,
		bus:            bus,
		deps:           deps,
		refreshTimeout: refreshTimeout,
		refreshes:      make(map[string]bool),
	}
}

// LoadHome returns the stored home view and kicks off a background
// refresh scoped to home. The returned slice reflects the store as of
// this call; subscribers hear about fresher data on the bus.
func (l *Loader) LoadHome(ctx context.Context) ([]domain.CachedArticle, error) {
	cached, err := l.store.RecentAll(ctx, homeLimit)
	if err != nil {
		return nil, err
	}

	l.refreshDetached(events.ScopeHome)
	return cached, nil
}

// LoadCategory returns one stored page of a category section plus the
// section's total count, and kicks off a refresh scoped to the slug.
// Unknown slugs are a NotFoundError.
func (l *Loader) LoadCategory(ctx context.Context, slug string, page, size int) ([]domain.CachedArticle, int, error) {
	category := classify.CategoryFromSlug(slug)
	if category == "" {
		return nil, 0, &coreerrors.NotFoundError{Resource: "section", ID: slug}
	}

	rows, err := l.store.ByCategory(ctx, category, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	total, err := l.store.CountCategory(ctx, category)
	if err != nil {
		return nil, 0, err
	}

	l.refreshDetached(slug)
	return rows, total, nil
}

// refreshDetached starts a background refresh for a scope unless one is
// already running for it. The refresh uses its own context so a caller
// disconnecting does not abort it.
func (l *Loader) refreshDetached(scope string) {
	l.mu.Lock()
	if l.refreshes[scope] {
		l.mu.Unlock()
		return
	}
	l.refreshes[scope] = true
	l.mu.Unlock()

	go func() {
		defer func() {
			l.mu.Lock()
			delete(l.refreshes, scope)
			l.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), l.refreshTimeout)
		defer cancel()

		if l.refresh(ctx) {
			l.bus.Publish(events.RefreshEvent{Scope: scope})
		}
	}()
}

// refresh pulls both feeds and lands whatever succeeded in the store.
// It reports whether anything new landed; failures are logged and
// swallowed, background work never surfaces errors to a caller.
func (l *Loader) refresh(ctx context.Context) bool {
	landed := false

	if articles, err := l.news.Kenya(ctx); err != nil {
		l.logRefreshError(domain.FeedKenya, err)
	} else if err := l.store.Upsert(ctx, domain.FeedKenya, articles); err != nil {
		l.logRefreshError(domain.FeedKenya, err)
	} else {
		landed = true
	}

	if articles, err := l.news.Global(ctx); err != nil {
		l.logRefreshError(domain.FeedGlobal, err)
	} else if err := l.store.Upsert(ctx, domain.FeedGlobal, articles); err != nil {
		l.logRefreshError(domain.FeedGlobal, err)
	} else {
		landed = true
	}

	return landed
}

func (l *Loader) logRefreshError(feed string, err error) {
	if l.deps.Logger == nil {
		return
	}
	l.deps.Logger.Warn("background refresh failed", map[string]interface{}{
		"feed":  feed,
		"error": err.Error(),
	})
}
