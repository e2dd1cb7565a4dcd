// ABOUTME: SQLite-backed article store that survives application restarts
// ABOUTME: Enforces the per-feed retention cap on every upsert batch

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"kenyanow-api/core/domain"
	"kenyanow-api/core/interfaces"
)

// Store implements the ArticleStore interface on a SQLite file.
type Store struct {
	db           *sql.DB
	retentionCap int
	logger       interfaces.Logger
}

// NewStore opens (or creates) the article database at filePath.
// retentionCap bounds how many articles each feed keeps.
func NewStore(filePath string, retentionCap int, logger interfaces.Logger) (*Store, error) {
	if filePath == "" {
		filePath = "news.db"
	}
	if retentionCap <= 0 {
		return nil, fmt.Errorf("retention cap must be positive, got %d", retentionCap)
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open article database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to article database: %w", err)
	}

	s := &Store{db: db, retentionCap: retentionCap, logger: logger}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			feed TEXT NOT NULL,
			source TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			image TEXT,
			excerpt TEXT,
			summary TEXT,
			category TEXT,
			published_at INTEGER NOT NULL,
			cached_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_articles_feed_published ON articles(feed, published_at DESC);
		CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
	`
	_, err := s.db.Exec(query)
	return err
}

// Upsert writes a batch of articles under the given feed and then trims
// the feed back to the retention cap, dropping the oldest entries. A
// re-seen article keeps its original row, so arrival order survives as
// the eviction tie-break. Invalid articles are skipped, not fatal.
func (s *Store) Upsert(ctx context.Context, feed string, articles []domain.Article) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (id, feed, source, title, url, image, excerpt, summary, category, published_at, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			feed = excluded.feed,
			source = excluded.source,
			title = excluded.title,
			url = excluded.url,
			image = excluded.image,
			excerpt = excluded.excerpt,
			summary = excluded.summary,
			category = excluded.category,
			published_at = excluded.published_at,
			cached_at = excluded.cached_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	for _, a := range articles {
		if !a.IsValid() {
			if s.logger != nil {
				s.logger.Debug("skipping invalid article", map[string]interface{}{"id": a.ID})
			}
			continue
		}
		_, err := stmt.ExecContext(ctx,
			a.ID, feed, a.Source, a.Title, a.URL, a.Image,
			a.Excerpt, a.Summary, string(a.Category),
			a.PublishedAt.UnixMilli(), now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert article %s: %w", a.ID, err)
		}
	}

	// Trim the feed to the cap. rowid breaks published_at ties in favor
	// of earlier arrivals.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM articles
		WHERE feed = ? AND id NOT IN (
			SELECT id FROM articles
			WHERE feed = ?
			ORDER BY published_at DESC, rowid ASC
			LIMIT ?
		)
	`, feed, feed, s.retentionCap)
	if err != nil {
		return fmt.Errorf("failed to trim feed %s: %w", feed, err)
	}

	return tx.Commit()
}

// Recent returns up to limit articles for one feed, newest first.
func (s *Store) Recent(ctx context.Context, feed string, limit int) ([]domain.CachedArticle, error) {
	return s.query(ctx, `
		SELECT id, feed, source, title, url, image, excerpt, summary, category, published_at, cached_at
		FROM articles
		WHERE feed = ?
		ORDER BY published_at DESC, rowid ASC
		LIMIT ?
	`, feed, limit)
}

// RecentAll returns up to limit articles across all feeds, newest first.
func (s *Store) RecentAll(ctx context.Context, limit int) ([]domain.CachedArticle, error) {
	return s.query(ctx, `
		SELECT id, feed, source, title, url, image, excerpt, summary, category, published_at, cached_at
		FROM articles
		ORDER BY published_at DESC, rowid ASC
		LIMIT ?
	`, limit)
}

// ByCategory returns one page of a category, newest first.
func (s *Store) ByCategory(ctx context.Context, category domain.Category, limit, offset int) ([]domain.CachedArticle, error) {
	return s.query(ctx, `
		SELECT id, feed, source, title, url, image, excerpt, summary, category, published_at, cached_at
		FROM articles
		WHERE category = ?
		ORDER BY published_at DESC, rowid ASC
		LIMIT ? OFFSET ?
	`, string(category), limit, offset)
}

// CountCategory returns the total number of stored articles in a category.
func (s *Store) CountCategory(ctx context.Context, category domain.Category) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles WHERE category = ?", string(category),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count category %s: %w", category, err)
	}
	return count, nil
}

func (s *Store) query(ctx context.Context, query string, args ...interface{}) ([]domain.CachedArticle, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	out := []domain.CachedArticle{}
	for rows.Next() {
		var (
			a           domain.CachedArticle
			category    string
			publishedAt int64
			cachedAt    int64
		)
		err := rows.Scan(&a.ID, &a.Feed, &a.Source, &a.Title, &a.URL, &a.Image,
			&a.Excerpt, &a.Summary, &category, &publishedAt, &cachedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		a.Category = domain.Category(category)
		a.PublishedAt = time.UnixMilli(publishedAt)
		a.CachedAt = time.UnixMilli(cachedAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
