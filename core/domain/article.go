// ABOUTME: Article domain model, the canonical unit produced by feed ingestion
// ABOUTME: Provides validation to keep invalid items out of every store

package domain

import "time"

// Category is one of the fixed article categories, or empty when unclassified.
type Category string

const (
	CategoryPolitics      Category = "Politics"
	CategoryBusiness      Category = "Business"
	CategorySports        Category = "Sports"
	CategoryTech          Category = "Tech"
	CategoryHealth        Category = "Health"
	CategoryEntertainment Category = "Entertainment"
)

// Article represents a normalized news item from any feed.
type Article struct {
	// ID is the content hash derived from (URL, Title); the dedup key
	ID string `json:"id"`

	// Source is the human-readable publisher name, or the feed host
	Source string `json:"source"`

	// Title is the headline
	Title string `json:"title"`

	// URL is the canonical link to the full story
	URL string `json:"url"`

	// Image is the resolved image URL, empty when none was found
	Image string `json:"image,omitempty"`

	// Excerpt is the plain-text description as supplied by the feed
	Excerpt string `json:"excerpt,omitempty"`

	// Summary is the sentence-bounded short form of the description
	Summary string `json:"summary,omitempty"`

	// Category is the classified category, empty when no rule matched
	Category Category `json:"category,omitempty"`

	// PublishedAt is the publication time; defaults to ingestion time
	// when the feed omits one, so it is always valid
	PublishedAt time.Time `json:"publishedAt"`
}

// IsValid reports whether the article has the required fields.
// Articles failing this check must be discarded before reaching any store.
func (a *Article) IsValid() bool {
	return a.Title != "" && a.URL != ""
}

// CachedArticle is the persistent-store variant of Article. It is owned
// exclusively by the store and never shared outside it.
type CachedArticle struct {
	Article

	// Feed is the originating logical group ("kenya" or "global")
	Feed string `json:"feed"`

	// CachedAt is the ingestion wall-clock time
	CachedAt time.Time `json:"cachedAt"`
}
