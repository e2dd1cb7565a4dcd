// ABOUTME: Feed normalizer parsing raw RSS/Atom documents into canonical Articles
// ABOUTME: Applies sanitization, classification, identity and the domestic filters

package feed

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"kenyanow-api/core/classify"
	"kenyanow-api/core/domain"
	coreerrors "kenyanow-api/core/errors"
	"kenyanow-api/core/identity"
	"kenyanow-api/core/interfaces"
	"kenyanow-api/core/relevance"
	"kenyanow-api/core/sanitize"
)

// summarySentences bounds article summaries.
const summarySentences = 3

// embeddedImgPattern is the last-resort image source: an <img> tag inside
// the item's encoded content.
var embeddedImgPattern = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)

// Normalizer converts raw feed documents into Articles.
type Normalizer struct {
	deps interfaces.Dependencies
}

// NewNormalizer creates a feed normalizer.
func NewNormalizer(deps interfaces.Dependencies) *Normalizer {
	return &Normalizer{deps: deps}
}

// Normalize parses a raw feed document and returns the valid articles it
// contains. gofeed tolerates both RSS and Atom and both single-item and
// multi-item channel shapes. For domestic feeds, items must pass the host
// allow-list and the relevance heuristic. Output order is not guaranteed;
// the aggregator imposes ordering.
func (n *Normalizer) Normalize(content []byte, feedURL string, domestic bool) ([]domain.Article, error) {
	if len(content) == 0 {
		return nil, &coreerrors.ValidationError{Field: "content", Message: "empty feed document"}
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(content))
	if err != nil {
		return nil, coreerrors.WrapError(err, "parsing feed "+feedURL)
	}

	source := strings.TrimSpace(parsed.Title)
	if source == "" {
		source = hostOf(feedURL)
	}

	now := time.Now()
	articles := make([]domain.Article, 0, len(parsed.Items))

	for _, item := range parsed.Items {
		article, ok := n.normalizeItem(item, source, domestic, now)
		if !ok {
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}

// normalizeItem converts one feed item; ok is false when the item fails a
// required-field check or a domestic filter.
func (n *Normalizer) normalizeItem(item *gofeed.Item, source string, domestic bool, now time.Time) (domain.Article, bool) {
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return domain.Article{}, false
	}

	if domestic {
		if !relevance.IsAllowedHost(link) {
			n.debug("dropping item from non-allow-listed host", link)
			return domain.Article{}, false
		}
		if !relevance.IsRelevant(title, item.Categories) {
			n.debug("dropping non-domestic item", link)
			return domain.Article{}, false
		}
	}

	excerpt := sanitize.ToPlainText(item.Description)

	article := domain.Article{
		ID:          identity.ArticleID(link, title),
		Source:      source,
		Title:       title,
		URL:         link,
		Image:       findImage(item),
		Excerpt:     excerpt,
		Summary:     sanitize.SummarizeToSentences(excerpt, summarySentences),
		Category:    classify.FromTitleTags(title, item.Categories),
		PublishedAt: publishedAt(item, now),
	}

	return article, article.IsValid()
}

// publishedAt normalizes the item's publish time, defaulting to ingestion
// time when the source omits one.
func publishedAt(item *gofeed.Item, now time.Time) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return now
}

// findImage extracts an image URL from feed-native fields, in priority
// order: media namespace, enclosure, item image, then an <img> embedded
// in the encoded content. Empty when nothing matched; the image resolver
// may fill it later from the article page.
func findImage(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, field := range []string{"content", "thumbnail"} {
			for _, ext := range media[field] {
				if u := ext.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	for _, encoded := range []string{item.Content, item.Description} {
		if m := embeddedImgPattern.FindStringSubmatch(encoded); m != nil {
			return m[1]
		}
	}

	return ""
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return rawURL
}

func (n *Normalizer) debug(msg, link string) {
	if n.deps.Logger != nil {
		n.deps.Logger.Debug(msg, map[string]interface{}{"link": link})
	}
}
