// ABOUTME: Open Graph image resolver for articles whose feeds carry no image
// ABOUTME: Scrapes article pages with colly and caches results per URL

package images

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"

	"kenyanow-api/core/domain"
	"kenyanow-api/core/interfaces"
)

const scrapeUserAgent = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"

// Resolver fills in article images by scraping the article page for
// social-preview metadata.
type Resolver struct {
	deps interfaces.Dependencies
	ttl  time.Duration

	// scrape fetches a page and returns its preview image; replaced in tests.
	scrape func(articleURL string) (string, error)
}

// NewResolver creates an image resolver. ttl bounds how long a resolved
// image is cached per article URL.
func NewResolver(deps interfaces.Dependencies, ttl time.Duration) *Resolver {
	r := &Resolver{deps: deps, ttl: ttl}
	r.scrape = r.scrapePage
	return r
}

func cacheKey(articleURL string) string {
	return "og:" + articleURL
}

// Resolve returns the preview image for an article page, consulting the
// cache first. A page with no usable image resolves to an empty string,
// which is also cached so the page is not re-scraped every batch.
func (r *Resolver) Resolve(ctx context.Context, articleURL string) (string, error) {
	if r.deps.Cache != nil {
		if data, err := r.deps.Cache.Get(ctx, cacheKey(articleURL)); err == nil && data != nil {
			return string(data), nil
		}
	}

	image, err := r.scrape(articleURL)
	if err != nil {
		return "", err
	}

	if r.deps.Cache != nil {
		_ = r.deps.Cache.Set(ctx, cacheKey(articleURL), []byte(image), r.ttl)
	}
	return image, nil
}

// ResolveMissing fills images in place for articles that lack one,
// scraping at most limit articles from the head of the slice. Individual
// failures are logged and skipped; resolution is best effort.
func (r *Resolver) ResolveMissing(ctx context.Context, articles []domain.Article, limit int) {
	if limit > len(articles) {
		limit = len(articles)
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 10)

	for i := 0; i < limit; i++ {
		if articles[i].Image != "" {
			continue
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			image, err := r.Resolve(ctx, articles[idx].URL)
			if err != nil {
				if r.deps.Logger != nil {
					r.deps.Logger.Debug("image resolution failed", map[string]interface{}{
						"url":   articles[idx].URL,
						"error": err.Error(),
					})
				}
				return
			}
			articles[idx].Image = image
		}(i)
	}

	wg.Wait()
}

// scrapePage fetches the article page and extracts a preview image from
// its head metadata.
func (r *Resolver) scrapePage(articleURL string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent(scrapeUserAgent),
		colly.MaxBodySize(5*1024*1024),
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(10 * time.Second)

	var image string
	var scrapeErr error

	c.OnResponse(func(resp *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
		if err != nil {
			scrapeErr = err
			return
		}
		image = extractImage(doc, articleURL)
	})

	if err := c.Visit(articleURL); err != nil {
		return "", err
	}
	c.Wait()

	if scrapeErr != nil {
		return "", scrapeErr
	}
	return image, nil
}

// extractImage picks the preview image from page metadata, preferring
// og:image, then twitter:image, then a link rel=image_src. Relative
// candidates are resolved against the article URL; only candidates that
// end up as absolute http(s) URLs qualify.
func extractImage(doc *goquery.Document, articleURL string) string {
	candidates := []string{
		doc.Find(`meta[property="og:image"]`).First().AttrOr("content", ""),
		doc.Find(`meta[name="twitter:image"]`).First().AttrOr("content", ""),
		doc.Find(`link[rel="image_src"]`).First().AttrOr("href", ""),
	}

	for _, candidate := range candidates {
		if resolved := resolveImageURL(candidate, articleURL); resolved != "" {
			return resolved
		}
	}
	return ""
}

// resolveImageURL resolves raw against the article URL and returns the
// absolute http(s) form, or "" when the candidate is unusable (empty,
// unparsable, or a non-http scheme like data:).
func resolveImageURL(raw, articleURL string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	candidate, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if base, err := url.Parse(articleURL); err == nil {
		candidate = base.ResolveReference(candidate)
	}

	if (candidate.Scheme != "http" && candidate.Scheme != "https") || candidate.Host == "" {
		return ""
	}
	return candidate.String()
}
