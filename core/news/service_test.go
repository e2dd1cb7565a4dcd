package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"kenyanow-api/core/domain"
	coreerrors "kenyanow-api/core/errors"
	"kenyanow-api/core/interfaces"
)

type stubSources struct {
	byFeed map[string][]domain.Source
}

func (s *stubSources) ActiveByFeed(feed string) []domain.Source {
	return s.byFeed[feed]
}

type stubAggregator struct {
	articles   []domain.Article
	err        error
	gotSources []domain.Source
}

func (a *stubAggregator) Aggregate(_ context.Context, sources []domain.Source) ([]domain.Article, error) {
	a.gotSources = sources
	if a.err != nil {
		return nil, a.err
	}
	return a.articles, nil
}

type stubResolver struct {
	calls    int
	gotLimit int
}

func (r *stubResolver) ResolveMissing(_ context.Context, articles []domain.Article, limit int) {
	r.calls++
	r.gotLimit = limit
	for i := range articles {
		if articles[i].Image == "" {
			articles[i].Image = "https://cdn.example.com/resolved.jpg"
		}
	}
}

func fixedSources() *stubSources {
	return &stubSources{byFeed: map[string][]domain.Source{
		domain.FeedKenya:  {{ID: "standard", Feed: domain.FeedKenya, Domestic: true}},
		domain.FeedGlobal: {{ID: "bbc", Feed: domain.FeedGlobal}},
	}}
}

func TestKenya_UsesDomesticSources(t *testing.T) {
	agg := &stubAggregator{articles: []domain.Article{
		{ID: "1", Title: "t", URL: "u", PublishedAt: time.Now()},
	}}
	svc := NewService(fixedSources(), agg, &stubResolver{}, interfaces.Dependencies{}, 30)

	got, err := svc.Kenya(context.Background())
	if err != nil {
		t.Fatalf("Kenya returned error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d articles, want 1", len(got))
	}
	if len(agg.gotSources) != 1 || agg.gotSources[0].ID != "standard" {
		t.Errorf("aggregated sources = %+v, want the kenya set", agg.gotSources)
	}
}

func TestKenya_DoesNotScrapeImages(t *testing.T) {
	resolver := &stubResolver{}
	agg := &stubAggregator{articles: []domain.Article{{ID: "1", Title: "t", URL: "u"}}}
	svc := NewService(fixedSources(), agg, resolver, interfaces.Dependencies{}, 30)

	if _, err := svc.Kenya(context.Background()); err != nil {
		t.Fatalf("Kenya returned error: %v", err)
	}
	if resolver.calls != 0 {
		t.Errorf("resolver calls = %d, domestic feed should not scrape", resolver.calls)
	}
}

func TestGlobal_ResolvesMissingImages(t *testing.T) {
	resolver := &stubResolver{}
	agg := &stubAggregator{articles: []domain.Article{
		{ID: "1", Title: "no image", URL: "u1"},
		{ID: "2", Title: "has image", URL: "u2", Image: "https://cdn.example.com/kept.jpg"},
	}}
	svc := NewService(fixedSources(), agg, resolver, interfaces.Dependencies{}, 30)

	got, err := svc.Global(context.Background())
	if err != nil {
		t.Fatalf("Global returned error: %v", err)
	}

	if resolver.calls != 1 {
		t.Fatalf("resolver calls = %d, want 1", resolver.calls)
	}
	if resolver.gotLimit != 30 {
		t.Errorf("resolver limit = %d, want configured batch size", resolver.gotLimit)
	}
	if got[0].Image == "" {
		t.Error("missing image not resolved")
	}
	if got[1].Image != "https://cdn.example.com/kept.jpg" {
		t.Error("existing image replaced")
	}
	if len(agg.gotSources) != 1 || agg.gotSources[0].ID != "bbc" {
		t.Errorf("aggregated sources = %+v, want the global set", agg.gotSources)
	}
}

func TestGlobal_AggregateErrorPassedThrough(t *testing.T) {
	resolver := &stubResolver{}
	agg := &stubAggregator{err: coreerrors.ErrAllFeedsFailed}
	svc := NewService(fixedSources(), agg, resolver, interfaces.Dependencies{}, 30)

	_, err := svc.Global(context.Background())
	if !errors.Is(err, coreerrors.ErrAllFeedsFailed) {
		t.Errorf("error = %v, want ErrAllFeedsFailed", err)
	}
	if resolver.calls != 0 {
		t.Error("resolver should not run when aggregation fails")
	}
}

func TestGlobal_NilResolver(t *testing.T) {
	agg := &stubAggregator{articles: []domain.Article{{ID: "1", Title: "t", URL: "u"}}}
	svc := NewService(fixedSources(), agg, nil, interfaces.Dependencies{}, 30)

	if _, err := svc.Global(context.Background()); err != nil {
		t.Fatalf("Global returned error: %v", err)
	}
}
