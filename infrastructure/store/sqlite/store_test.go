package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"kenyanow-api/core/domain"
)

func newTestStore(t *testing.T, cap int) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "news.db")
	s, err := NewStore(path, cap, nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func article(id string, published time.Time) domain.Article {
	return domain.Article{
		ID:          id,
		Source:      "Test",
		Title:       "title " + id,
		URL:         "https://example.com/" + id,
		Category:    domain.CategoryPolitics,
		PublishedAt: published,
	}
}

func TestUpsertAndRecent(t *testing.T) {
	s := newTestStore(t, 400)
	ctx := context.Background()
	base := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

	batch := []domain.Article{
		article("a", base),
		article("b", base.Add(time.Hour)),
		article("c", base.Add(2*time.Hour)),
	}
	if err := s.Upsert(ctx, domain.FeedKenya, batch); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	got, err := s.Recent(ctx, domain.FeedKenya, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d articles, want 3", len(got))
	}
	wantOrder := []string{"c", "b", "a"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
	if got[0].Feed != domain.FeedKenya {
		t.Errorf("Feed = %q", got[0].Feed)
	}
	if got[0].CachedAt.IsZero() {
		t.Error("CachedAt not recorded")
	}
}

func TestUpsert_UpdatesExistingRow(t *testing.T) {
	s := newTestStore(t, 400)
	ctx := context.Background()
	base := time.Now().Truncate(time.Millisecond)

	first := article("a", base)
	if err := s.Upsert(ctx, domain.FeedKenya, []domain.Article{first}); err != nil {
		t.Fatal(err)
	}

	updated := first
	updated.Image = "https://cdn.example.com/new.jpg"
	if err := s.Upsert(ctx, domain.FeedKenya, []domain.Article{updated}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Recent(ctx, domain.FeedKenya, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1 (upsert must not duplicate)", len(got))
	}
	if got[0].Image != "https://cdn.example.com/new.jpg" {
		t.Errorf("Image = %q, want updated value", got[0].Image)
	}
}

func TestUpsert_SkipsInvalidArticles(t *testing.T) {
	s := newTestStore(t, 400)
	ctx := context.Background()

	batch := []domain.Article{
		article("ok", time.Now()),
		{ID: "no-title", URL: "https://example.com/x"},
	}
	if err := s.Upsert(ctx, domain.FeedKenya, batch); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	got, _ := s.Recent(ctx, domain.FeedKenya, 10)
	if len(got) != 1 {
		t.Errorf("got %d rows, want 1 (invalid article skipped)", len(got))
	}
}

func TestUpsert_EnforcesRetentionCap(t *testing.T) {
	s := newTestStore(t, 5)
	ctx := context.Background()
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	batch := make([]domain.Article, 8)
	for i := range batch {
		batch[i] = article(fmt.Sprintf("k%d", i), base.Add(time.Duration(i)*time.Hour))
	}
	if err := s.Upsert(ctx, domain.FeedKenya, batch); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Recent(ctx, domain.FeedKenya, 100)
	if len(got) != 5 {
		t.Fatalf("got %d rows, want cap of 5", len(got))
	}
	// the newest five survive
	if got[0].ID != "k7" || got[4].ID != "k3" {
		t.Errorf("kept range [%s..%s], want [k7..k3]", got[0].ID, got[4].ID)
	}
}

func TestUpsert_CapTieBreaksByArrival(t *testing.T) {
	s := newTestStore(t, 2)
	ctx := context.Background()
	tied := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	// three articles with the same timestamp, arriving in two batches
	if err := s.Upsert(ctx, domain.FeedKenya, []domain.Article{
		article("first", tied),
		article("second", tied),
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(ctx, domain.FeedKenya, []domain.Article{
		article("third", tied),
	}); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Recent(ctx, domain.FeedKenya, 10)
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	ids := map[string]bool{}
	for _, a := range got {
		ids[a.ID] = true
	}
	if !ids["first"] || !ids["second"] {
		t.Errorf("kept %v, want the earliest arrivals on a timestamp tie", ids)
	}
}

func TestUpsert_CapIsPerFeed(t *testing.T) {
	s := newTestStore(t, 2)
	ctx := context.Background()
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	if err := s.Upsert(ctx, domain.FeedKenya, []domain.Article{
		article("k1", base), article("k2", base.Add(time.Hour)),
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(ctx, domain.FeedGlobal, []domain.Article{
		article("g1", base), article("g2", base.Add(time.Hour)),
	}); err != nil {
		t.Fatal(err)
	}

	kenya, _ := s.Recent(ctx, domain.FeedKenya, 10)
	global, _ := s.Recent(ctx, domain.FeedGlobal, 10)
	if len(kenya) != 2 || len(global) != 2 {
		t.Errorf("kenya=%d global=%d, want 2 and 2 (caps independent)", len(kenya), len(global))
	}
}

func TestRecentAll(t *testing.T) {
	s := newTestStore(t, 400)
	ctx := context.Background()
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	s.Upsert(ctx, domain.FeedKenya, []domain.Article{article("k1", base.Add(time.Hour))})
	s.Upsert(ctx, domain.FeedGlobal, []domain.Article{article("g1", base.Add(2 * time.Hour))})

	got, err := s.RecentAll(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].ID != "g1" {
		t.Errorf("newest first across feeds: got %s", got[0].ID)
	}
}

func TestByCategoryPagination(t *testing.T) {
	s := newTestStore(t, 400)
	ctx := context.Background()
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	batch := make([]domain.Article, 5)
	for i := range batch {
		batch[i] = article(fmt.Sprintf("p%d", i), base.Add(time.Duration(i)*time.Hour))
	}
	sports := article("s1", base)
	sports.Category = domain.CategorySports
	batch = append(batch, sports)

	if err := s.Upsert(ctx, domain.FeedKenya, batch); err != nil {
		t.Fatal(err)
	}

	page1, err := s.ByCategory(ctx, domain.CategoryPolitics, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(page1) != 2 || page1[0].ID != "p4" || page1[1].ID != "p3" {
		t.Errorf("page1 = %v", ids(page1))
	}

	page2, err := s.ByCategory(ctx, domain.CategoryPolitics, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page2) != 2 || page2[0].ID != "p2" {
		t.Errorf("page2 = %v", ids(page2))
	}

	count, err := s.CountCategory(ctx, domain.CategoryPolitics)
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
}

func TestRecent_EmptyStore(t *testing.T) {
	s := newTestStore(t, 400)

	got, err := s.Recent(context.Background(), domain.FeedKenya, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d rows, want 0", len(got))
	}
}

func ids(articles []domain.CachedArticle) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}
