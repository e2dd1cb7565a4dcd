// ABOUTME: News handlers for the Huma API
// ABOUTME: Serves the live feed endpoints plus the cache-first home and section views

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"kenyanow-api/core/domain"
	coreerrors "kenyanow-api/core/errors"
)

// NewsService provides the live merged feeds.
type NewsService interface {
	Kenya(ctx context.Context) ([]domain.Article, error)
	Global(ctx context.Context) ([]domain.Article, error)
}

// NewsLoader provides the cache-first views backed by the article store.
type NewsLoader interface {
	LoadHome(ctx context.Context) ([]domain.CachedArticle, error)
	LoadCategory(ctx context.Context, slug string, page, size int) ([]domain.CachedArticle, int, error)
}

// NewsHandler handles news-related HTTP requests.
type NewsHandler struct {
	news   NewsService
	loader NewsLoader
}

// NewNewsHandler creates a news handler.
func NewNewsHandler(news NewsService, loader NewsLoader) *NewsHandler {
	return &NewsHandler{news: news, loader: loader}
}

// RegisterRoutes registers all news routes.
func (h *NewsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getKenyaFeed",
		Method:      http.MethodGet,
		Path:        "/api/kenya",
		Summary:     "Get the merged Kenyan news feed",
		Description: "Fetches every active domestic source and returns the merged, deduplicated feed, newest first",
		Tags:        []string{"News"},
	}, h.GetKenya)

	huma.Register(api, huma.Operation{
		OperationID: "getGlobalFeed",
		Method:      http.MethodGet,
		Path:        "/api/global",
		Summary:     "Get the merged global news feed",
		Description: "Fetches every active global source and returns the merged feed with scraped preview images",
		Tags:        []string{"News"},
	}, h.GetGlobal)

	huma.Register(api, huma.Operation{
		OperationID: "getHome",
		Method:      http.MethodGet,
		Path:        "/api/home",
		Summary:     "Get the stored home view",
		Description: "Returns the most recent stored articles across both feeds and refreshes them in the background",
		Tags:        []string{"News"},
	}, h.GetHome)

	huma.Register(api, huma.Operation{
		OperationID: "getNewsSection",
		Method:      http.MethodGet,
		Path:        "/api/news/{section}",
		Summary:     "Get one category section, paginated",
		Description: "Returns a stored page of a category section and refreshes it in the background",
		Tags:        []string{"News"},
	}, h.GetSection)
}

// FeedResponse is the body of the live feed endpoints.
type FeedResponse struct {
	Items []domain.Article `json:"items"`
	Error string           `json:"error,omitempty"`
}

// FeedOutput wraps a feed response with an explicit status so total
// upstream failure can answer 502 with a well-formed body.
type FeedOutput struct {
	Status int
	Body   FeedResponse
}

// GetKenya handles GET /api/kenya.
func (h *NewsHandler) GetKenya(ctx context.Context, _ *struct{}) (*FeedOutput, error) {
	return h.liveFeed(h.news.Kenya(ctx))
}

// GetGlobal handles GET /api/global.
func (h *NewsHandler) GetGlobal(ctx context.Context, _ *struct{}) (*FeedOutput, error) {
	return h.liveFeed(h.news.Global(ctx))
}

func (h *NewsHandler) liveFeed(articles []domain.Article, err error) (*FeedOutput, error) {
	if err != nil {
		if errors.Is(err, coreerrors.ErrAllFeedsFailed) {
			return &FeedOutput{
				Status: http.StatusBadGateway,
				Body:   FeedResponse{Items: []domain.Article{}, Error: err.Error()},
			}, nil
		}
		return nil, toHumaError(err)
	}

	if articles == nil {
		articles = []domain.Article{}
	}
	return &FeedOutput{Status: http.StatusOK, Body: FeedResponse{Items: articles}}, nil
}

// HomeOutput is the response of the home view.
type HomeOutput struct {
	Body struct {
		Items []domain.CachedArticle `json:"items"`
	}
}

// GetHome handles GET /api/home.
func (h *NewsHandler) GetHome(ctx context.Context, _ *struct{}) (*HomeOutput, error) {
	items, err := h.loader.LoadHome(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	if items == nil {
		items = []domain.CachedArticle{}
	}

	out := &HomeOutput{}
	out.Body.Items = items
	return out, nil
}

// SectionInput is the input of the section endpoint. Out-of-range paging
// values are rejected before the handler runs.
type SectionInput struct {
	Section string `path:"section" doc:"Category section slug, e.g. sports"`
	Page    int    `query:"page" default:"1" minimum:"1" doc:"1-based page number"`
	Size    int    `query:"size" default:"20" minimum:"6" maximum:"40" doc:"Page size"`
}

// SectionOutput is the paginated section response.
type SectionOutput struct {
	Body struct {
		Items    []domain.CachedArticle `json:"items"`
		Total    int                    `json:"total"`
		Page     int                    `json:"page"`
		PageSize int                    `json:"pageSize"`
		HasMore  bool                   `json:"hasMore"`
	}
}

// GetSection handles GET /api/news/{section}.
func (h *NewsHandler) GetSection(ctx context.Context, input *SectionInput) (*SectionOutput, error) {
	items, total, err := h.loader.LoadCategory(ctx, input.Section, input.Page, input.Size)
	if err != nil {
		return nil, toHumaError(err)
	}
	if items == nil {
		items = []domain.CachedArticle{}
	}

	out := &SectionOutput{}
	out.Body.Items = items
	out.Body.Total = total
	out.Body.Page = input.Page
	out.Body.PageSize = input.Size
	out.Body.HasMore = input.Page*input.Size < total
	return out, nil
}
