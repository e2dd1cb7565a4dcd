// ABOUTME: Admin handlers for managing the configured RSS sources
// ABOUTME: Supports listing and partial updates; changes apply until restart

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"kenyanow-api/core/domain"
)

// SourceRegistry is the mutable source store behind the admin endpoints.
type SourceRegistry interface {
	List() []domain.Source
	Update(id string, patch domain.SourcePatch) (domain.Source, error)
}

// AdminHandler handles source administration requests.
type AdminHandler struct {
	registry SourceRegistry
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(registry SourceRegistry) *AdminHandler {
	return &AdminHandler{registry: registry}
}

// RegisterRoutes registers the admin routes.
func (h *AdminHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listSources",
		Method:      http.MethodGet,
		Path:        "/api/admin/sources",
		Summary:     "List configured sources",
		Tags:        []string{"Admin"},
	}, h.ListSources)

	huma.Register(api, huma.Operation{
		OperationID: "updateSource",
		Method:      http.MethodPatch,
		Path:        "/api/admin/sources",
		Summary:     "Update one source",
		Description: "Applies a partial update to a source by id. TTL overrides below 10 seconds are raised to the floor.",
		Tags:        []string{"Admin"},
	}, h.UpdateSource)
}

// ListSourcesOutput is the source listing response.
type ListSourcesOutput struct {
	Body struct {
		Items []domain.Source `json:"items"`
	}
}

// ListSources handles GET /api/admin/sources.
func (h *AdminHandler) ListSources(_ context.Context, _ *struct{}) (*ListSourcesOutput, error) {
	out := &ListSourcesOutput{}
	out.Body.Items = h.registry.List()
	return out, nil
}

// UpdateSourceInput is the partial-update request.
type UpdateSourceInput struct {
	Body struct {
		ID     string  `json:"id" minLength:"1" doc:"Source id to update"`
		Active *bool   `json:"active,omitempty"`
		TTLMs  *int    `json:"ttlMs,omitempty"`
		URL    *string `json:"url,omitempty" format:"uri"`
		Label  *string `json:"label,omitempty"`
	}
}

// UpdateSourceOutput is the updated source.
type UpdateSourceOutput struct {
	Body struct {
		Item domain.Source `json:"item"`
	}
}

// UpdateSource handles PATCH /api/admin/sources.
func (h *AdminHandler) UpdateSource(_ context.Context, input *UpdateSourceInput) (*UpdateSourceOutput, error) {
	updated, err := h.registry.Update(input.Body.ID, domain.SourcePatch{
		Active: input.Body.Active,
		TTLMs:  input.Body.TTLMs,
		URL:    input.Body.URL,
		Label:  input.Body.Label,
	})
	if err != nil {
		return nil, toHumaError(err)
	}

	out := &UpdateSourceOutput{}
	out.Body.Item = updated
	return out, nil
}
