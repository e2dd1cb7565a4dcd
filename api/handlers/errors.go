// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"github.com/danielgtaylor/huma/v2"

	"kenyanow-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsExternalAPI(err) {
		if apiErr, ok := err.(*errors.ExternalAPIError); ok {
			switch {
			case apiErr.StatusCode >= 500:
				return huma.Error503ServiceUnavailable("upstream service error", err)
			case apiErr.StatusCode == 429:
				return huma.Error429TooManyRequests("rate limited by upstream service")
			case apiErr.StatusCode >= 400:
				return huma.Error400BadRequest("upstream request error", err)
			default:
				return huma.Error500InternalServerError("unexpected upstream response", err)
			}
		}
	}

	return huma.Error500InternalServerError("internal server error", err)
}
