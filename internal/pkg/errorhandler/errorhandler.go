package errorhandler

import (
	"context"
	"net/http"

	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/response"
)

// InternalPage logs a store or rendering failure and answers with a generic
// plain-text 500. Nothing about the cause reaches the browser.
func InternalPage(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	logger.FromContext(ctx).Error().
		Str("operation", operation).
		Err(err).
		Msg("Request failed")

	response.Text(w, http.StatusInternalServerError, "Internal Server Error")
}

// InternalJSON is InternalPage for the JSON API.
func InternalJSON(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	logger.FromContext(ctx).Error().
		Str("operation", operation).
		Err(err).
		Msg("Request failed")

	response.InternalError(w)
}

// LogValidation records rejected input at warn level.
func LogValidation(ctx context.Context, operation string, fieldErrors map[string]string) {
	logger.FromContext(ctx).Warn().
		Str("operation", operation).
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")
}
