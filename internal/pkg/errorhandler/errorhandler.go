package errorhandler

import (
	"context"
	"net/http"

	"github.com/pandalens/pandalens-api/internal/pkg/logger"
	"github.com/pandalens/pandalens-api/internal/pkg/response"
)

// Internal logs err with the request logger and answers 500 without leaking it.
func Internal(ctx context.Context, w http.ResponseWriter, err error, operation string) {
	logger.FromContext(ctx).Error().
		Err(err).
		Str("operation", operation).
		Msg("Request failed")

	response.InternalError(w)
}

// Validation logs field errors at warn level and answers 422.
func Validation(ctx context.Context, w http.ResponseWriter, details map[string]string) {
	logger.FromContext(ctx).Warn().
		Interface("validation_errors", details).
		Msg("Validation error")

	response.ValidationError(w, details)
}
