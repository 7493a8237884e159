package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"talentlens-backend/internal/delivery/http/response"
	"talentlens-backend/pkg/apperror"
	"talentlens-backend/pkg/extractor"
	"talentlens-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors appended to the gin context. The extraction
// backend's own status and message pass through untouched; transport failures
// against it become a 502 with the generic connection message; anything else
// is logged and hidden behind a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		var apiErr *extractor.APIError
		if errors.As(err, &apiErr) {
			response.Error(c, apiErr.Status, apiErr.Message, nil)
			return
		}

		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			logger.Log.Warn("extraction backend unreachable", "error", err)
			response.Error(c, http.StatusBadGateway, "Something went wrong. Please check your connection and try again.", nil)
			return
		}

		logger.Log.Error("unhandled error", "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
