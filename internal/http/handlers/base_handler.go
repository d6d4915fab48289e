// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"vamu/internal/ai"
	"vamu/internal/modules/inspiration"
	"vamu/internal/modules/wishlist"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg, detail string) {
	writeJSON(c, status, errorResponse{Error: msg, Detail: detail})
}

func writeInspirationError(c *gin.Context, err error) {
	logger := log.Ctx(c.Request.Context())
	switch {
	case errors.Is(err, inspiration.ErrInvalidRequest):
		writeError(c, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, inspiration.ErrProviderAuth):
		logger.Error().Err(err).Msg("places provider rejected credentials")
		writeError(c, http.StatusInternalServerError, "service configuration error", "")
	case errors.Is(err, inspiration.ErrProviderRateLimited):
		logger.Warn().Err(err).Msg("places provider rate limited")
		writeError(c, http.StatusTooManyRequests, "rate limit exceeded", err.Error())
	case errors.Is(err, inspiration.ErrProviderUnavailable):
		logger.Error().Err(err).Msg("places provider unavailable")
		writeError(c, http.StatusServiceUnavailable, "places provider unavailable", err.Error())
	default:
		logger.Error().Err(err).Msg("unexpected inspiration error")
		writeError(c, http.StatusInternalServerError, "internal error", "")
	}
}

func writeWishlistError(c *gin.Context, err error) {
	logger := log.Ctx(c.Request.Context())
	switch {
	case errors.Is(err, wishlist.ErrInvalidRequest):
		writeError(c, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, wishlist.ErrQuotaExceeded):
		writeError(c, http.StatusTooManyRequests, "wishlist quota exceeded", "")
	case errors.Is(err, wishlist.ErrNotConfigured):
		writeError(c, http.StatusServiceUnavailable, "wishlist generation not configured", "")
	case errors.Is(err, ai.ErrGeneration):
		logger.Error().Err(err).Msg("wishlist generation failed")
		writeError(c, http.StatusBadGateway, "wishlist generation failed", err.Error())
	default:
		logger.Error().Err(err).Msg("unexpected wishlist error")
		writeError(c, http.StatusInternalServerError, "internal error", "")
	}
}
