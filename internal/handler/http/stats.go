package http

import (
	"AIDIR-Backend/internal/analytics"
	"AIDIR-Backend/internal/auth"
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/internal/repository"
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// StatsReader returns the click dashboard of a product.
type StatsReader interface {
	Stats(ctx context.Context, productID, requesterID int64) (*domain.Stats, error)
}

// StatsHandler обработчик статистики кликов
type StatsHandler struct {
	stats StatsReader
	log   *zap.Logger
}

// NewStatsHandler создает новый обработчик статистики
func NewStatsHandler(stats StatsReader, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		stats: stats,
		log:   log,
	}
}

// GetStats возвращает статистику кликов за 30 дней
//
//	@Summary		Badge click statistics
//	@Description	Total clicks and top referrers of the last 30 days. Owner only.
//	@Tags			Badges
//	@Produce		json
//	@Security		BearerAuth
//	@Param			productId	path		int				true	"Product ID"
//	@Success		200			{object}	domain.Stats	"Click statistics"
//	@Failure		400			{object}	ErrorResponse	"Invalid product id"
//	@Failure		401			{object}	ErrorResponse	"Authentication required"
//	@Failure		403			{object}	ErrorResponse	"Not the product owner"
//	@Failure		404			{object}	ErrorResponse	"Product not found"
//	@Failure		500			{object}	ErrorResponse	"Internal server error"
//	@Router			/api/badge/stats/{productId} [get]
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil || productID <= 0 {
		writeError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	stats, err := h.stats.Stats(r.Context(), productID, userID)
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		writeError(w, "Product not found", http.StatusNotFound)
		return
	case errors.Is(err, analytics.ErrNotOwner):
		writeError(w, "Access denied", http.StatusForbidden)
		return
	case err != nil:
		h.log.Error("failed to get badge stats", zap.Int64("product_id", productID), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stats, http.StatusOK)
}
