package http

import (
	"AIDIR-Backend/internal/analytics"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const maxClickBodyBytes = 4 << 10

// ClickTracker records a click synchronously.
type ClickTracker interface {
	Track(ctx context.Context, ev analytics.ClickEvent) analytics.TrackResult
}

// ClickHandler обработчик API трекинга кликов
type ClickHandler struct {
	tracker ClickTracker
	log     *zap.Logger
}

// NewClickHandler создает новый обработчик кликов
func NewClickHandler(tracker ClickTracker, log *zap.Logger) *ClickHandler {
	return &ClickHandler{
		tracker: tracker,
		log:     log,
	}
}

// TrackClickRequest структура запроса трекинга клика
type TrackClickRequest struct {
	ProductID int64   `json:"productId"`
	Referrer  *string `json:"referrer,omitempty"`
}

// TrackClick записывает клик по бейджу
//
//	@Summary		Track a badge click
//	@Description	Records a click-through. Always answers 200; failures are reported in the body.
//	@Tags			Badges
//	@Accept			json
//	@Produce		json
//	@Param			request	body		TrackClickRequest		true	"Click"
//	@Success		200		{object}	analytics.TrackResult	"Tracking result"
//	@Router			/api/badge/click [post]
func (h *ClickHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	var req TrackClickRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxClickBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid track click request", zap.Error(err))
		writeJSON(w, analytics.TrackResult{Success: false, Error: "invalid request body"}, http.StatusOK)
		return
	}

	referrer := r.Referer()
	if req.Referrer != nil {
		referrer = *req.Referrer
	}

	res := h.tracker.Track(r.Context(), analytics.ClickEvent{
		ProductID: req.ProductID,
		Referrer:  referrer,
		UserAgent: r.UserAgent(),
		ClickedAt: time.Now().UTC(),
	})

	writeJSON(w, res, http.StatusOK)
}
