package http

import (
	"AIDIR-Backend/internal/analytics"
	"AIDIR-Backend/internal/auth"
	"AIDIR-Backend/internal/badge"
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/internal/repository"
	"AIDIR-Backend/pkg/badgefmt"
	"AIDIR-Backend/pkg/useragent"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	cacheControlBadge = "public, max-age=300, stale-while-revalidate=60"
	cacheControlError = "public, max-age=60"
	cacheControlLive  = "no-cache, no-store"
	// превью неопубликованного продукта видит только владелец
	cacheControlOwner = "private, no-cache"
)

// BadgeFetcher returns the data a badge is rendered from.
type BadgeFetcher interface {
	Fetch(ctx context.Context, slug string, callerID *int64, live bool) (*domain.BadgeData, error)
}

// ClickSubmitter queues a click for asynchronous recording.
type ClickSubmitter interface {
	Submit(ev analytics.ClickEvent) error
}

// BadgeHandler обработчик SVG бейджей и редиректа по клику
type BadgeHandler struct {
	fetcher  BadgeFetcher
	renderer *badge.Renderer
	clicks   ClickSubmitter
	links    Links
	log      *zap.Logger
}

// NewBadgeHandler создает новый обработчик бейджей
func NewBadgeHandler(fetcher BadgeFetcher, renderer *badge.Renderer, clicks ClickSubmitter, links Links, log *zap.Logger) *BadgeHandler {
	return &BadgeHandler{
		fetcher:  fetcher,
		renderer: renderer,
		clicks:   clicks,
		links:    links,
		log:      log,
	}
}

type badgeRequest struct {
	slug    string
	variant domain.Variant
	size    domain.Size
	theme   domain.Theme
	live    bool
}

// неизвестные значения параметров заменяются значениями по умолчанию
func parseBadgeRequest(r *http.Request) badgeRequest {
	q := r.URL.Query()
	variant, _ := domain.ParseVariant(q.Get("variant"))
	size, _ := domain.ParseSize(q.Get("size"))
	theme, _ := domain.ParseTheme(q.Get("theme"))
	live := q.Get("live")

	return badgeRequest{
		slug:    r.PathValue("slug"),
		variant: variant,
		size:    size,
		theme:   theme,
		live:    live == "true" || live == "1",
	}
}

// Badge отдает SVG бейдж продукта
//
//	@Summary		Product badge
//	@Description	Returns an embeddable SVG badge. Errors are rendered as neutral badges, the status is always 200.
//	@Tags			Badges
//	@Produce		image/svg+xml
//	@Param			slug	path		string	true	"Product slug"
//	@Param			variant	query		string	false	"Badge variant"	Enums(pro, pro-plus)	default(pro)
//	@Param			size	query		string	false	"Badge size"	Enums(small, medium, large)	default(medium)
//	@Param			theme	query		string	false	"Color theme"	Enums(light, dark, auto)	default(auto)
//	@Param			live	query		bool	false	"Bypass the cache"
//	@Success		200		{string}	string	"SVG document"
//	@Success		304		{string}	string	"Not modified"
//	@Router			/badge/{slug} [get]
func (h *BadgeHandler) Badge(w http.ResponseWriter, r *http.Request) {
	req := parseBadgeRequest(r)

	if !badgefmt.IsValidSlug(req.slug) {
		h.writeErrorBadge(w, r, domain.ErrorInvalidSlug, req.size)
		return
	}

	data, err := h.fetcher.Fetch(r.Context(), req.slug, auth.CallerID(r.Context()), req.live)
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		h.writeErrorBadge(w, r, domain.ErrorProductNotFound, req.size)
		return
	case errors.Is(err, domain.ErrInvalidSlug):
		h.writeErrorBadge(w, r, domain.ErrorInvalidSlug, req.size)
		return
	case err != nil:
		h.log.Error("failed to fetch badge data", zap.String("slug", req.slug), zap.Error(err))
		h.writeErrorBadge(w, r, domain.ErrorServerError, req.size)
		return
	}

	if !data.IsPublished && !data.IsOwner {
		h.writeErrorBadge(w, r, domain.ErrorNotPublished, req.size)
		return
	}

	cfg := domain.BadgeConfig{
		Variant:      req.variant,
		Size:         req.size,
		Theme:        req.theme,
		UpvotesCount: data.UpvotesCount,
		ProductName:  data.ProductName,
		ProductSlug:  data.ProductSlug,
	}
	if err := cfg.Validate(data.UserTier); err != nil {
		if errors.Is(err, domain.ErrUpgradeRequired) {
			h.writeErrorBadge(w, r, domain.ErrorUpgradeRequired, req.size)
			return
		}
		h.log.Warn("invalid badge configuration", zap.String("slug", req.slug), zap.Error(err))
		h.writeErrorBadge(w, r, domain.ErrorServerError, req.size)
		return
	}

	cacheControl := cacheControlBadge
	switch {
	case req.live:
		cacheControl = cacheControlLive
	case !data.IsPublished:
		cacheControl = cacheControlOwner
	}

	h.writeSVG(w, r, h.renderer.Render(cfg), cacheControl)
}

// Click записывает клик по бейджу и перенаправляет на страницу продукта
//
//	@Summary		Badge click-through
//	@Description	Records the click asynchronously and redirects to the product page.
//	@Tags			Badges
//	@Param			slug	path	string	true	"Product slug"
//	@Success		302
//	@Router			/badge/{slug}/click [get]
func (h *BadgeHandler) Click(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if !badgefmt.IsValidSlug(slug) {
		http.Redirect(w, r, h.links.Home(), http.StatusFound)
		return
	}

	data, err := h.fetcher.Fetch(r.Context(), slug, nil, false)
	if err != nil {
		if !errors.Is(err, repository.ErrProductNotFound) {
			h.log.Error("failed to fetch product for click", zap.String("slug", slug), zap.Error(err))
		}
		http.Redirect(w, r, h.links.Home(), http.StatusFound)
		return
	}

	userAgent := r.UserAgent()
	if data.IsPublished && !useragent.IsBot(userAgent) {
		ev := analytics.ClickEvent{
			ProductID: data.ProductID,
			Referrer:  r.Referer(),
			UserAgent: userAgent,
			ClickedAt: time.Now().UTC(),
		}
		if err := h.clicks.Submit(ev); err != nil {
			h.log.Warn("failed to queue click", zap.Int64("product_id", data.ProductID), zap.Error(err))
		}
	}

	http.Redirect(w, r, h.links.ProductURL(slug), http.StatusFound)
}

// RecoverBadge превращает панику в бейдж server-error со статусом 200.
func (h *BadgeHandler) RecoverBadge(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.log.Error("panic while serving badge",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()))
				size, _ := domain.ParseSize(r.URL.Query().Get("size"))
				h.writeErrorBadge(w, r, domain.ErrorServerError, size)
			}
		}()
		next.ServeHTTP(w, r)
	}
}

func (h *BadgeHandler) writeErrorBadge(w http.ResponseWriter, r *http.Request, kind domain.ErrorKind, size domain.Size) {
	h.log.Debug("serving error badge", zap.String("path", r.URL.Path), zap.String("kind", string(kind)))
	h.writeSVG(w, r, h.renderer.RenderError(kind, size), cacheControlError)
}

func (h *BadgeHandler) writeSVG(w http.ResponseWriter, r *http.Request, svg, cacheControl string) {
	etag := computeETag(svg)

	header := w.Header()
	header.Set("Content-Type", "image/svg+xml; charset=utf-8")
	header.Set("Cache-Control", cacheControl)
	header.Set("ETag", etag)
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("Vary", "Authorization")

	if cacheControl != cacheControlLive && etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write([]byte(svg)); err != nil {
		h.log.Debug("failed to write badge", zap.Error(err))
	}
}

func computeETag(body string) string {
	sum := sha256.Sum256([]byte(body))
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
