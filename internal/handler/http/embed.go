package http

import (
	"AIDIR-Backend/internal/auth"
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/internal/embed"
	"AIDIR-Backend/internal/repository"
	"AIDIR-Backend/pkg/badgefmt"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// EmbedHandler обработчик генерации embed-кода
type EmbedHandler struct {
	fetcher   BadgeFetcher
	generator *embed.Generator
	links     Links
	log       *zap.Logger
}

// NewEmbedHandler создает новый обработчик embed-кода
func NewEmbedHandler(fetcher BadgeFetcher, generator *embed.Generator, links Links, log *zap.Logger) *EmbedHandler {
	return &EmbedHandler{
		fetcher:   fetcher,
		generator: generator,
		links:     links,
		log:       log,
	}
}

// EmbedResponse структура ответа с embed-кодом
type EmbedResponse struct {
	BadgeURL   string `json:"badgeUrl"`
	ProductURL string `json:"productUrl"`
	ClickURL   string `json:"clickUrl"`
	HTML       string `json:"html"`
	Markdown   string `json:"markdown"`
	JSX        string `json:"jsx"`
}

// GetEmbed возвращает сниппеты для вставки бейджа
//
//	@Summary		Badge embed code
//	@Description	HTML, Markdown and JSX snippets for a badge configuration.
//	@Tags			Badges
//	@Produce		json
//	@Param			slug	path		string	true	"Product slug"
//	@Param			variant	query		string	false	"Badge variant"	Enums(pro, pro-plus)	default(pro)
//	@Param			size	query		string	false	"Badge size"	Enums(small, medium, large)	default(medium)
//	@Param			theme	query		string	false	"Color theme"	Enums(light, dark, auto)	default(auto)
//	@Success		200		{object}	EmbedResponse	"Embed snippets"
//	@Failure		400		{object}	ErrorResponse	"Invalid product"
//	@Failure		403		{object}	ErrorResponse	"Variant requires a higher plan"
//	@Failure		404		{object}	ErrorResponse	"Product not found"
//	@Failure		500		{object}	ErrorResponse	"Internal server error"
//	@Router			/api/badge/embed/{slug} [get]
func (h *EmbedHandler) GetEmbed(w http.ResponseWriter, r *http.Request) {
	req := parseBadgeRequest(r)
	if !badgefmt.IsValidSlug(req.slug) {
		writeError(w, domain.ErrorInvalidSlug.Message(), http.StatusBadRequest)
		return
	}

	data, err := h.fetcher.Fetch(r.Context(), req.slug, auth.CallerID(r.Context()), false)
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		writeError(w, domain.ErrorProductNotFound.Message(), http.StatusNotFound)
		return
	case err != nil:
		h.log.Error("failed to fetch product for embed", zap.String("slug", req.slug), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if !data.UserTier.AllowsVariant(req.variant) {
		writeError(w, domain.ErrorUpgradeRequired.Message(), http.StatusForbidden)
		return
	}

	productURL := h.links.ProductURL(data.ProductSlug)
	badgeURL := h.links.BadgeURL(data.ProductSlug, req.variant, req.size, req.theme)
	snippets := h.generator.All(productURL, badgeURL, data.ProductName, req.size)

	writeJSON(w, EmbedResponse{
		BadgeURL:   badgeURL,
		ProductURL: productURL,
		ClickURL:   h.links.ClickURL(data.ProductSlug),
		HTML:       snippets.HTML,
		Markdown:   snippets.Markdown,
		JSX:        snippets.JSX,
	}, http.StatusOK)
}
