package http

import (
	"AIDIR-Backend/internal/auth"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Server HTTP сервер с обработчиками
type Server struct {
	badgeHandler   *BadgeHandler
	clickHandler   *ClickHandler
	statsHandler   *StatsHandler
	embedHandler   *EmbedHandler
	healthHandler  *HealthHandler
	authMiddleware *auth.Middleware
	log            *zap.Logger
}

// NewServer создает новый HTTP сервер
func NewServer(
	badgeHandler *BadgeHandler,
	clickHandler *ClickHandler,
	statsHandler *StatsHandler,
	embedHandler *EmbedHandler,
	healthHandler *HealthHandler,
	authMiddleware *auth.Middleware,
	log *zap.Logger,
) *Server {
	return &Server{
		badgeHandler:   badgeHandler,
		clickHandler:   clickHandler,
		statsHandler:   statsHandler,
		embedHandler:   embedHandler,
		healthHandler:  healthHandler,
		authMiddleware: authMiddleware,
		log:            log,
	}
}

// SetupRoutes настраивает маршруты
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Health checks (без аутентификации)
	mux.HandleFunc("GET /health", s.healthHandler.Health)
	mux.HandleFunc("GET /ready", s.healthHandler.Ready)
	mux.HandleFunc("GET /metrics", s.healthHandler.Metrics)

	// Swagger документация
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Бейджи: всегда 200 с SVG, паника тоже превращается в бейдж
	mux.HandleFunc("GET /badge/{slug}", s.badgeHandler.RecoverBadge(s.authMiddleware.OptionalAuth(s.badgeHandler.Badge)))
	mux.HandleFunc("GET /badge/{slug}/click", s.recover(s.badgeHandler.Click))

	// Badge API
	mux.HandleFunc("POST /api/badge/click", s.withCORS(s.recover(s.clickHandler.TrackClick)))
	mux.HandleFunc("OPTIONS /api/badge/click", s.withCORS(preflight))
	mux.HandleFunc("GET /api/badge/stats/{productId}", s.withCORS(s.recover(s.authMiddleware.RequireAuth(s.statsHandler.GetStats))))
	mux.HandleFunc("OPTIONS /api/badge/stats/{productId}", s.withCORS(preflight))
	mux.HandleFunc("GET /api/badge/embed/{slug}", s.withCORS(s.recover(s.authMiddleware.OptionalAuth(s.embedHandler.GetEmbed))))
	mux.HandleFunc("OPTIONS /api/badge/embed/{slug}", s.withCORS(preflight))

	return mux
}

// withCORS добавляет CORS headers к обработчику
func (s *Server) withCORS(handler http.HandlerFunc) http.HandlerFunc {
	return s.authMiddleware.CORS(handler)
}

func (s *Server) recover(handler http.HandlerFunc) http.HandlerFunc {
	return Recover(s.log, handler)
}

// preflight отвечает CORS middleware, сюда запрос не доходит
func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
