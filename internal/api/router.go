package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/RuzgarAtaOzkan/server/internal/api/middleware"
	"github.com/RuzgarAtaOzkan/server/internal/chat"
	"github.com/RuzgarAtaOzkan/server/internal/config"
	"github.com/RuzgarAtaOzkan/server/internal/handlers"
	"github.com/RuzgarAtaOzkan/server/internal/store"
)

// NewRouter creates and configures the HTTP router around the chat relay.
func NewRouter(cfg *config.Config, logger zerolog.Logger, users store.UserStore, redisStore *store.RedisStore, chatServer *chat.Server) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - the browser UI is the only caller
	allowedOrigins := cfg.AllowedOrigins()
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h := handlers.NewHandler(users, redisStore, chatServer)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", h.Health)
	r.Get("/stats", h.Stats)

	// Chat relay; handshake attempts are rate limited per IP
	limiter := middleware.NewConnectLimiter(redisStore, logger, cfg.ConnectLimit, cfg.ConnectWindow)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Get("/ws", chatServer.HandleWS)
	})

	return r
}
