package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	customMiddleware "github.com/shard-legends/loadout-service/internal/middleware"
)

// RouterConfig содержит настройки HTTP маршрутизаторов
type RouterConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
}

func baseRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Recovery())
	r.Use(customMiddleware.Logging())
	r.Use(customMiddleware.Metrics())
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	return r
}

// NewPublicRouter создает маршрутизатор публичного API
func NewPublicRouter(h *Handlers, cfg RouterConfig) chi.Router {
	r := baseRouter(cfg)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/loadout", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/items", h.Catalog.GetItems)
			r.Get("/items/{itemId}", h.Catalog.GetItem)
			r.Get("/items/{itemId}/tiers/{tier}", h.Catalog.GetWeaponTier)
			r.Get("/resources", h.Catalog.GetResources)
		})
		r.Route("/sessions", h.Session.Routes)
	})

	return r
}

// NewInternalRouter создает маршрутизатор служебных эндпоинтов
func NewInternalRouter(h *Handlers, cfg RouterConfig) chi.Router {
	r := baseRouter(cfg)
	r.Get("/health", h.Health.Health)
	r.Get("/ready", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())
	return r
}
