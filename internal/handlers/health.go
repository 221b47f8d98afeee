package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shard-legends/loadout-service/internal/service"
)

// HealthChecker проверяет доступность внешней зависимости
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler отвечает на проверки живости и готовности. База данных и
// Redis необязательны: непереданная зависимость не проверяется.
type HealthHandler struct {
	checkers map[string]HealthChecker
	catalog  service.CatalogReader
	sessions *service.SessionManager
	timeout  time.Duration
}

func NewHealthHandler(checkers map[string]HealthChecker, svc *service.Service, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{
		checkers: checkers,
		catalog:  svc.Catalog,
		sessions: svc.Sessions,
		timeout:  timeout,
	}
}

type HealthResponse struct {
	Status           string            `json:"status"`
	Services         map[string]string `json:"services"`
	CatalogItems     int               `json:"catalog_items"`
	CatalogResources int               `json:"catalog_resources"`
	ActiveSessions   int               `json:"active_sessions"`
}

func (h *HealthHandler) check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	services := make(map[string]string, len(h.checkers))
	healthy := true
	for name, checker := range h.checkers {
		if err := checker.Health(ctx); err != nil {
			healthy = false
			services[name] = "down: " + err.Error()
			continue
		}
		services[name] = "ok"
	}
	return services, healthy
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	services, healthy := h.check(r.Context())

	response := HealthResponse{
		Status:           "ok",
		Services:         services,
		CatalogItems:     len(h.catalog.Items()),
		CatalogResources: len(h.catalog.Resources()),
		ActiveSessions:   h.sessions.Count(),
	}

	statusCode := http.StatusOK
	if !healthy {
		response.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if len(h.catalog.Items()) == 0 {
		http.Error(w, "Catalog not loaded", http.StatusServiceUnavailable)
		return
	}

	if _, healthy := h.check(r.Context()); !healthy {
		http.Error(w, "Dependencies not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
