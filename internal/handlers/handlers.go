package handlers

import (
	"time"

	"github.com/shard-legends/loadout-service/internal/handlers/public"
	"github.com/shard-legends/loadout-service/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все HTTP обработчики
type Handlers struct {
	Health  *HealthHandler
	Catalog *public.CatalogHandler
	Session *public.SessionHandler
}

// HandlerDependencies содержит зависимости для создания handlers
type HandlerDependencies struct {
	Service       *service.Service
	Checkers      map[string]HealthChecker
	HealthTimeout time.Duration
	Logger        *zap.Logger
}

// NewHandlers создает новый экземпляр Handlers со всеми обработчиками
func NewHandlers(deps *HandlerDependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Checkers, deps.Service, deps.HealthTimeout),
		Catalog: public.NewCatalogHandler(deps.Service.Catalog, deps.Logger),
		Session: public.NewSessionHandler(deps.Service.Sessions, deps.Logger),
	}
}
