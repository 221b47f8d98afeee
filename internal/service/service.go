package service

import (
	"time"

	"github.com/shard-legends/loadout-service/internal/storage"
	"go.uber.org/zap"
)

// TotalsCache определяет кеш итогов, используемый сессиями
type TotalsCache = storage.TotalsCache

// MetricsInterface определяет интерфейс метрик уровня сервиса
type MetricsInterface interface {
	RecordIntent(operation string, changed bool, reason string)
	RecordTotalsComputation(source string)
	SetActiveSessions(count int)
}

// ServiceDependencies содержит зависимости для создания сервисов
type ServiceDependencies struct {
	Catalog     CatalogReader
	TotalsCache TotalsCache
	Metrics     MetricsInterface
	Logger      *zap.Logger
	MaxSessions int

	// now переопределяется в тестах
	now func() time.Time
}

// Service объединяет все сервисы
type Service struct {
	Catalog    CatalogReader
	Aggregator *ResourceAggregator
	Sessions   *SessionManager
}

// NewService создает новый экземпляр Service со всеми сервисами
func NewService(deps *ServiceDependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}
	now := deps.now
	if now == nil {
		now = time.Now
	}

	aggregator := NewResourceAggregator(deps.Catalog, logger)
	env := &sessionEnv{
		catalog:        deps.Catalog,
		aggregator:     aggregator,
		totalsCache:    deps.TotalsCache,
		metrics:        metrics,
		catalogVersion: CatalogVersion(deps.Catalog),
		now:            now,
	}

	return &Service{
		Catalog:    deps.Catalog,
		Aggregator: aggregator,
		Sessions:   NewSessionManager(env, deps.MaxSessions, logger),
	}
}

type noopMetrics struct{}

func (noopMetrics) RecordIntent(string, bool, string) {}
func (noopMetrics) RecordTotalsComputation(string)    {}
func (noopMetrics) SetActiveSessions(int)             {}
