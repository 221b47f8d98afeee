package adapters

import (
	"time"

	"github.com/shard-legends/loadout-service/pkg/metrics"
)

// MetricsAdapter адаптирует пакет metrics для storage.MetricsInterface
// и service.MetricsInterface
type MetricsAdapter struct {
	table string
}

// NewMetricsAdapter создает новый адаптер для метрик
func NewMetricsAdapter() *MetricsAdapter {
	return &MetricsAdapter{table: "catalog"}
}

// IncDBQuery увеличивает счетчик запросов к БД
func (a *MetricsAdapter) IncDBQuery(operation string) {
	metrics.DBQueriesTotal.WithLabelValues(operation, a.table).Inc()
}

// IncCacheHit увеличивает счетчик попаданий в кеш
func (a *MetricsAdapter) IncCacheHit(cacheType string) {
	metrics.RedisOperationsTotal.WithLabelValues("get_"+cacheType, "hit").Inc()
}

// IncCacheMiss увеличивает счетчик промахов кеша
func (a *MetricsAdapter) IncCacheMiss(cacheType string) {
	metrics.RedisOperationsTotal.WithLabelValues("get_"+cacheType, "miss").Inc()
}

// ObserveDBQueryDuration записывает время выполнения запроса к БД
func (a *MetricsAdapter) ObserveDBQueryDuration(operation string, duration time.Duration) {
	metrics.DBQueryDuration.WithLabelValues(operation, a.table).Observe(duration.Seconds())
}

// RecordIntent учитывает результат операции над снаряжением
func (a *MetricsAdapter) RecordIntent(operation string, changed bool, reason string) {
	metrics.RecordIntent(operation, changed, reason)
}

// RecordTotalsComputation учитывает источник итогов: кеш или расчет
func (a *MetricsAdapter) RecordTotalsComputation(source string) {
	metrics.RecordTotalsComputation(source)
}

// SetActiveSessions обновляет число активных сессий
func (a *MetricsAdapter) SetActiveSessions(count int) {
	metrics.ActiveSessions.Set(float64(count))
}
