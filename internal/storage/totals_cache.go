package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTotalsTTL используется, если TTL не задан в конфигурации
const DefaultTotalsTTL = 10 * time.Minute

// totalsCache реализует TotalsCache поверх CacheInterface
type totalsCache struct {
	cache   CacheInterface
	metrics MetricsInterface
	ttl     time.Duration
}

// NewTotalsCache создает кеш итогов по ресурсам
func NewTotalsCache(deps *RepositoryDependencies) TotalsCache {
	ttl := deps.TotalsTTL
	if ttl <= 0 {
		ttl = DefaultTotalsTTL
	}
	return &totalsCache{
		cache:   deps.Cache,
		metrics: deps.MetricsCollector,
		ttl:     ttl,
	}
}

func totalsKey(key string) string {
	return fmt.Sprintf("loadout_totals:%s", key)
}

// Get возвращает итоги по ключу
func (c *totalsCache) Get(ctx context.Context, key string) (map[string]int, bool, error) {
	data, err := c.cache.Get(ctx, totalsKey(key))
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached totals: %w", err)
	}
	if data == "" {
		c.metrics.IncCacheMiss(CacheTypeTotals)
		return nil, false, nil
	}

	var totals map[string]int
	if err := json.Unmarshal([]byte(data), &totals); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached totals: %w", err)
	}
	if totals == nil {
		totals = make(map[string]int)
	}

	c.metrics.IncCacheHit(CacheTypeTotals)
	return totals, true, nil
}

// Set сохраняет итоги по ключу
func (c *totalsCache) Set(ctx context.Context, key string, totals map[string]int) error {
	data, err := json.Marshal(totals)
	if err != nil {
		return fmt.Errorf("failed to marshal totals: %w", err)
	}
	if err := c.cache.Set(ctx, totalsKey(key), string(data), c.ttl); err != nil {
		return fmt.Errorf("failed to cache totals: %w", err)
	}
	return nil
}
