package adapters

import (
	"context"
	"time"

	"github.com/shard-legends/loadout-service/internal/database"
	"github.com/shard-legends/loadout-service/internal/storage"
)

// CacheAdapter адаптирует database.RedisClient для storage.CacheInterface.
// Все ключи получают общий префикс, чтобы несколько окружений могли
// делить одну базу Redis.
type CacheAdapter struct {
	redis  *database.RedisClient
	prefix string
}

// NewCacheAdapter создает новый адаптер для Redis
func NewCacheAdapter(redis *database.RedisClient, prefix string) storage.CacheInterface {
	return &CacheAdapter{redis: redis, prefix: prefix}
}

func (a *CacheAdapter) key(key string) string {
	if a.prefix == "" {
		return key
	}
	return a.prefix + ":" + key
}

// Get получает значение по ключу; пустая строка означает отсутствие ключа
func (a *CacheAdapter) Get(ctx context.Context, key string) (string, error) {
	return a.redis.Get(ctx, a.key(key))
}

// Set устанавливает значение с TTL
func (a *CacheAdapter) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return a.redis.Set(ctx, a.key(key), value, ttl)
}

// Del удаляет ключ
func (a *CacheAdapter) Del(ctx context.Context, key string) error {
	return a.redis.Delete(ctx, a.key(key))
}

// Health проверяет состояние Redis
func (a *CacheAdapter) Health(ctx context.Context) error {
	return a.redis.Health(ctx)
}
