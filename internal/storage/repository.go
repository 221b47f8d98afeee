package storage

import (
	"context"
	"time"

	"github.com/shard-legends/loadout-service/internal/models"
)

// CatalogRepository определяет интерфейс для хранения каталога в PostgreSQL
type CatalogRepository interface {
	// LoadItems возвращает все предметы каталога с их стоимостью
	LoadItems(ctx context.Context) ([]models.Item, error)

	// LoadResources возвращает все ресурсы каталога с рецептами
	LoadResources(ctx context.Context) ([]models.Resource, error)

	// ReplaceCatalog атомарно заменяет содержимое каталога
	ReplaceCatalog(ctx context.Context, items []models.Item, resources []models.Resource) error

	// EnsureSchema создает схему каталога, если она отсутствует
	EnsureSchema(ctx context.Context) error
}

// TotalsCache определяет интерфейс кеша вычисленных итогов по ресурсам
type TotalsCache interface {
	// Get возвращает итоги по ключу; found=false при промахе
	Get(ctx context.Context, key string) (totals map[string]int, found bool, err error)

	// Set сохраняет итоги по ключу
	Set(ctx context.Context, key string, totals map[string]int) error
}

// Repository объединяет все репозитории
type Repository struct {
	Catalog CatalogRepository
	Totals  TotalsCache
}

// RepositoryDependencies содержит зависимости для создания репозиториев
type RepositoryDependencies struct {
	DB               DatabaseInterface
	Cache            CacheInterface
	MetricsCollector MetricsInterface
	TotalsTTL        time.Duration
}

// DatabaseInterface определяет интерфейс для работы с базой данных
type DatabaseInterface interface {
	Query(ctx context.Context, query string, args ...interface{}) (Rows, error)
	Exec(ctx context.Context, query string, args ...interface{}) error
	BeginTx(ctx context.Context) (Tx, error)
	Health(ctx context.Context) error
}

// CacheInterface определяет интерфейс для работы с кешем
type CacheInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Health(ctx context.Context) error
}

// MetricsInterface определяет интерфейс для сбора метрик
type MetricsInterface interface {
	IncDBQuery(operation string)
	IncCacheHit(cacheType string)
	IncCacheMiss(cacheType string)
	ObserveDBQueryDuration(operation string, duration time.Duration)
}

// Rows интерфейс для работы с результатом множества строк
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close()
}

// Tx интерфейс для работы с транзакциями
type Tx interface {
	Query(ctx context.Context, query string, args ...interface{}) (Rows, error)
	Exec(ctx context.Context, query string, args ...interface{}) error
	// CopyFrom массово вставляет строки в таблицу schema.table
	CopyFrom(ctx context.Context, table []string, columns []string, rows [][]interface{}) (int64, error)
	Commit() error
	Rollback() error
}
