package storage

import (
	"context"
	"time"

	"github.com/shard-legends/loadout-service/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockDatabaseInterface - мок для DatabaseInterface
type MockDatabaseInterface struct {
	mock.Mock
}

func (m *MockDatabaseInterface) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	rows, _ := mockArgs.Get(0).(Rows)
	return rows, mockArgs.Error(1)
}

func (m *MockDatabaseInterface) Exec(ctx context.Context, query string, args ...interface{}) error {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Error(0)
}

func (m *MockDatabaseInterface) BeginTx(ctx context.Context) (Tx, error) {
	mockArgs := m.Called(ctx)
	tx, _ := mockArgs.Get(0).(Tx)
	return tx, mockArgs.Error(1)
}

func (m *MockDatabaseInterface) Health(ctx context.Context) error {
	mockArgs := m.Called(ctx)
	return mockArgs.Error(0)
}

// MockTx - мок для транзакции
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(Rows), mockArgs.Error(1)
}

func (m *MockTx) Exec(ctx context.Context, query string, args ...interface{}) error {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Error(0)
}

func (m *MockTx) CopyFrom(ctx context.Context, table []string, columns []string, rows [][]interface{}) (int64, error) {
	mockArgs := m.Called(ctx, table, columns, rows)
	return mockArgs.Get(0).(int64), mockArgs.Error(1)
}

func (m *MockTx) Commit() error {
	mockArgs := m.Called()
	return mockArgs.Error(0)
}

func (m *MockTx) Rollback() error {
	mockArgs := m.Called()
	return mockArgs.Error(0)
}

// MockCacheInterface - мок для CacheInterface
type MockCacheInterface struct {
	mock.Mock
}

func (m *MockCacheInterface) Get(ctx context.Context, key string) (string, error) {
	mockArgs := m.Called(ctx, key)
	return mockArgs.String(0), mockArgs.Error(1)
}

func (m *MockCacheInterface) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	mockArgs := m.Called(ctx, key, value, ttl)
	return mockArgs.Error(0)
}

func (m *MockCacheInterface) Del(ctx context.Context, key string) error {
	mockArgs := m.Called(ctx, key)
	return mockArgs.Error(0)
}

func (m *MockCacheInterface) Health(ctx context.Context) error {
	mockArgs := m.Called(ctx)
	return mockArgs.Error(0)
}

// MockMetricsInterface - мок для MetricsInterface
type MockMetricsInterface struct {
	mock.Mock
}

func (m *MockMetricsInterface) IncDBQuery(operation string) {
	m.Called(operation)
}

func (m *MockMetricsInterface) IncCacheHit(cacheType string) {
	m.Called(cacheType)
}

func (m *MockMetricsInterface) IncCacheMiss(cacheType string) {
	m.Called(cacheType)
}

func (m *MockMetricsInterface) ObserveDBQueryDuration(operation string, duration time.Duration) {
	m.Called(operation, duration)
}

// MockRows - мок для Rows
type MockRows struct {
	mock.Mock
	data [][]interface{}
	pos  int
}

func (m *MockRows) Next() bool {
	m.pos++
	return m.pos <= len(m.data)
}

func (m *MockRows) Scan(dest ...interface{}) error {
	if m.pos <= 0 || m.pos > len(m.data) {
		return nil
	}

	row := m.data[m.pos-1]
	for i, dest := range dest {
		if i >= len(row) {
			continue
		}
		switch d := dest.(type) {
		case *string:
			*d = row[i].(string)
		case *int:
			*d = row[i].(int)
		case **string:
			if row[i] != nil {
				s := row[i].(string)
				*d = &s
			}
		case **int:
			if row[i] != nil {
				v := row[i].(int)
				*d = &v
			}
		case *models.Category:
			*d = models.Category(row[i].(string))
		case *models.Rarity:
			*d = models.Rarity(row[i].(string))
		case *models.ResourceType:
			*d = models.ResourceType(row[i].(string))
		}
	}
	return nil
}

func (m *MockRows) Err() error {
	mockArgs := m.Called()
	return mockArgs.Error(0)
}

func (m *MockRows) Close() {
	m.Called()
}

func newMockRows(data [][]interface{}) *MockRows {
	rows := &MockRows{data: data}
	rows.On("Err").Return(nil)
	rows.On("Close").Return()
	return rows
}

func newPermissiveMetrics() *MockMetricsInterface {
	metrics := &MockMetricsInterface{}
	metrics.On("IncDBQuery", mock.Anything).Return()
	metrics.On("ObserveDBQueryDuration", mock.Anything, mock.Anything).Return()
	metrics.On("IncCacheHit", mock.Anything).Return()
	metrics.On("IncCacheMiss", mock.Anything).Return()
	return metrics
}
