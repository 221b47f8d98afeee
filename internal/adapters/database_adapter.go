package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shard-legends/loadout-service/internal/database"
	"github.com/shard-legends/loadout-service/internal/storage"
)

// DatabaseAdapter адаптирует database.DB для storage.DatabaseInterface,
// через который работает репозиторий каталога
type DatabaseAdapter struct {
	db *database.DB
}

// NewDatabaseAdapter создает новый адаптер для базы данных
func NewDatabaseAdapter(db *database.DB) storage.DatabaseInterface {
	return &DatabaseAdapter{db: db}
}

// Query выполняет запрос, возвращающий множество строк
func (a *DatabaseAdapter) Query(ctx context.Context, query string, args ...interface{}) (storage.Rows, error) {
	rows, err := a.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &RowsAdapter{rows: rows}, nil
}

// Exec выполняет запрос без возврата строк
func (a *DatabaseAdapter) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := a.db.Pool().Exec(ctx, query, args...)
	return err
}

// BeginTx начинает транзакцию
func (a *DatabaseAdapter) BeginTx(ctx context.Context) (storage.Tx, error) {
	tx, err := a.db.Pool().Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &TxAdapter{tx: tx, ctx: ctx}, nil
}

// Health проверяет состояние базы данных
func (a *DatabaseAdapter) Health(ctx context.Context) error {
	return a.db.Health(ctx)
}

// RowsAdapter адаптирует pgx.Rows для storage.Rows
type RowsAdapter struct {
	rows pgx.Rows
}

// Next переходит к следующей строке
func (r *RowsAdapter) Next() bool {
	return r.rows.Next()
}

// Scan сканирует текущую строку в переданные указатели
func (r *RowsAdapter) Scan(dest ...interface{}) error {
	return r.rows.Scan(dest...)
}

// Err возвращает ошибку, возникшую во время итерации
func (r *RowsAdapter) Err() error {
	return r.rows.Err()
}

// Close закрывает rows
func (r *RowsAdapter) Close() {
	r.rows.Close()
}

// TxAdapter адаптирует database transaction для storage.Tx.
// Commit и Rollback используют контекст, с которым транзакция была открыта.
type TxAdapter struct {
	tx  pgx.Tx
	ctx context.Context
}

// Query выполняет запрос в контексте транзакции
func (t *TxAdapter) Query(ctx context.Context, query string, args ...interface{}) (storage.Rows, error) {
	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &RowsAdapter{rows: rows}, nil
}

// Exec выполняет запрос в контексте транзакции
func (t *TxAdapter) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := t.tx.Exec(ctx, query, args...)
	return err
}

// CopyFrom загружает строки через протокол COPY
func (t *TxAdapter) CopyFrom(ctx context.Context, table []string, columns []string, rows [][]interface{}) (int64, error) {
	return t.tx.CopyFrom(ctx, pgx.Identifier(table), columns, pgx.CopyFromRows(rows))
}

// Commit подтверждает транзакцию
func (t *TxAdapter) Commit() error {
	return t.tx.Commit(t.ctx)
}

// Rollback отменяет транзакцию. После Commit возвращает pgx.ErrTxClosed,
// поэтому отложенный вызов Rollback безопасен.
func (t *TxAdapter) Rollback() error {
	// отмененный контекст не должен мешать откату
	return t.tx.Rollback(context.WithoutCancel(t.ctx))
}
