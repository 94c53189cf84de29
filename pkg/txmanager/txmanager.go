package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
)

// ErrTransaction возвращается, когда не удалось начать или зафиксировать транзакцию
var ErrTransaction = errors.New("txmanager: transaction error")

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функцию в транзакции, передавая её через контекст.
// Репозитории достают транзакцию через dbmetrics.GetExecutor.
type TransactionManager struct {
	db      TxBeginner
	metrics *metrics.Metrics
}

// NewTransactionManager создает менеджер транзакций. m может быть nil
func NewTransactionManager(db TxBeginner, m *metrics.Metrics) *TransactionManager {
	return &TransactionManager{db: db, metrics: m}
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, "read_committed", fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, "serializable", fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true}, "read_only", fn)
}

func (m *TransactionManager) run(
	ctx context.Context,
	opts *sql.TxOptions,
	label string,
	fn func(ctx context.Context) error,
) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		m.metrics.IncTransaction(label, "begin_error")
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			m.metrics.IncTransaction(label, "panic")
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			m.metrics.IncTransaction(label, "rollback_error")
			return fmt.Errorf("%w: rollback failed: %v (original error: %w)", ErrTransaction, rbErr, err)
		}
		m.metrics.IncTransaction(label, "rollback")
		return err
	}

	if err = tx.Commit(); err != nil {
		m.metrics.IncTransaction(label, "commit_error")
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	m.metrics.IncTransaction(label, "commit")
	return nil
}
