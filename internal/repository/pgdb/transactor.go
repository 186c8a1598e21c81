package pgdb

import (
	"context"

	"github.com/DRSN-tech/catalog-service/pkg/e"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// Transactor открывает транзакцию PostgreSQL и кладёт её в контекст,
// откуда репозитории достают её через pkg/tr.
type Transactor struct {
	pool transaction.Transactional
}

func NewTransactor(pool transaction.Transactional) *Transactor {
	return &Transactor{pool: pool}
}

// WithinTransaction выполняет fn внутри транзакции.
// Ошибка fn откатывает транзакцию, успех — коммитит.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	const op = "Transactor.WithinTransaction"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, t.pool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err := fn(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
