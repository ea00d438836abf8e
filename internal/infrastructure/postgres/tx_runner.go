package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxBeginner lo implementan *pgxpool.Pool y pgxmock.PgxPoolIface.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con la tx como Querier y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
