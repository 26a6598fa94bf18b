package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/neon-eshop/internal/db"
)

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// inTx runs fn in a new transaction, or directly on q when the repository
// was created on top of a caller's transaction (beginner is nil).
func inTx(ctx context.Context, beginner txBeginner, q *db.Queries, fn func(q *db.Queries) error) (txErr error) {
	if beginner == nil {
		return fn(q)
	}

	tx, err := beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("Begin: %w", err)
	}

	defer func() {
		if txErr == nil {
			return
		}
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
		}
	}()

	if err := fn(q.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}
	return nil
}
