package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, enabling shared
// query helpers across transactional and non-transactional paths.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// rollback releases tx unless it already committed. A failed rollback is
// logged but never surfaced: the original error from the write path must
// stay visible to the caller.
func rollback(ctx context.Context, tx pgx.Tx, op string) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		log.Error().Err(err).Str("op", op).Msg("transaction rollback failed")
	}
}

// txOptions is the transaction mode for every write path in this package.
// Read committed plus the row lock taken by the conditional stock decrement
// is sufficient for the no-negative-stock guarantee; the level is set
// explicitly rather than inherited from the server default.
var txOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
