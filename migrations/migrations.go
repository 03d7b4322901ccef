// Package migrations embeds the database schema and applies it.
package migrations

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Apply runs the embedded schema against the database. The schema is
// idempotent (CREATE TABLE IF NOT EXISTS), so Apply is safe to call on
// every startup and from test setup.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
