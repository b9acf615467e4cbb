package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the collab schema and join-record table if missing.
// The unique index on username mirrors the uniqueness constraint the service
// has always enforced on stored user records; a repeat join under the same
// name fails the insert and is treated as already recorded.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS collab`,
		`CREATE TABLE IF NOT EXISTS collab.room_join (
			id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			username   text NOT NULL,
			room_id    text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS room_join_username_key
			ON collab.room_join (username)`,
	}
	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
