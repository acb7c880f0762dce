// Package store persists user accounts and conversion history in PostgreSQL.
//
// The store is optional: the converter runs fully without a database, it just
// loses login and history. Callers hold a nil *Store in that case and must
// check Enabled before use.
package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Store wraps the connection pool. A nil Store is a valid "disabled" store.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an existing pool. The caller owns the pool's lifecycle.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Enabled reports whether a database is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.pool != nil
}

// Bootstrap applies the embedded schema. All statements are idempotent
// (CREATE TABLE IF NOT EXISTS), so running it on every start is safe.
func (s *Store) Bootstrap(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("store: bootstrap schema: %w", err)
	}
	return nil
}
