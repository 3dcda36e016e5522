package store

import (
	"context"
	"fmt"

	"shop-erp/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore keeps rows in the erp_rows table as text arrays, one row per
// record, ordered by position within its kind.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ RowStore = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema applies pending migrations.
func (s *PostgresStore) EnsureSchema(ctx context.Context, logger *zap.Logger) error {
	if err := Migrate(ctx, s.pool, logger); err != nil {
		return fmt.Errorf("failed to migrate row store: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (core.Snapshot, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT kind, fields
		FROM erp_rows
		ORDER BY kind, position`)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	byKind := map[core.RowKind][]core.Row{}
	for rows.Next() {
		var (
			kind   string
			fields []string
		)
		if err := rows.Scan(&kind, &fields); err != nil {
			return core.Snapshot{}, fmt.Errorf("failed to scan row: %w", err)
		}
		byKind[core.RowKind(kind)] = append(byKind[core.RowKind(kind)], core.Row(fields))
	}
	if err := rows.Err(); err != nil {
		return core.Snapshot{}, fmt.Errorf("failed to read rows: %w", err)
	}

	var snap core.Snapshot
	for _, kind := range core.RowKinds {
		snap.SetRows(kind, byKind[kind])
	}
	return snap, nil
}

// Save replaces the stored rows of every kind inside one transaction.
func (s *PostgresStore) Save(ctx context.Context, snap core.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM erp_rows"); err != nil {
		return fmt.Errorf("failed to clear rows: %w", err)
	}

	var copyRows [][]any
	for _, kind := range core.RowKinds {
		for i, row := range snap.Rows(kind) {
			copyRows = append(copyRows, []any{string(kind), i, []string(row)})
		}
	}
	if len(copyRows) > 0 {
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"erp_rows"},
			[]string{"kind", "position", "fields"},
			pgx.CopyFromRows(copyRows),
		)
		if err != nil {
			return fmt.Errorf("failed to copy rows: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rows: %w", err)
	}
	return nil
}
