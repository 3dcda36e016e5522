package store

import (
	"context"
	"fmt"

	"shop-erp/internal/config"
	"shop-erp/internal/core"
	"shop-erp/internal/db"

	"go.uber.org/zap"
)

// RowStore persists a full snapshot of rows and reads it back.
type RowStore interface {
	Load(ctx context.Context) (core.Snapshot, error)
	Save(ctx context.Context, snap core.Snapshot) error
}

// Open builds the store selected by cfg.Backend. The returned close function
// releases any connections and is always safe to call.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (RowStore, func(), error) {
	switch cfg.Backend {
	case config.BackendCSV, "":
		logger.Info("using csv row store", zap.String("dir", cfg.DataDir))
		return NewCSVStore(cfg.DataDir), func() {}, nil
	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, fmt.Errorf("failed to open postgres row store: %w", err)
		}
		s := NewPostgresStore(pool)
		if err := s.EnsureSchema(ctx, logger); err != nil {
			pool.Close()
			return nil, func() {}, err
		}
		logger.Info("using postgres row store")
		return s, pool.Close, nil
	}
	return nil, func() {}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
}
