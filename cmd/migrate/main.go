// migrate applies the embedded SQL migrations to DATABASE_URL and reports
// how many rows of each kind the database holds afterwards.
//
// Usage: go run ./cmd/migrate
package main

import (
	"context"
	"time"

	"shop-erp/internal/config"
	"shop-erp/internal/core"
	"shop-erp/internal/db"
	"shop-erp/internal/logging"
	"shop-erp/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logger, err := logging.New(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect", zap.Error(err))
	}
	defer pool.Close()

	if err := store.Migrate(ctx, pool, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	snap, err := store.NewPostgresStore(pool).Load(ctx)
	if err != nil {
		logger.Fatal("failed to read rows after migration", zap.Error(err))
	}
	for _, kind := range core.RowKinds {
		logger.Info("rows", zap.String("kind", string(kind)), zap.Int("count", len(snap.Rows(kind))))
	}
	logger.Info("database ready")
}
