package main

import (
	"bufio"
	"context"
	"os"

	"shop-erp/internal/adapters/cli"
	"shop-erp/internal/adapters/repl"
	"shop-erp/internal/app"
	"shop-erp/internal/config"
	"shop-erp/internal/core"
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

	ctx := context.Background()
	rows, closeStore, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		logger.Fatal("failed to open row store", zap.Error(err))
	}
	defer closeStore()

	svc, err := app.Load(ctx, rows, logger, app.Options{
		AutoSave:    cfg.Store.AutoSave,
		CoreOptions: []core.Option{core.WithDateLayout(cfg.Orders.DateLayout)},
	})
	if err != nil {
		logger.Fatal("failed to load data", zap.Error(err))
	}

	if len(os.Args) > 1 {
		if err := cli.Run(ctx, svc, os.Args[1:], os.Stdout); err != nil {
			logger.Fatal("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		}
		return
	}

	repl.Run(ctx, svc, bufio.NewReader(os.Stdin), os.Stdout)
}
