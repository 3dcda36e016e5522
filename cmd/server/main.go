package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	webAdapter "shop-erp/internal/adapters/web"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
	if report := svc.LoadReport(); !report.OK() {
		logger.Warn("data loaded with problems", zap.Stringer("report", report))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           webAdapter.NewHandler(svc, logger, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := svc.Save(shutdownCtx); err != nil {
		logger.Error("final save failed", zap.Error(err))
	}
}
