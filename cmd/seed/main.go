// seed writes a small demo data set to the configured row store so the REPL
// and the HTTP API have something to work with. It refuses to overwrite a
// store that already holds products unless -force is given.
//
// Usage: go run ./cmd/seed [-force]
package main

import (
	"context"
	"flag"

	"shop-erp/internal/config"
	"shop-erp/internal/core"
	"shop-erp/internal/logging"
	"shop-erp/internal/store"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	force := flag.Bool("force", false, "overwrite existing data")
	flag.Parse()

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

	existing, err := rows.Load(ctx)
	if err != nil {
		logger.Fatal("failed to read existing rows", zap.Error(err))
	}
	if len(existing.Products) > 0 && !*force {
		logger.Fatal("store already holds products; pass -force to overwrite",
			zap.Int("products", len(existing.Products)))
	}

	st, err := demoState()
	if err != nil {
		logger.Fatal("failed to build demo data", zap.Error(err))
	}
	if err := rows.Save(ctx, st.Snapshot()); err != nil {
		logger.Fatal("failed to save demo data", zap.Error(err))
	}
	logger.Info("demo data written",
		zap.Int("products", len(st.Catalog.List())),
		zap.Int("users", len(st.Users.List())),
	)
}

func demoState() (*core.State, error) {
	st := core.NewState()

	products := []struct {
		name  string
		price string
		qty   int
	}{
		{"Espresso beans 1kg", "18.90", 40},
		{"Paper filters (100)", "3.50", 120},
		{"Ceramic mug", "7.25", 24},
		{"Milk frother", "29.00", 6},
	}
	for _, p := range products {
		if _, err := st.Catalog.Add(p.name, decimal.RequireFromString(p.price), p.qty); err != nil {
			return nil, err
		}
	}

	users := []core.User{
		{Name: "Maria", Surname: "Rossi", Username: "maria", Password: "changeme", Role: core.RoleCashier},
		{Name: "Luca", Surname: "Bianchi", Username: "luca", Password: "changeme", Role: core.RoleStorekeeper},
	}
	for _, u := range users {
		if _, err := st.Users.Add(u); err != nil {
			return nil, err
		}
	}

	if _, err := st.Customers.Add(core.CustomerInput{CompanyName: "Corner Cafe", Address: "12 High St", Telephone: "555-0101"}); err != nil {
		return nil, err
	}
	if _, err := st.Suppliers.Add(core.SupplierInput{Name: "Roastery Wholesale", Address: "4 Mill Lane", Telephone: "555-0202"}); err != nil {
		return nil, err
	}
	return st, nil
}
