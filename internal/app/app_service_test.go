package app_test

import (
	"context"
	"testing"
	"time"

	"shop-erp/internal/app"
	"shop-erp/internal/core"
	"shop-erp/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func seededStore(t *testing.T) *store.CSVStore {
	t.Helper()
	s := store.NewCSVStore(t.TempDir())
	require.NoError(t, s.Save(context.Background(), core.Snapshot{
		Products:  []core.Row{{"7", "Widget", "10.00", "5"}, {"8", "Bolt", "0.25", "100"}},
		Customers: []core.Row{{"3", "Acme Ltd", "1 Main St", "555-0100"}},
		Suppliers: []core.Row{{"5", "Parts Co", "9 Dock Rd", "555-0199"}},
		Users: []core.Row{
			{"1", "Ann", "Lee", "ann", "secret", "cashier"},
			{"2", "Bob", "Ray", "bob", "hunter2", "storekeeper"},
		},
	}))
	return s
}

func newService(t *testing.T, rows store.RowStore) app.ApplicationService {
	t.Helper()
	clock := core.WithClock(func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) })
	svc, err := app.Load(context.Background(), rows, zaptest.NewLogger(t), app.Options{
		AutoSave:    true,
		CoreOptions: []core.Option{clock},
	})
	require.NoError(t, err)
	return svc
}

func TestConfirmSale_PersistsAndResumesNumbering(t *testing.T) {
	ctx := context.Background()
	rows := seededStore(t)
	svc := newService(t, rows)

	res, err := svc.ConfirmSale(ctx, app.SaleRequest{
		CashierID: 1,
		Customer:  core.RegisteredCustomer(3),
		Lines:     []core.BasketLine{{ProductID: 7, Quantity: 2}, {ProductID: 8, Quantity: 4}, {ProductID: 7, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Order.Number)
	require.Equal(t, "31.00", res.Order.TotalCost.StringFixed(2))
	require.Equal(t, "Acme Ltd", res.Order.CustomerLabel)
	require.Equal(t, "Ann Lee", res.Order.CashierLabel)
	require.Equal(t, "01-05-2024 09:00:00", res.Order.Date)
	require.Len(t, res.Order.Lines, 2)

	reloaded := newService(t, rows)
	p, err := reloaded.GetProduct(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 2, p.Quantity)

	next, err := reloaded.ConfirmSale(ctx, app.SaleRequest{CashierID: 1, Lines: []core.BasketLine{{ProductID: 7, Quantity: 1}}})
	require.NoError(t, err)
	require.Equal(t, 2, next.Order.Number)
	require.Equal(t, core.GuestLabel, next.Order.CustomerLabel)
}

func TestConfirmSale_RejectsUnknownParties(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, seededStore(t))

	_, err := svc.ConfirmSale(ctx, app.SaleRequest{CashierID: 99})
	require.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.ConfirmSale(ctx, app.SaleRequest{CashierID: 1, Customer: core.RegisteredCustomer(42)})
	require.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.ConfirmResupply(ctx, app.ResupplyRequest{StorekeeperID: 2, SupplierID: 77})
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestConfirmSale_InsufficientStockLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, seededStore(t))

	_, err := svc.ConfirmSale(ctx, app.SaleRequest{CashierID: 1, Lines: []core.BasketLine{{ProductID: 7, Quantity: 6}}})
	require.ErrorIs(t, err, core.ErrInsufficientStock)

	orders, err := svc.ListSalesOrders(ctx)
	require.NoError(t, err)
	require.Empty(t, orders.Orders)
}

func TestPreviewSale_DoesNotTouchStock(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, seededStore(t))

	res, err := svc.PreviewSale(ctx, app.SaleRequest{CashierID: 1, Lines: []core.BasketLine{{ProductID: 7, Quantity: 3}}})
	require.NoError(t, err)
	require.Equal(t, "30.00", res.Preview.Total.StringFixed(2))
	require.Equal(t, core.GuestLabel, res.CustomerLabel)

	p, err := svc.GetProduct(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 5, p.Quantity)
}

func TestResupply_AndSupplierHistoryAfterDeletion(t *testing.T) {
	ctx := context.Background()
	rows := seededStore(t)
	svc := newService(t, rows)

	res, err := svc.ConfirmResupply(ctx, app.ResupplyRequest{
		StorekeeperID: 2,
		SupplierID:    5,
		TotalCost:     decimal.RequireFromString("42"),
		Lines:         []core.BasketLine{{ProductID: 8, Quantity: 10}},
	})
	require.NoError(t, err)
	require.Equal(t, "Parts Co", res.Order.SupplierLabel)

	require.NoError(t, svc.DeleteSupplier(ctx, 5))
	require.NoError(t, svc.DeleteProduct(ctx, 8))

	hist, err := newService(t, rows).SupplierHistory(ctx, 5)
	require.NoError(t, err)
	require.Len(t, hist.Orders, 1)
	require.Equal(t, core.SupplierDeletedLabel, hist.Orders[0].SupplierLabel)
	require.Equal(t, "42.00", hist.Orders[0].TotalCost.StringFixed(2))
	require.True(t, hist.Orders[0].Lines[0].Removed)
}

func TestCustomerHistory_SurvivesCustomerDeletion(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, seededStore(t))

	_, err := svc.ConfirmSale(ctx, app.SaleRequest{CashierID: 1, Customer: core.RegisteredCustomer(3),
		Lines: []core.BasketLine{{ProductID: 8, Quantity: 1}}})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCustomer(ctx, 3))

	hist, err := svc.CustomerHistory(ctx, 3)
	require.NoError(t, err)
	require.Len(t, hist.Orders, 1)
	require.Equal(t, core.CustomerDeletedLabel, hist.Orders[0].CustomerLabel)
}

func TestInteractiveCheckout(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, seededStore(t))

	co, err := svc.BeginSale(ctx, 1, core.GuestCustomer())
	require.NoError(t, err)
	_, err = co.Feed(core.BasketLine{ProductID: 7, Quantity: 2})
	require.NoError(t, err)
	done, err := co.Feed(core.BasketLine{})
	require.NoError(t, err)
	require.True(t, done)

	_, err = svc.CompleteSale(ctx, co)
	require.ErrorIs(t, err, core.ErrInvalidTransition, "a checkout must be previewed first")

	_, err = co.Preview(ctx)
	require.NoError(t, err)
	res, err := svc.CompleteSale(ctx, co)
	require.NoError(t, err)
	require.Equal(t, "20.00", res.Order.TotalCost.StringFixed(2))
}

func TestProducts_AddPriceDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, seededStore(t))

	p, err := svc.AddProduct(ctx, app.AddProductRequest{Name: " Gear ", SalePrice: decimal.RequireFromString("3.5"), Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, 9, p.ID)
	require.Equal(t, "Gear", p.Name)

	_, err = svc.AddProduct(ctx, app.AddProductRequest{Name: "  "})
	require.Error(t, err)

	p, err = svc.SetProductPrice(ctx, 9, decimal.RequireFromString("4"))
	require.NoError(t, err)
	require.Equal(t, "4.00", p.SalePrice.StringFixed(2))

	found, err := svc.SearchProducts(ctx, "ge")
	require.NoError(t, err)
	require.Len(t, found.Products, 2) // Widget, Gear

	require.NoError(t, svc.DeleteProduct(ctx, 9))
	require.ErrorIs(t, svc.DeleteProduct(ctx, 9), core.ErrNotFound)
}
