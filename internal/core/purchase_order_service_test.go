package core_test

import (
	"context"
	"testing"

	"shop-erp/internal/core"

	"github.com/stretchr/testify/require"
)

func TestResupply_IncreasesStockAndKeepsInvoicedCost(t *testing.T) {
	ctx := context.Background()
	c := widgetCatalog(t)
	ledger := core.NewOrderLedger()
	svc := core.NewResupplyService(c, ledger, core.WithClock(fixedClock))

	co := svc.Begin(2, 5)
	require.NoError(t, co.Add(7, 10))
	require.NoError(t, co.Add(7, 5))
	require.NoError(t, co.SetTotalCost(dec("120.5")))
	require.Equal(t, core.Basket{{ProductID: 7, Quantity: 15}}, co.Basket())
	require.True(t, co.TotalCost().Equal(dec("120.5")))

	preview, err := co.Preview(ctx)
	require.NoError(t, err)
	require.Equal(t, 15, preview.TotalQuantity)
	require.Equal(t, "Widget", preview.Lines[0].Name)

	order, err := co.Confirm(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, order.Number)
	require.Equal(t, "120.50", order.TotalCost.StringFixed(2))
	require.Equal(t, 5, order.SupplierID)
	require.Equal(t, 2, order.StorekeeperID)

	p, _ := c.FindByID(7)
	require.Equal(t, 20, p.Quantity)
}

func TestResupply_FailsOnlyWhenProductVanished(t *testing.T) {
	ctx := context.Background()
	c := widgetCatalog(t)
	require.NoError(t, c.Insert(core.Product{ID: 8, Name: "Bolt", SalePrice: dec("1"), Quantity: 0}))
	ledger := core.NewOrderLedger()
	svc := core.NewResupplyService(c, ledger)

	co := svc.Begin(2, 5)
	require.NoError(t, co.Add(7, 1))
	require.NoError(t, co.Add(8, 1))
	_, err := co.Preview(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Delete(8))
	_, err = co.Confirm(ctx)
	require.ErrorIs(t, err, core.ErrNotFound)

	p, _ := c.FindByID(7)
	require.Equal(t, 5, p.Quantity)
	require.Zero(t, ledger.LastResupplyNumber())
}

func TestResupply_RejectsNegativeCost(t *testing.T) {
	svc := core.NewResupplyService(widgetCatalog(t), core.NewOrderLedger())

	co := svc.Begin(2, 5)
	require.ErrorIs(t, co.SetTotalCost(dec("-0.01")), core.ErrInvalidAmount)

	_, err := svc.Confirm(context.Background(), 2, 5, nil, dec("-3"))
	require.ErrorIs(t, err, core.ErrInvalidAmount)
}

func TestResupply_SequenceIndependentOfSales(t *testing.T) {
	ctx := context.Background()
	c := widgetCatalog(t)
	ledger := core.NewOrderLedger()
	sales := core.NewSalesService(c, ledger)
	resupply := core.NewResupplyService(c, ledger)

	for i := 0; i < 3; i++ {
		_, err := sales.Confirm(ctx, 1, core.GuestCustomer(), core.Basket{{ProductID: 7, Quantity: 1}})
		require.NoError(t, err)
	}
	order, err := resupply.Confirm(ctx, 2, 5, core.Basket{{ProductID: 7, Quantity: 1}}, dec("0"))
	require.NoError(t, err)
	require.Equal(t, 1, order.Number)
	require.Equal(t, 3, ledger.LastSalesNumber())
}

func TestResupply_SetTotalCostAfterPreviewRequiresNewPreview(t *testing.T) {
	ctx := context.Background()
	svc := core.NewResupplyService(widgetCatalog(t), core.NewOrderLedger())

	co := svc.Begin(2, 5)
	_, err := co.Preview(ctx)
	require.NoError(t, err)
	require.NoError(t, co.SetTotalCost(dec("10")))
	require.Equal(t, core.CheckoutBuilding, co.State())

	_, err = co.Confirm(ctx)
	require.ErrorIs(t, err, core.ErrInvalidTransition)
}
