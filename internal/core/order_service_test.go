package core_test

import (
	"context"
	"testing"
	"time"

	"shop-erp/internal/core"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2024, time.March, 9, 14, 30, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestSales_ConcreteScenario(t *testing.T) {
	ctx := context.Background()
	c := widgetCatalog(t)
	ledger := core.NewOrderLedger()
	svc := core.NewSalesService(c, ledger, core.WithClock(fixedClock))

	co := svc.Begin(1, core.GuestCustomer())
	require.NoError(t, co.Add(7, 3))
	preview, err := co.Preview(ctx)
	require.NoError(t, err)
	require.Equal(t, "30.00", preview.Total.StringFixed(2))

	order, err := co.Confirm(ctx)
	require.NoError(t, err)
	require.Equal(t, core.CheckoutConfirmed, co.State())
	require.Equal(t, 1, order.Number)
	require.Equal(t, "30.00", order.TotalCost.StringFixed(2))
	require.True(t, order.Customer.IsGuest())
	require.Equal(t, core.Basket{{ProductID: 7, Quantity: 3}}, order.Lines)
	require.Equal(t, "09-03-2024 14:30:05", order.Date)

	p, _ := c.FindByID(7)
	require.Equal(t, 2, p.Quantity)

	// Second identical sale: the builder already refuses, and a direct
	// confirmation is rejected without side effects.
	again := svc.Begin(1, core.GuestCustomer())
	require.ErrorIs(t, again.Add(7, 3), core.ErrInsufficientStock)

	_, err = svc.Confirm(ctx, 1, core.GuestCustomer(), core.Basket{{ProductID: 7, Quantity: 3}})
	require.ErrorIs(t, err, core.ErrInsufficientStock)
	p, _ = c.FindByID(7)
	require.Equal(t, 2, p.Quantity)
	require.Len(t, ledger.Sales(), 1)
}

func TestSales_ConfirmRevalidatesStock(t *testing.T) {
	ctx := context.Background()
	c := widgetCatalog(t)
	ledger := core.NewOrderLedger()
	svc := core.NewSalesService(c, ledger)

	first := svc.Begin(1, core.GuestCustomer())
	second := svc.Begin(2, core.RegisteredCustomer(4))
	require.NoError(t, first.Add(7, 4))
	require.NoError(t, second.Add(7, 4))

	_, err := first.Preview(ctx)
	require.NoError(t, err)
	_, err = second.Preview(ctx)
	require.NoError(t, err)

	_, err = first.Confirm(ctx)
	require.NoError(t, err)
	_, err = second.Confirm(ctx)
	require.ErrorIs(t, err, core.ErrInsufficientStock)
	require.Equal(t, core.CheckoutCancelled, second.State())

	p, _ := c.FindByID(7)
	require.Equal(t, 1, p.Quantity)
	require.Equal(t, 1, ledger.LastSalesNumber(), "a failed confirmation consumes no number")
}

func TestSales_StateMachine(t *testing.T) {
	ctx := context.Background()
	c := widgetCatalog(t)
	svc := core.NewSalesService(c, core.NewOrderLedger())

	co := svc.Begin(1, core.GuestCustomer())
	_, err := co.Confirm(ctx)
	require.ErrorIs(t, err, core.ErrInvalidTransition, "confirm requires a preview")

	require.NoError(t, co.Add(7, 1))
	_, err = co.Preview(ctx)
	require.NoError(t, err)
	require.ErrorIs(t, co.Add(7, 1), core.ErrInvalidTransition, "basket is frozen once previewed")

	require.NoError(t, co.Cancel())
	require.Equal(t, core.CheckoutCancelled, co.State())
	_, err = co.Confirm(ctx)
	require.ErrorIs(t, err, core.ErrInvalidTransition)
	require.ErrorIs(t, co.Cancel(), core.ErrInvalidTransition)

	p, _ := c.FindByID(7)
	require.Equal(t, 5, p.Quantity, "cancel has no catalog side effects")
}

func TestSales_EmptyBasketConfirmsWithZeroTotal(t *testing.T) {
	ctx := context.Background()
	svc := core.NewSalesService(widgetCatalog(t), core.NewOrderLedger())

	co := svc.Begin(1, core.GuestCustomer())
	_, err := co.Preview(ctx)
	require.NoError(t, err)
	order, err := co.Confirm(ctx)
	require.NoError(t, err)
	require.True(t, order.TotalCost.IsZero())
	require.Empty(t, order.Lines)
}

func TestSales_TotalIsFrozen(t *testing.T) {
	ctx := context.Background()
	c := widgetCatalog(t)
	ledger := core.NewOrderLedger()
	svc := core.NewSalesService(c, ledger)

	order, err := svc.Confirm(ctx, 1, core.RegisteredCustomer(3), core.Basket{{ProductID: 7, Quantity: 2}})
	require.NoError(t, err)
	require.NoError(t, c.SetSalePrice(7, dec("99")))

	stored, err := ledger.SaleByNumber(order.Number)
	require.NoError(t, err)
	require.Equal(t, "20.00", stored.TotalCost.StringFixed(2))
	id, ok := stored.Customer.CustomerID()
	require.True(t, ok)
	require.Equal(t, 3, id)
}

func TestSales_LogsConfirmation(t *testing.T) {
	obsCore, logs := observer.New(zap.InfoLevel)
	svc := core.NewSalesService(widgetCatalog(t), core.NewOrderLedger(), core.WithLogger(zap.New(obsCore)))

	_, err := svc.Confirm(context.Background(), 1, core.GuestCustomer(), core.Basket{{ProductID: 7, Quantity: 1}})
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), 1, core.GuestCustomer(), core.Basket{{ProductID: 7, Quantity: 10}})
	require.Error(t, err)

	require.Equal(t, 1, logs.FilterMessage("sales order confirmed").Len())
	rejected := logs.FilterMessage("sales order rejected").All()
	require.Len(t, rejected, 1)
	require.EqualValues(t, 4, rejected[0].ContextMap()["available"])
}

func TestSales_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := widgetCatalog(t)
	svc := core.NewSalesService(c, core.NewOrderLedger())

	_, err := svc.Confirm(ctx, 1, core.GuestCustomer(), core.Basket{{ProductID: 7, Quantity: 1}})
	require.ErrorIs(t, err, context.Canceled)
	p, _ := c.FindByID(7)
	require.Equal(t, 5, p.Quantity)
}
