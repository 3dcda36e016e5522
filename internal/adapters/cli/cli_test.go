package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"shop-erp/internal/adapters/cli"
	"shop-erp/internal/app"
	"shop-erp/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) app.ApplicationService {
	t.Helper()
	st := core.NewState()
	require.NoError(t, st.Catalog.Insert(core.Product{ID: 7, Name: "Widget", SalePrice: decimal.NewFromInt(10), Quantity: 5}))
	require.NoError(t, st.Users.Insert(core.User{ID: 1, Name: "Ann", Surname: "Lee", Username: "ann", Role: core.RoleCashier}))
	require.NoError(t, st.Ledger.InsertSale(core.SalesOrder{
		Number:    4,
		Date:      "09-03-2024 14:30:05",
		TotalCost: decimal.NewFromInt(20),
		Customer:  core.RegisteredCustomer(3),
		CashierID: 1,
		Lines:     core.Basket{{ProductID: 7, Quantity: 2}},
	}))
	return app.NewAppService(st, nil, nil, nil, app.Options{})
}

func TestRun_Order(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cli.Run(context.Background(), newService(t), []string{"order", "4"}, &out))

	var got app.SalesOrderResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, 4, got.Order.Number)
	require.Equal(t, core.CustomerDeletedLabel, got.Order.CustomerLabel)
	require.Equal(t, "Ann Lee", got.Order.CashierLabel)
	require.Equal(t, "Widget", got.Order.Lines[0].Name)
}

func TestRun_HistoryOfDeletedCustomer(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cli.Run(context.Background(), newService(t), []string{"history-customer", "3"}, &out))

	var got app.SalesOrderListResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Orders, 1)
}

func TestRun_Errors(t *testing.T) {
	svc := newService(t)
	var out bytes.Buffer

	require.ErrorIs(t, cli.Run(context.Background(), svc, []string{"order", "5"}, &out), core.ErrNotFound)
	require.ErrorContains(t, cli.Run(context.Background(), svc, []string{"order"}, &out), "usage")
	require.ErrorContains(t, cli.Run(context.Background(), svc, []string{"order", "x"}, &out), "invalid id")
	require.ErrorContains(t, cli.Run(context.Background(), svc, []string{"frobnicate"}, &out), "unknown command")
	require.Empty(t, out.String())
}
