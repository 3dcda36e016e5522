package repl_test

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"shop-erp/internal/adapters/repl"
	"shop-erp/internal/app"
	"shop-erp/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newService(t *testing.T) app.ApplicationService {
	t.Helper()
	st := core.NewState()
	require.NoError(t, st.Catalog.Insert(core.Product{ID: 7, Name: "Widget", SalePrice: decimal.NewFromInt(10), Quantity: 5}))
	require.NoError(t, st.Catalog.Insert(core.Product{ID: 8, Name: "Gadget", SalePrice: decimal.NewFromInt(4), Quantity: 0}))
	require.NoError(t, st.Customers.Insert(core.Customer{ID: 3, CompanyName: "Acme Ltd"}))
	require.NoError(t, st.Suppliers.Insert(core.Supplier{ID: 5, Name: "Parts Co"}))
	require.NoError(t, st.Users.Insert(core.User{ID: 1, Name: "Ann", Surname: "Lee", Username: "ann", Role: core.RoleCashier}))
	require.NoError(t, st.Users.Insert(core.User{ID: 2, Name: "Bob", Surname: "Ray", Username: "bob", Role: core.RoleStorekeeper}))
	return app.NewAppService(st, nil, nil, zaptest.NewLogger(t), app.Options{})
}

func run(t *testing.T, svc app.ApplicationService, script string) string {
	t.Helper()
	var out bytes.Buffer
	repl.Run(context.Background(), svc, bufio.NewReader(strings.NewReader(script)), &out)
	return out.String()
}

func TestSell_RetriesRejectedLinesAndConfirms(t *testing.T) {
	svc := newService(t)
	out := run(t, svc, "/sell 1 3\n7 2\n99 1\n8 1\n7 x\n7 0\n\ny\n/exit\n")

	require.Contains(t, out, "Product 99 not found, try again.")
	require.Contains(t, out, "Only 0 in stock for product 8, try again.")
	require.Contains(t, out, `invalid quantity "x"`)
	require.Contains(t, out, "Quantity must be greater than zero.")
	require.Contains(t, out, "SALES ORDER PREVIEW")
	require.Contains(t, out, "Acme Ltd")
	require.Contains(t, out, "Sale CONFIRMED.")
	require.Contains(t, out, "Order #1")
	require.Contains(t, out, "Goodbye!")

	p, err := svc.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 3, p.Quantity)
}

func TestSell_DeclinedLeavesStock(t *testing.T) {
	svc := newService(t)
	out := run(t, svc, "/sell 1\n7 1\n\nmaybe\nn\n/orders\n")

	require.Contains(t, out, "Guest")
	require.Contains(t, out, "Sale cancelled.")
	require.Contains(t, out, "No orders found.")

	p, err := svc.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 5, p.Quantity)
}

func TestSell_PreviewsMergedBasketAndStockDecidesAtConfirm(t *testing.T) {
	svc := newService(t)
	out := run(t, svc, "/sell 1\n7 3\n7 3\n\ny\n/exit\n")

	require.Contains(t, out, "SALES ORDER PREVIEW")
	require.Contains(t, out, "Ann Lee")
	require.Contains(t, out, "60.00")
	require.Contains(t, out, "Error: sale not recorded")
	require.NotContains(t, out, "Sale CONFIRMED.")

	p, err := svc.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 5, p.Quantity)
}

func TestSell_UnknownCashier(t *testing.T) {
	out := run(t, newService(t), "/sell 9\n/exit\n")
	require.Contains(t, out, "Error: cashier: user 9: not found")
}

func TestResupply_AsksForCostUntilValid(t *testing.T) {
	svc := newService(t)
	out := run(t, svc, "/resupply 2 5\n8 10\n0\nabc\n-3\n12.50\ny\n/history-supplier 5\n/exit\n")

	require.Contains(t, out, `invalid amount "abc"`)
	require.Contains(t, out, "amount cannot be negative")
	require.Contains(t, out, "RESUPPLY ORDER PREVIEW")
	require.Contains(t, out, "Resupply CONFIRMED.")
	require.Contains(t, out, "DELIVERIES FROM SUPPLIER 5")
	require.Contains(t, out, "total 12.50")

	p, err := svc.GetProduct(context.Background(), 8)
	require.NoError(t, err)
	require.Equal(t, 10, p.Quantity)
}

func TestUnknownAndPlainInput(t *testing.T) {
	out := run(t, newService(t), "hello\n/bogus\n/products widg\n")
	require.Contains(t, out, "Commands start with /.")
	require.Contains(t, out, "Unknown command: /bogus")
	require.Contains(t, out, "Widget")
	require.NotContains(t, out, "Gadget")
}
