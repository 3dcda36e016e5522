package core_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"shop-erp/internal/core"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type checkoutTestContext struct {
	state    *core.State
	sale     *core.SalesOrder
	resupply *core.ResupplyOrder
	err      error
}

func (c *checkoutTestContext) reset() {
	c.state = core.NewState()
	c.sale = nil
	c.resupply = nil
	c.err = nil
}

func (c *checkoutTestContext) aProductPricedWithInStock(id int, name, price string, qty int) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	return c.state.Catalog.Insert(core.Product{ID: id, Name: name, SalePrice: p, Quantity: qty})
}

func (c *checkoutTestContext) sell(ctx context.Context, cashier int, basket core.Basket) {
	svc := core.NewSalesService(c.state.Catalog, c.state.Ledger)
	c.sale, c.err = svc.Confirm(ctx, cashier, core.GuestCustomer(), basket)
}

func (c *checkoutTestContext) cashierSellsToAGuest(ctx context.Context, cashier, qty, product int) error {
	c.sell(ctx, cashier, core.Basket{{ProductID: product, Quantity: qty}})
	return nil
}

func (c *checkoutTestContext) cashierSellsTwoLinesToAGuest(ctx context.Context, cashier, qty1, product1, qty2, product2 int) error {
	c.sell(ctx, cashier, core.Basket{
		{ProductID: product1, Quantity: qty1},
		{ProductID: product2, Quantity: qty2},
	})
	return nil
}

func (c *checkoutTestContext) storekeeperReceives(ctx context.Context, storekeeper, qty, product, supplier int, cost string) error {
	amount, err := decimal.NewFromString(cost)
	if err != nil {
		return err
	}
	svc := core.NewResupplyService(c.state.Catalog, c.state.Ledger)
	c.resupply, c.err = svc.Confirm(ctx, storekeeper, supplier, core.Basket{{ProductID: product, Quantity: qty}}, amount)
	return nil
}

func (c *checkoutTestContext) theSystemIsSavedAndReloaded() error {
	st, rep := core.Reconstruct(c.state.Snapshot(), nil)
	if !rep.OK() {
		return fmt.Errorf("reload skipped rows: %v", rep.Skipped)
	}
	c.state = st
	return nil
}

func (c *checkoutTestContext) theSaleIsConfirmedAsOrderWithTotal(number int, total string) error {
	if c.err != nil {
		return fmt.Errorf("expected confirmation but got error: %v", c.err)
	}
	if c.sale.Number != number {
		return fmt.Errorf("expected order %d, got %d", number, c.sale.Number)
	}
	if got := c.sale.TotalCost.StringFixed(2); got != total {
		return fmt.Errorf("expected total %s, got %s", total, got)
	}
	return nil
}

func (c *checkoutTestContext) theResupplyIsConfirmedAsOrderWithTotal(number int, total string) error {
	if c.err != nil {
		return fmt.Errorf("expected confirmation but got error: %v", c.err)
	}
	if c.resupply.Number != number {
		return fmt.Errorf("expected order %d, got %d", number, c.resupply.Number)
	}
	if got := c.resupply.TotalCost.StringFixed(2); got != total {
		return fmt.Errorf("expected total %s, got %s", total, got)
	}
	return nil
}

func (c *checkoutTestContext) theSaleFailsWithInsufficientStock() error {
	if c.err == nil {
		return errors.New("expected the sale to fail but it succeeded")
	}
	if !errors.Is(c.err, core.ErrInsufficientStock) {
		return fmt.Errorf("expected insufficient stock, got %v", c.err)
	}
	return nil
}

func (c *checkoutTestContext) productHasInStock(id, qty int) error {
	p, err := c.state.Catalog.FindByID(id)
	if err != nil {
		return err
	}
	if p.Quantity != qty {
		return fmt.Errorf("expected %d in stock for product %d, got %d", qty, id, p.Quantity)
	}
	return nil
}

func InitializeCheckoutScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a product (\d+) "([^"]*)" priced "([^"]*)" with (\d+) in stock$`, tc.aProductPricedWithInStock)

	ctx.Step(`^cashier (\d+) sells (\d+) of product (\d+) to a guest$`, tc.cashierSellsToAGuest)
	ctx.Step(`^cashier (\d+) sells (\d+) of product (\d+) and (\d+) of product (\d+) to a guest$`, tc.cashierSellsTwoLinesToAGuest)
	ctx.Step(`^storekeeper (\d+) receives (\d+) of product (\d+) from supplier (\d+) invoiced at "([^"]*)"$`, tc.storekeeperReceives)
	ctx.Step(`^the system is saved and reloaded$`, tc.theSystemIsSavedAndReloaded)

	ctx.Step(`^the sale is confirmed as order (\d+) with total "([^"]*)"$`, tc.theSaleIsConfirmedAsOrderWithTotal)
	ctx.Step(`^the resupply is confirmed as order (\d+) with total "([^"]*)"$`, tc.theResupplyIsConfirmedAsOrderWithTotal)
	ctx.Step(`^the sale fails with insufficient stock$`, tc.theSaleFailsWithInsufficientStock)
	ctx.Step(`^product (\d+) has (\d+) in stock$`, tc.productHasInStock)
}

func TestCheckoutFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeCheckoutScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
