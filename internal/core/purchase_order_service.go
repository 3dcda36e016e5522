package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ResupplyPreview is what the storekeeper sees before confirming a delivery.
// Lines are priced at sale price for reference only; TotalCost is the
// supplier's invoiced amount.
type ResupplyPreview struct {
	SupplierID    int             `json:"supplier_id"`
	StorekeeperID int             `json:"storekeeper_id"`
	Lines         []PreviewLine   `json:"lines"`
	TotalQuantity int             `json:"total_quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// ResupplyService records deliveries from suppliers.
type ResupplyService interface {
	Begin(storekeeperID, supplierID int) *ResupplyCheckout
	Preview(ctx context.Context, storekeeperID, supplierID int, basket Basket, totalCost decimal.Decimal) (*ResupplyPreview, error)
	// Confirm increments stock for every line and records the order. It only
	// fails when a product has disappeared since the basket was built.
	Confirm(ctx context.Context, storekeeperID, supplierID int, basket Basket, totalCost decimal.Decimal) (*ResupplyOrder, error)
}

type resupplyService struct {
	catalog *Catalog
	ledger  *OrderLedger
	opts    serviceOptions
}

func NewResupplyService(catalog *Catalog, ledger *OrderLedger, opts ...Option) ResupplyService {
	return &resupplyService{catalog: catalog, ledger: ledger, opts: applyOptions(opts)}
}

func (s *resupplyService) Begin(storekeeperID, supplierID int) *ResupplyCheckout {
	return &ResupplyCheckout{
		checkout:      checkout{builder: NewBasketBuilder(s.catalog, ResupplyBasket)},
		svc:           s,
		storekeeperID: storekeeperID,
		supplierID:    supplierID,
		totalCost:     decimal.Zero,
	}
}

func (s *resupplyService) Preview(ctx context.Context, storekeeperID, supplierID int, basket Basket, totalCost decimal.Decimal) (*ResupplyPreview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if totalCost.IsNegative() {
		return nil, fmt.Errorf("resupply total cost %s: %w", totalCost, ErrInvalidAmount)
	}
	lines, _, err := priceLines(s.catalog, basket)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve resupply basket: %w", err)
	}
	return &ResupplyPreview{
		SupplierID:    supplierID,
		StorekeeperID: storekeeperID,
		Lines:         lines,
		TotalQuantity: basket.TotalQuantity(),
		TotalCost:     totalCost,
	}, nil
}

func (s *resupplyService) Confirm(ctx context.Context, storekeeperID, supplierID int, basket Basket, totalCost decimal.Decimal) (*ResupplyOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if totalCost.IsNegative() {
		return nil, fmt.Errorf("resupply total cost %s: %w", totalCost, ErrInvalidAmount)
	}
	if err := s.catalog.ApplyResupply(basket); err != nil {
		s.opts.logger.Warn("resupply order rejected",
			zap.Int("storekeeper_id", storekeeperID),
			zap.Int("supplier_id", supplierID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to confirm resupply order: %w", err)
	}

	order := s.ledger.AppendResupply(ResupplyOrder{
		Date:          s.opts.stamp(),
		TotalCost:     totalCost,
		SupplierID:    supplierID,
		StorekeeperID: storekeeperID,
		Lines:         basket,
	})
	s.opts.logger.Info("resupply order confirmed",
		zap.Int("number", order.Number),
		zap.String("total_cost", order.TotalCost.StringFixed(2)),
		zap.Int("lines", len(order.Lines)),
		zap.Int("supplier_id", supplierID),
		zap.Int("storekeeper_id", storekeeperID),
	)
	return &order, nil
}

// ResupplyCheckout walks one delivery from basket building to confirmation.
type ResupplyCheckout struct {
	checkout
	svc           *resupplyService
	storekeeperID int
	supplierID    int
	totalCost     decimal.Decimal
	order         *ResupplyOrder
}

func (c *ResupplyCheckout) State() CheckoutState { return c.state }
func (c *ResupplyCheckout) SupplierID() int       { return c.supplierID }
func (c *ResupplyCheckout) StorekeeperID() int    { return c.storekeeperID }
func (c *ResupplyCheckout) Basket() Basket        { return c.builder.Basket() }
func (c *ResupplyCheckout) TotalCost() decimal.Decimal {
	return c.totalCost
}

func (c *ResupplyCheckout) Add(productID, quantity int) error {
	return c.add(productID, quantity)
}

func (c *ResupplyCheckout) Feed(candidate BasketLine) (bool, error) {
	return c.feed(candidate)
}

// SetTotalCost records the supplier's invoiced amount. Allowed until the
// checkout is confirmed or cancelled; changing it after a preview requires
// a new preview.
func (c *ResupplyCheckout) SetTotalCost(cost decimal.Decimal) error {
	if err := c.require(CheckoutBuilding, CheckoutPreviewed); err != nil {
		return err
	}
	if cost.IsNegative() {
		return fmt.Errorf("resupply total cost %s: %w", cost, ErrInvalidAmount)
	}
	c.totalCost = cost
	c.state = CheckoutBuilding
	return nil
}

func (c *ResupplyCheckout) Preview(ctx context.Context) (*ResupplyPreview, error) {
	if err := c.require(CheckoutBuilding, CheckoutPreviewed); err != nil {
		return nil, err
	}
	p, err := c.svc.Preview(ctx, c.storekeeperID, c.supplierID, c.builder.Basket(), c.totalCost)
	if err != nil {
		return nil, err
	}
	c.state = CheckoutPreviewed
	return p, nil
}

// Confirm commits a previewed delivery. On failure the checkout is cancelled.
func (c *ResupplyCheckout) Confirm(ctx context.Context) (*ResupplyOrder, error) {
	if err := c.require(CheckoutPreviewed); err != nil {
		return nil, err
	}
	order, err := c.svc.Confirm(ctx, c.storekeeperID, c.supplierID, c.builder.Basket(), c.totalCost)
	if err != nil {
		c.state = CheckoutCancelled
		return nil, err
	}
	c.order = order
	c.state = CheckoutConfirmed
	return order, nil
}

func (c *ResupplyCheckout) Cancel() error {
	return c.cancel()
}

func (c *ResupplyCheckout) Order() *ResupplyOrder { return c.order }
