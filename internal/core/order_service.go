package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PreviewLine is one basket line priced at the current sale price.
type PreviewLine struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SalesPreview is what the cashier sees before confirming a sale.
type SalesPreview struct {
	Customer  CustomerRef     `json:"customer"`
	CashierID int             `json:"cashier_id"`
	Lines     []PreviewLine   `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}

// SalesService prices and confirms customer sales.
type SalesService interface {
	// Begin opens a checkout whose basket is validated against current stock.
	Begin(cashierID int, customer CustomerRef) *SalesCheckout
	// Preview prices basket without changing stock.
	Preview(ctx context.Context, cashierID int, customer CustomerRef, basket Basket) (*SalesPreview, error)
	// Confirm re-validates every line, decrements stock and records the order.
	// Nothing is changed when any line fails.
	Confirm(ctx context.Context, cashierID int, customer CustomerRef, basket Basket) (*SalesOrder, error)
}

type salesService struct {
	catalog *Catalog
	ledger  *OrderLedger
	opts    serviceOptions
}

func NewSalesService(catalog *Catalog, ledger *OrderLedger, opts ...Option) SalesService {
	return &salesService{catalog: catalog, ledger: ledger, opts: applyOptions(opts)}
}

func (s *salesService) Begin(cashierID int, customer CustomerRef) *SalesCheckout {
	return &SalesCheckout{
		checkout:  checkout{builder: NewBasketBuilder(s.catalog, SalesBasket)},
		svc:       s,
		cashierID: cashierID,
		customer:  customer,
	}
}

func (s *salesService) Preview(ctx context.Context, cashierID int, customer CustomerRef, basket Basket) (*SalesPreview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines, total, err := priceLines(s.catalog, basket)
	if err != nil {
		return nil, fmt.Errorf("failed to price sales basket: %w", err)
	}
	return &SalesPreview{Customer: customer, CashierID: cashierID, Lines: lines, Total: total}, nil
}

func (s *salesService) Confirm(ctx context.Context, cashierID int, customer CustomerRef, basket Basket) (*SalesOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total, err := s.catalog.ApplySale(basket)
	if err != nil {
		fields := []zap.Field{zap.Int("cashier_id", cashierID), zap.Stringer("customer", customer), zap.Error(err)}
		var stockErr *StockError
		if errors.As(err, &stockErr) {
			fields = append(fields, zap.Int("product_id", stockErr.ProductID),
				zap.Int("requested", stockErr.Requested), zap.Int("available", stockErr.Available))
		}
		s.opts.logger.Warn("sales order rejected", fields...)
		return nil, fmt.Errorf("failed to confirm sales order: %w", err)
	}

	order := s.ledger.AppendSale(SalesOrder{
		Date:      s.opts.stamp(),
		TotalCost: total,
		Customer:  customer,
		CashierID: cashierID,
		Lines:     basket,
	})
	s.opts.logger.Info("sales order confirmed",
		zap.Int("number", order.Number),
		zap.String("total", order.TotalCost.StringFixed(2)),
		zap.Int("lines", len(order.Lines)),
		zap.Stringer("customer", customer),
		zap.Int("cashier_id", cashierID),
	)
	return &order, nil
}

// priceLines resolves every line against the catalog at current prices.
func priceLines(catalog ProductLookup, basket Basket) ([]PreviewLine, decimal.Decimal, error) {
	lines := make([]PreviewLine, 0, len(basket))
	total := decimal.Zero
	for _, line := range basket {
		p, err := catalog.FindByID(line.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		lt := p.LineCost(line.Quantity)
		lines = append(lines, PreviewLine{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.SalePrice,
			Quantity:  line.Quantity,
			LineTotal: lt,
		})
		total = total.Add(lt)
	}
	return lines, total, nil
}

// SalesCheckout walks one sale from basket building to confirmation.
// It is not safe for concurrent use; the catalog and ledger it writes to are.
type SalesCheckout struct {
	checkout
	svc       *salesService
	cashierID int
	customer  CustomerRef
	preview   *SalesPreview
	order     *SalesOrder
}

func (c *SalesCheckout) State() CheckoutState { return c.state }
func (c *SalesCheckout) Customer() CustomerRef { return c.customer }
func (c *SalesCheckout) CashierID() int        { return c.cashierID }
func (c *SalesCheckout) Basket() Basket        { return c.builder.Basket() }

// Add offers a line to the basket; see BasketBuilder.Add.
func (c *SalesCheckout) Add(productID, quantity int) error {
	return c.add(productID, quantity)
}

// Feed offers a line and reports whether the end-of-basket sentinel was seen.
func (c *SalesCheckout) Feed(candidate BasketLine) (bool, error) {
	return c.feed(candidate)
}

// Preview prices the basket and moves the checkout to Previewed. It may be
// repeated while previewed.
func (c *SalesCheckout) Preview(ctx context.Context) (*SalesPreview, error) {
	if err := c.require(CheckoutBuilding, CheckoutPreviewed); err != nil {
		return nil, err
	}
	p, err := c.svc.Preview(ctx, c.cashierID, c.customer, c.builder.Basket())
	if err != nil {
		return nil, err
	}
	c.preview = p
	c.state = CheckoutPreviewed
	return p, nil
}

// Confirm commits a previewed sale. A failed confirmation leaves stock
// untouched and cancels the checkout.
func (c *SalesCheckout) Confirm(ctx context.Context) (*SalesOrder, error) {
	if err := c.require(CheckoutPreviewed); err != nil {
		return nil, err
	}
	order, err := c.svc.Confirm(ctx, c.cashierID, c.customer, c.builder.Basket())
	if err != nil {
		c.state = CheckoutCancelled
		return nil, err
	}
	c.order = order
	c.state = CheckoutConfirmed
	return order, nil
}

// Cancel abandons the sale. Stock is never touched before confirmation.
func (c *SalesCheckout) Cancel() error {
	return c.cancel()
}

// Order returns the confirmed order, or nil before confirmation.
func (c *SalesCheckout) Order() *SalesOrder { return c.order }
