package core

import "github.com/shopspring/decimal"

// Product is a sellable item together with its on-hand quantity.
// Quantity is only ever changed through Catalog operations.
type Product struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Quantity  int             `json:"quantity"`
}

// ProductLookup resolves products by id.
type ProductLookup interface {
	FindByID(id int) (Product, error)
}

// StockChecker is the read side of the catalog used while building baskets.
type StockChecker interface {
	ProductLookup
	HasSufficientStock(id, amount int) bool
}

// LineCost returns unit price × quantity.
func (p Product) LineCost(quantity int) decimal.Decimal {
	return p.SalePrice.Mul(decimal.NewFromInt(int64(quantity)))
}
