package app

import (
	"shop-erp/internal/core"

	"github.com/shopspring/decimal"
)

// AddProductRequest is the input for creating a catalog product.
type AddProductRequest struct {
	Name      string          `json:"name" jsonschema:"required,minLength=1"`
	SalePrice decimal.Decimal `json:"sale_price" jsonschema:"required,type=string"`
	Quantity  int             `json:"quantity" jsonschema:"minimum=0"`
}

// SetPriceRequest is the input for changing a product's sale price.
type SetPriceRequest struct {
	SalePrice decimal.Decimal `json:"sale_price" jsonschema:"required,type=string"`
}

// SaleRequest is a complete sale submitted in one call. Lines are fed to a
// sales basket in order, so repeated product ids are merged.
type SaleRequest struct {
	CashierID int               `json:"cashier_id" jsonschema:"required,minimum=1"`
	Customer  core.CustomerRef  `json:"customer"`
	Lines     []core.BasketLine `json:"lines"`
}

// ResupplyRequest is a complete delivery submitted in one call.
type ResupplyRequest struct {
	StorekeeperID int               `json:"storekeeper_id" jsonschema:"required,minimum=1"`
	SupplierID    int               `json:"supplier_id" jsonschema:"required,minimum=1"`
	TotalCost     decimal.Decimal   `json:"total_cost" jsonschema:"required,type=string"`
	Lines         []core.BasketLine `json:"lines"`
}
