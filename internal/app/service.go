package app

import (
	"context"

	"shop-erp/internal/core"

	"github.com/shopspring/decimal"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// ListProducts returns every product in the catalog ordered by id.
	ListProducts(ctx context.Context) (*ProductListResult, error)

	// SearchProducts returns products whose name contains query.
	SearchProducts(ctx context.Context, query string) (*ProductListResult, error)

	// GetProduct returns a single product by id.
	GetProduct(ctx context.Context, id int) (*core.Product, error)

	// AddProduct creates a product under the next unused id.
	AddProduct(ctx context.Context, req AddProductRequest) (*core.Product, error)

	// SetProductPrice changes the sale price used by future orders.
	SetProductPrice(ctx context.Context, id int, price decimal.Decimal) (*core.Product, error)

	// DeleteProduct removes a product. Orders that reference it are kept.
	DeleteProduct(ctx context.Context, id int) error

	ListCustomers(ctx context.Context) (*CustomerListResult, error)
	AddCustomer(ctx context.Context, req core.CustomerInput) (*core.Customer, error)
	DeleteCustomer(ctx context.Context, id int) error

	ListSuppliers(ctx context.Context) (*SupplierListResult, error)
	AddSupplier(ctx context.Context, req core.SupplierInput) (*core.Supplier, error)
	DeleteSupplier(ctx context.Context, id int) error

	// GetUser returns a staff member by id.
	GetUser(ctx context.Context, id int) (*core.User, error)

	// BeginSale opens an interactive sales checkout after checking that the
	// cashier and any registered customer exist.
	BeginSale(ctx context.Context, cashierID int, customer core.CustomerRef) (*core.SalesCheckout, error)

	// BeginResupply opens an interactive resupply checkout after checking that
	// the storekeeper and supplier exist.
	BeginResupply(ctx context.Context, storekeeperID, supplierID int) (*core.ResupplyCheckout, error)

	// SaleLabels resolves the customer and cashier names shown on a sale.
	SaleLabels(ctx context.Context, cashierID int, customer core.CustomerRef) (customerLabel, cashierLabel string)

	// ResupplyLabels resolves the supplier and storekeeper names shown on a delivery.
	ResupplyLabels(ctx context.Context, storekeeperID, supplierID int) (supplierLabel, storekeeperLabel string)

	// CompleteSale confirms a previewed interactive checkout and persists the result.
	CompleteSale(ctx context.Context, checkout *core.SalesCheckout) (*SalesOrderResult, error)

	// CompleteResupply confirms a previewed interactive checkout and persists the result.
	CompleteResupply(ctx context.Context, checkout *core.ResupplyCheckout) (*ResupplyOrderResult, error)

	// PreviewSale validates a whole basket and prices it without changing stock.
	PreviewSale(ctx context.Context, req SaleRequest) (*SalePreviewResult, error)

	// ConfirmSale validates, confirms and records a sale in one call.
	ConfirmSale(ctx context.Context, req SaleRequest) (*SalesOrderResult, error)

	// PreviewResupply validates a delivery basket without changing stock.
	PreviewResupply(ctx context.Context, req ResupplyRequest) (*ResupplyPreviewResult, error)

	// ConfirmResupply validates, confirms and records a delivery in one call.
	ConfirmResupply(ctx context.Context, req ResupplyRequest) (*ResupplyOrderResult, error)

	ListSalesOrders(ctx context.Context) (*SalesOrderListResult, error)
	GetSalesOrder(ctx context.Context, number int) (*SalesOrderResult, error)
	ListResupplyOrders(ctx context.Context) (*ResupplyOrderListResult, error)
	GetResupplyOrder(ctx context.Context, number int) (*ResupplyOrderResult, error)

	// CustomerHistory lists the sales orders of a registered customer. The
	// customer record itself may already be deleted.
	CustomerHistory(ctx context.Context, customerID int) (*SalesOrderListResult, error)

	// SupplierHistory lists the resupply orders placed with a supplier.
	SupplierHistory(ctx context.Context, supplierID int) (*ResupplyOrderListResult, error)

	// Save writes a consistent snapshot of the whole system to the row store.
	Save(ctx context.Context) error

	// LoadReport describes what happened when the state was reconstructed.
	LoadReport() *core.LoadReport
}
