package app

import "shop-erp/internal/core"

// ProductListResult is returned by ListProducts and SearchProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// CustomerListResult is returned by ListCustomers.
type CustomerListResult struct {
	Customers []core.Customer `json:"customers"`
}

// SupplierListResult is returned by ListSuppliers.
type SupplierListResult struct {
	Suppliers []core.Supplier `json:"suppliers"`
}

// SalePreviewResult is returned by PreviewSale.
type SalePreviewResult struct {
	Preview       *core.SalesPreview `json:"preview"`
	CustomerLabel string             `json:"customer_label"`
	CashierLabel  string             `json:"cashier_label"`
}

// ResupplyPreviewResult is returned by PreviewResupply.
type ResupplyPreviewResult struct {
	Preview          *core.ResupplyPreview `json:"preview"`
	SupplierLabel    string                `json:"supplier_label"`
	StorekeeperLabel string                `json:"storekeeper_label"`
}

// SalesOrderResult is returned by sales confirmations and lookups.
type SalesOrderResult struct {
	Order core.SalesOrderView `json:"order"`
}

// ResupplyOrderResult is returned by resupply confirmations and lookups.
type ResupplyOrderResult struct {
	Order core.ResupplyOrderView `json:"order"`
}

// SalesOrderListResult is returned by ListSalesOrders and CustomerHistory.
type SalesOrderListResult struct {
	Orders []core.SalesOrderView `json:"orders"`
}

// ResupplyOrderListResult is returned by ListResupplyOrders and SupplierHistory.
type ResupplyOrderListResult struct {
	Orders []core.ResupplyOrderView `json:"orders"`
}
