package core

// Supplier is a company the shop buys stock from.
type Supplier struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Telephone string `json:"telephone"`
}

// SupplierInput holds the fields required to register a supplier.
type SupplierInput struct {
	Name      string `json:"name" jsonschema:"required"`
	Address   string `json:"address"`
	Telephone string `json:"telephone"`
}

// SupplierLookup resolves suppliers referenced by resupply orders.
type SupplierLookup interface {
	FindByID(id int) (Supplier, error)
}
