package core

import "github.com/shopspring/decimal"

// Labels shown in place of records that have been deleted since the order.
const (
	GuestLabel           = "Guest"
	CustomerDeletedLabel = "Customer deleted"
	SupplierDeletedLabel = "Supplier deleted"
	UserDeletedLabel     = "User deleted"
	ProductRemovedLabel  = "This product has been removed from the storage."
)

// OrderLineView is a basket line resolved for display.
type OrderLineView struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Removed   bool   `json:"removed"`
}

// SalesOrderView is a sales order with its references resolved for display.
type SalesOrderView struct {
	Number        int             `json:"number"`
	Date          string          `json:"date"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Customer      CustomerRef     `json:"customer"`
	CustomerLabel string          `json:"customer_label"`
	CustomerAddr  string          `json:"customer_address,omitempty"`
	CashierID     int             `json:"cashier_id"`
	CashierLabel  string          `json:"cashier_label"`
	Lines         []OrderLineView `json:"lines"`
}

// ResupplyOrderView is a resupply order with its references resolved for display.
type ResupplyOrderView struct {
	Number           int             `json:"number"`
	Date             string          `json:"date"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	SupplierID       int             `json:"supplier_id"`
	SupplierLabel    string          `json:"supplier_label"`
	SupplierAddr     string          `json:"supplier_address,omitempty"`
	StorekeeperID    int             `json:"storekeeper_id"`
	StorekeeperLabel string          `json:"storekeeper_label"`
	Lines            []OrderLineView `json:"lines"`
}

// DescribeSalesOrder resolves the weak references of o at display time.
// Missing records are shown with a tombstone label; the order itself is
// never altered.
func DescribeSalesOrder(o SalesOrder, products ProductLookup, customers CustomerLookup, users UserLookup) SalesOrderView {
	v := SalesOrderView{
		Number:    o.Number,
		Date:      o.Date,
		TotalCost: o.TotalCost,
		Customer:  o.Customer,
		CashierID: o.CashierID,
		Lines:     describeLines(o.Lines, products),
	}
	if id, ok := o.Customer.CustomerID(); !ok {
		v.CustomerLabel = GuestLabel
	} else if c, err := customers.FindByID(id); err != nil {
		v.CustomerLabel = CustomerDeletedLabel
	} else {
		v.CustomerLabel = c.CompanyName
		v.CustomerAddr = c.Address
	}
	v.CashierLabel = userLabel(o.CashierID, users)
	return v
}

// DescribeResupplyOrder resolves the weak references of o at display time.
func DescribeResupplyOrder(o ResupplyOrder, products ProductLookup, suppliers SupplierLookup, users UserLookup) ResupplyOrderView {
	v := ResupplyOrderView{
		Number:        o.Number,
		Date:          o.Date,
		TotalCost:     o.TotalCost,
		SupplierID:    o.SupplierID,
		StorekeeperID: o.StorekeeperID,
		Lines:         describeLines(o.Lines, products),
	}
	if s, err := suppliers.FindByID(o.SupplierID); err != nil {
		v.SupplierLabel = SupplierDeletedLabel
	} else {
		v.SupplierLabel = s.Name
		v.SupplierAddr = s.Address
	}
	v.StorekeeperLabel = userLabel(o.StorekeeperID, users)
	return v
}

func describeLines(lines Basket, products ProductLookup) []OrderLineView {
	out := make([]OrderLineView, 0, len(lines))
	for _, line := range lines {
		lv := OrderLineView{ProductID: line.ProductID, Quantity: line.Quantity}
		if p, err := products.FindByID(line.ProductID); err != nil {
			lv.Name = ProductRemovedLabel
			lv.Removed = true
		} else {
			lv.Name = p.Name
		}
		out = append(out, lv)
	}
	return out
}

func userLabel(id int, users UserLookup) string {
	u, err := users.FindByID(id)
	if err != nil {
		return UserDeletedLabel
	}
	return u.FullName()
}
