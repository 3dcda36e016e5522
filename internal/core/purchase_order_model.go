package core

import "github.com/shopspring/decimal"

// ResupplyOrder is a confirmed delivery from a supplier. TotalCost is the
// invoiced amount entered by the storekeeper and is never recomputed.
type ResupplyOrder struct {
	Number        int             `json:"number"`
	Date          string          `json:"date"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	SupplierID    int             `json:"supplier_id"`
	StorekeeperID int             `json:"storekeeper_id"`
	Lines         Basket          `json:"lines"`
}

func (o ResupplyOrder) clone() ResupplyOrder {
	o.Lines = o.Lines.clone()
	return o
}
