package core

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Customer is a registered customer company.
type Customer struct {
	ID          int    `json:"id"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Telephone   string `json:"telephone"`
}

// CustomerInput holds the fields required to register a customer.
type CustomerInput struct {
	CompanyName string `json:"company_name" jsonschema:"required"`
	Address     string `json:"address"`
	Telephone   string `json:"telephone"`
}

// CustomerLookup resolves registered customers referenced by sales orders.
type CustomerLookup interface {
	FindByID(id int) (Customer, error)
}

// CustomerRef identifies who bought: a walk-in guest or a registered
// customer id. The zero value is the guest.
type CustomerRef struct {
	id int
}

func GuestCustomer() CustomerRef { return CustomerRef{} }

func RegisteredCustomer(id int) CustomerRef { return CustomerRef{id: id} }

// CustomerRefFromRow decodes the persisted customer column, where 0 is a guest.
func CustomerRefFromRow(id int) (CustomerRef, error) {
	if id < 0 {
		return CustomerRef{}, fmt.Errorf("customer id %d: %w", id, ErrMalformedRow)
	}
	return CustomerRef{id: id}, nil
}

func (r CustomerRef) IsGuest() bool { return r.id == 0 }

// CustomerID returns the registered customer id; ok is false for a guest.
func (r CustomerRef) CustomerID() (id int, ok bool) {
	return r.id, r.id != 0
}

// RowID is the value written to the customer column.
func (r CustomerRef) RowID() int { return r.id }

func (r CustomerRef) String() string {
	if r.IsGuest() {
		return "guest"
	}
	return fmt.Sprintf("customer #%d", r.id)
}

type customerRefJSON struct {
	Kind       string `json:"kind"`
	CustomerID int    `json:"customer_id,omitempty"`
}

func (r CustomerRef) MarshalJSON() ([]byte, error) {
	if r.IsGuest() {
		return json.Marshal(customerRefJSON{Kind: "guest"})
	}
	return json.Marshal(customerRefJSON{Kind: "registered", CustomerID: r.id})
}

func (r *CustomerRef) UnmarshalJSON(data []byte) error {
	var v customerRefJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.Kind {
	case "", "guest":
		*r = GuestCustomer()
	case "registered":
		if v.CustomerID <= 0 {
			return fmt.Errorf("registered customer needs a positive customer_id")
		}
		*r = RegisteredCustomer(v.CustomerID)
	default:
		return fmt.Errorf("unknown customer kind %q", v.Kind)
	}
	return nil
}

// SalesOrder is a confirmed sale. It is created once by the ledger and never
// changed afterwards; TotalCost is frozen at confirmation.
type SalesOrder struct {
	Number    int             `json:"number"`
	Date      string          `json:"date"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Customer  CustomerRef     `json:"customer"`
	CashierID int             `json:"cashier_id"`
	Lines     Basket          `json:"lines"`
}

func (o SalesOrder) clone() SalesOrder {
	o.Lines = o.Lines.clone()
	return o
}
