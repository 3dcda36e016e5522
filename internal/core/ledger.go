package core

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// OrderLedger is the append-only register of confirmed sales and resupply
// orders. It owns both number sequences; each is strictly increasing and
// resumes from the highest number seen after a restore.
type OrderLedger struct {
	mu           sync.RWMutex
	sales        []SalesOrder
	resupplies   []ResupplyOrder
	lastSale     int
	lastResupply int
}

func NewOrderLedger() *OrderLedger {
	return &OrderLedger{}
}

// InsertSale adds an already-numbered sales order, as read back from the
// row store. Duplicate and non-positive numbers are rejected.
func (l *OrderLedger) InsertSale(o SalesOrder) error {
	if o.Number <= 0 {
		return fmt.Errorf("sales order number %d must be positive: %w", o.Number, ErrMalformedRow)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	pos, found := slices.BinarySearchFunc(l.sales, o.Number, func(s SalesOrder, n int) int { return cmp.Compare(s.Number, n) })
	if found {
		return fmt.Errorf("duplicate sales order number %d: %w", o.Number, ErrMalformedRow)
	}
	l.sales = slices.Insert(l.sales, pos, o.clone())
	l.lastSale = max(l.lastSale, o.Number)
	return nil
}

// InsertResupply adds an already-numbered resupply order.
func (l *OrderLedger) InsertResupply(o ResupplyOrder) error {
	if o.Number <= 0 {
		return fmt.Errorf("resupply order number %d must be positive: %w", o.Number, ErrMalformedRow)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	pos, found := slices.BinarySearchFunc(l.resupplies, o.Number, func(r ResupplyOrder, n int) int { return cmp.Compare(r.Number, n) })
	if found {
		return fmt.Errorf("duplicate resupply order number %d: %w", o.Number, ErrMalformedRow)
	}
	l.resupplies = slices.Insert(l.resupplies, pos, o.clone())
	l.lastResupply = max(l.lastResupply, o.Number)
	return nil
}

// AppendSale numbers draft with the next sales number and records it.
// Any number already set on draft is ignored.
func (l *OrderLedger) AppendSale(draft SalesOrder) SalesOrder {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastSale++
	draft.Number = l.lastSale
	rec := draft.clone()
	l.sales = append(l.sales, rec)
	return rec.clone()
}

// AppendResupply numbers draft with the next resupply number and records it.
func (l *OrderLedger) AppendResupply(draft ResupplyOrder) ResupplyOrder {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastResupply++
	draft.Number = l.lastResupply
	rec := draft.clone()
	l.resupplies = append(l.resupplies, rec)
	return rec.clone()
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (l *OrderLedger) Sales() []SalesOrder {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]SalesOrder, len(l.sales))
	for i, o := range l.sales {
		out[i] = o.clone()
	}
	return out
}

func (l *OrderLedger) Resupplies() []ResupplyOrder {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ResupplyOrder, len(l.resupplies))
	for i, o := range l.resupplies {
		out[i] = o.clone()
	}
	return out
}

func (l *OrderLedger) SaleByNumber(number int) (SalesOrder, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pos, found := slices.BinarySearchFunc(l.sales, number, func(s SalesOrder, n int) int { return cmp.Compare(s.Number, n) })
	if !found {
		return SalesOrder{}, notFound("sales order", number)
	}
	return l.sales[pos].clone(), nil
}

func (l *OrderLedger) ResupplyByNumber(number int) (ResupplyOrder, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pos, found := slices.BinarySearchFunc(l.resupplies, number, func(r ResupplyOrder, n int) int { return cmp.Compare(r.Number, n) })
	if !found {
		return ResupplyOrder{}, notFound("resupply order", number)
	}
	return l.resupplies[pos].clone(), nil
}

// SalesForCustomer returns the order history of a registered customer,
// including orders placed before the customer record was deleted.
func (l *OrderLedger) SalesForCustomer(customerID int) []SalesOrder {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []SalesOrder
	for _, o := range l.sales {
		if id, ok := o.Customer.CustomerID(); ok && id == customerID {
			out = append(out, o.clone())
		}
	}
	return out
}

// ResuppliesForSupplier returns every resupply order placed with a supplier.
func (l *OrderLedger) ResuppliesForSupplier(supplierID int) []ResupplyOrder {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []ResupplyOrder
	for _, o := range l.resupplies {
		if o.SupplierID == supplierID {
			out = append(out, o.clone())
		}
	}
	return out
}

func (l *OrderLedger) LastSalesNumber() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastSale
}

func (l *OrderLedger) LastResupplyNumber() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastResupply
}
