package core

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// State is the complete in-memory system: catalog, directories and ledger.
type State struct {
	Catalog   *Catalog
	Customers *CustomerDirectory
	Suppliers *SupplierDirectory
	Users     *UserDirectory
	Ledger    *OrderLedger
}

func NewState() *State {
	return &State{
		Catalog:   NewCatalog(),
		Customers: NewCustomerDirectory(),
		Suppliers: NewSupplierDirectory(),
		Users:     NewUserDirectory(),
		Ledger:    NewOrderLedger(),
	}
}

// SkippedRow records a persisted row that could not be loaded.
type SkippedRow struct {
	Kind     RowKind `json:"kind"`
	Position int     `json:"position"`
	Reason   string  `json:"reason"`
}

// DanglingRef records an order whose customer, supplier or user no longer
// exists. The order keeps the id.
type DanglingRef struct {
	OrderKind   RowKind `json:"order_kind"`
	OrderNumber int     `json:"order_number"`
	Entity      string  `json:"entity"`
	ID          int     `json:"id"`
}

// LoadReport summarises a reconstruction.
type LoadReport struct {
	Loaded   map[RowKind]int `json:"loaded"`
	Skipped  []SkippedRow    `json:"skipped,omitempty"`
	Dangling []DanglingRef   `json:"dangling,omitempty"`
}

// OK reports whether every row was loaded.
func (r *LoadReport) OK() bool { return len(r.Skipped) == 0 }

// Reconstruct rebuilds the system from a snapshot. Products load first,
// then users, customers and suppliers, then orders so that references can be
// checked. A malformed row is skipped and reported; loading never stops
// early. Order counters resume from the highest number loaded.
func Reconstruct(snap Snapshot, logger *zap.Logger) (*State, *LoadReport) {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := NewState()
	rep := &LoadReport{Loaded: map[RowKind]int{}}

	skip := func(kind RowKind, pos int, err error) {
		rep.Skipped = append(rep.Skipped, SkippedRow{Kind: kind, Position: pos, Reason: err.Error()})
		logger.Warn("skipping malformed row",
			zap.String("kind", string(kind)),
			zap.Int("position", pos),
			zap.Error(err),
		)
	}
	for _, u := range snap.Unreadable {
		rep.Skipped = append(rep.Skipped, u)
		logger.Warn("skipping unreadable row",
			zap.String("kind", string(u.Kind)),
			zap.Int("position", u.Position),
			zap.String("reason", u.Reason),
		)
	}
	load := func(kind RowKind, insert func(Row) error) {
		for i, row := range snap.Rows(kind) {
			if err := insert(row); err != nil {
				skip(kind, i, err)
				continue
			}
			rep.Loaded[kind]++
		}
	}

	load(KindProducts, func(row Row) error {
		p, err := DecodeProduct(row)
		if err != nil {
			return err
		}
		return st.Catalog.Insert(p)
	})
	load(KindUsers, func(row Row) error {
		u, err := DecodeUser(row)
		if err != nil {
			return err
		}
		return st.Users.Insert(u)
	})
	load(KindCustomers, func(row Row) error {
		c, err := DecodeCustomer(row)
		if err != nil {
			return err
		}
		return st.Customers.Insert(c)
	})
	load(KindSuppliers, func(row Row) error {
		s, err := DecodeSupplier(row)
		if err != nil {
			return err
		}
		return st.Suppliers.Insert(s)
	})

	dangling := func(kind RowKind, number int, entity string, id int) {
		rep.Dangling = append(rep.Dangling, DanglingRef{OrderKind: kind, OrderNumber: number, Entity: entity, ID: id})
		logger.Info("order references a deleted record",
			zap.String("order_kind", string(kind)),
			zap.Int("order_number", number),
			zap.String("entity", entity),
			zap.Int("id", id),
		)
	}

	load(KindSalesOrders, func(row Row) error {
		o, err := DecodeSalesOrder(row)
		if err != nil {
			return err
		}
		if err := st.Ledger.InsertSale(o); err != nil {
			return err
		}
		if id, ok := o.Customer.CustomerID(); ok {
			st.Customers.ReserveID(id)
			if _, err := st.Customers.FindByID(id); errors.Is(err, ErrNotFound) {
				dangling(KindSalesOrders, o.Number, "customer", id)
			}
		}
		st.Users.ReserveID(o.CashierID)
		if _, err := st.Users.FindByID(o.CashierID); errors.Is(err, ErrNotFound) {
			dangling(KindSalesOrders, o.Number, "user", o.CashierID)
		}
		st.reserveProductIDs(o.Lines)
		return nil
	})
	load(KindResupplyOrders, func(row Row) error {
		o, err := DecodeResupplyOrder(row)
		if err != nil {
			return err
		}
		if err := st.Ledger.InsertResupply(o); err != nil {
			return err
		}
		st.Suppliers.ReserveID(o.SupplierID)
		if _, err := st.Suppliers.FindByID(o.SupplierID); errors.Is(err, ErrNotFound) {
			dangling(KindResupplyOrders, o.Number, "supplier", o.SupplierID)
		}
		st.Users.ReserveID(o.StorekeeperID)
		if _, err := st.Users.FindByID(o.StorekeeperID); errors.Is(err, ErrNotFound) {
			dangling(KindResupplyOrders, o.Number, "user", o.StorekeeperID)
		}
		st.reserveProductIDs(o.Lines)
		return nil
	})

	logger.Info("state reconstructed",
		zap.Int("products", rep.Loaded[KindProducts]),
		zap.Int("sales_orders", rep.Loaded[KindSalesOrders]),
		zap.Int("resupply_orders", rep.Loaded[KindResupplyOrders]),
		zap.Int("next_sales_number", st.Ledger.LastSalesNumber()+1),
		zap.Int("next_resupply_number", st.Ledger.LastResupplyNumber()+1),
		zap.Int("skipped", len(rep.Skipped)),
	)
	return st, rep
}

// reserveProductIDs keeps ids of deleted products that are still referenced
// by orders from being issued again.
func (st *State) reserveProductIDs(lines Basket) {
	for _, line := range lines {
		st.Catalog.ReserveID(line.ProductID)
	}
}

// Snapshot encodes the current state as rows, in id and number order.
func (st *State) Snapshot() Snapshot {
	var snap Snapshot
	for _, p := range st.Catalog.List() {
		snap.Products = append(snap.Products, EncodeProduct(p))
	}
	for _, c := range st.Customers.List() {
		snap.Customers = append(snap.Customers, EncodeCustomer(c))
	}
	for _, s := range st.Suppliers.List() {
		snap.Suppliers = append(snap.Suppliers, EncodeSupplier(s))
	}
	for _, u := range st.Users.List() {
		snap.Users = append(snap.Users, EncodeUser(u))
	}
	for _, o := range st.Ledger.Sales() {
		snap.SalesOrders = append(snap.SalesOrders, EncodeSalesOrder(o))
	}
	for _, o := range st.Ledger.Resupplies() {
		snap.ResupplyOrders = append(snap.ResupplyOrders, EncodeResupplyOrder(o))
	}
	return snap
}

// String renders a one-line summary used in logs and the REPL banner.
func (r *LoadReport) String() string {
	return fmt.Sprintf("%d products, %d sales orders, %d resupply orders loaded; %d rows skipped",
		r.Loaded[KindProducts], r.Loaded[KindSalesOrders], r.Loaded[KindResupplyOrders], len(r.Skipped))
}
