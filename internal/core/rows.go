package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Row is one flat persisted record: an ordered list of text fields.
type Row []string

// RowKind names a collection of rows, one per entity type.
type RowKind string

const (
	KindProducts       RowKind = "products"
	KindCustomers      RowKind = "customers"
	KindSuppliers      RowKind = "suppliers"
	KindUsers          RowKind = "users"
	KindSalesOrders    RowKind = "orders"
	KindResupplyOrders RowKind = "storage_orders"
)

// RowKinds lists every kind in load order.
var RowKinds = []RowKind{
	KindProducts, KindUsers, KindCustomers, KindSuppliers, KindSalesOrders, KindResupplyOrders,
}

// Order header widths; basket pairs follow the header.
const (
	orderHeaderFields = 5
	moneyPlaces       = 2
)

// Snapshot is the full persisted image of the system as rows per kind.
type Snapshot struct {
	Products       []Row
	Customers      []Row
	Suppliers      []Row
	Users          []Row
	SalesOrders    []Row
	ResupplyOrders []Row
	// Unreadable lists lines the store could not split into a row.
	Unreadable     []SkippedRow
}

// Rows returns the rows stored under kind.
func (s *Snapshot) Rows(kind RowKind) []Row {
	switch kind {
	case KindProducts:
		return s.Products
	case KindCustomers:
		return s.Customers
	case KindSuppliers:
		return s.Suppliers
	case KindUsers:
		return s.Users
	case KindSalesOrders:
		return s.SalesOrders
	case KindResupplyOrders:
		return s.ResupplyOrders
	}
	return nil
}

// SetRows replaces the rows stored under kind.
func (s *Snapshot) SetRows(kind RowKind, rows []Row) {
	switch kind {
	case KindProducts:
		s.Products = rows
	case KindCustomers:
		s.Customers = rows
	case KindSuppliers:
		s.Suppliers = rows
	case KindUsers:
		s.Users = rows
	case KindSalesOrders:
		s.SalesOrders = rows
	case KindResupplyOrders:
		s.ResupplyOrders = rows
	}
}

// ── Encoding ──────────────────────────────────────────────────────────────────

// money pads to two places but never rounds away finer precision.
func money(d decimal.Decimal) string {
	if d.Exponent() < -moneyPlaces {
		return d.String()
	}
	return d.StringFixed(moneyPlaces)
}

func EncodeProduct(p Product) Row {
	return Row{strconv.Itoa(p.ID), p.Name, money(p.SalePrice), strconv.Itoa(p.Quantity)}
}

func EncodeCustomer(c Customer) Row {
	return Row{strconv.Itoa(c.ID), c.CompanyName, c.Address, c.Telephone}
}

func EncodeSupplier(s Supplier) Row {
	return Row{strconv.Itoa(s.ID), s.Name, s.Address, s.Telephone}
}

func EncodeUser(u User) Row {
	return Row{strconv.Itoa(u.ID), u.Name, u.Surname, u.Username, u.Password, string(u.Role)}
}

func EncodeSalesOrder(o SalesOrder) Row {
	row := Row{
		strconv.Itoa(o.Number),
		o.Date,
		money(o.TotalCost),
		strconv.Itoa(o.Customer.RowID()),
		strconv.Itoa(o.CashierID),
	}
	return appendLines(row, o.Lines)
}

func EncodeResupplyOrder(o ResupplyOrder) Row {
	row := Row{
		strconv.Itoa(o.Number),
		o.Date,
		money(o.TotalCost),
		strconv.Itoa(o.SupplierID),
		strconv.Itoa(o.StorekeeperID),
	}
	return appendLines(row, o.Lines)
}

func appendLines(row Row, lines Basket) Row {
	for _, line := range lines {
		row = append(row, strconv.Itoa(line.ProductID), strconv.Itoa(line.Quantity))
	}
	return row
}

// ── Decoding ──────────────────────────────────────────────────────────────────

func DecodeProduct(row Row) (Product, error) {
	if err := expectFields(row, 4); err != nil {
		return Product{}, err
	}
	id, err := parseInt(row, 0, "id")
	if err != nil {
		return Product{}, err
	}
	price, err := parseMoney(row, 2, "sale price")
	if err != nil {
		return Product{}, err
	}
	qty, err := parseInt(row, 3, "quantity")
	if err != nil {
		return Product{}, err
	}
	return Product{ID: id, Name: row[1], SalePrice: price, Quantity: qty}, nil
}

func DecodeCustomer(row Row) (Customer, error) {
	if err := expectFields(row, 4); err != nil {
		return Customer{}, err
	}
	id, err := parseInt(row, 0, "id")
	if err != nil {
		return Customer{}, err
	}
	return Customer{ID: id, CompanyName: row[1], Address: row[2], Telephone: row[3]}, nil
}

func DecodeSupplier(row Row) (Supplier, error) {
	if err := expectFields(row, 4); err != nil {
		return Supplier{}, err
	}
	id, err := parseInt(row, 0, "id")
	if err != nil {
		return Supplier{}, err
	}
	return Supplier{ID: id, Name: row[1], Address: row[2], Telephone: row[3]}, nil
}

func DecodeUser(row Row) (User, error) {
	if err := expectFields(row, 6); err != nil {
		return User{}, err
	}
	id, err := parseInt(row, 0, "id")
	if err != nil {
		return User{}, err
	}
	role, ok := ParseRole(row[5])
	if !ok {
		return User{}, fmt.Errorf("unknown role %q: %w", row[5], ErrMalformedRow)
	}
	return User{ID: id, Name: row[1], Surname: row[2], Username: row[3], Password: row[4], Role: role}, nil
}

// orderHeader is the common prefix of both order rows.
type orderHeader struct {
	number  int
	date    string
	total   decimal.Decimal
	partyID int
	staffID int
	lines   Basket
}

func decodeOrder(row Row) (orderHeader, error) {
	if len(row) < orderHeaderFields {
		return orderHeader{}, fmt.Errorf("expected at least %d fields, got %d: %w", orderHeaderFields, len(row), ErrMalformedRow)
	}
	if (len(row)-orderHeaderFields)%2 != 0 {
		return orderHeader{}, fmt.Errorf("dangling product id without quantity: %w", ErrMalformedRow)
	}
	var (
		h   orderHeader
		err error
	)
	if h.number, err = parseInt(row, 0, "order number"); err != nil {
		return h, err
	}
	h.date = row[1]
	if h.total, err = parseMoney(row, 2, "total cost"); err != nil {
		return h, err
	}
	if h.partyID, err = parseInt(row, 3, "customer/supplier id"); err != nil {
		return h, err
	}
	if h.staffID, err = parseInt(row, 4, "user id"); err != nil {
		return h, err
	}
	for i := orderHeaderFields; i < len(row); i += 2 {
		pid, err := parseInt(row, i, "product id")
		if err != nil {
			return h, err
		}
		qty, err := parseInt(row, i+1, "quantity")
		if err != nil {
			return h, err
		}
		if pid <= 0 || qty <= 0 {
			return h, fmt.Errorf("line (%d, %d) must be positive: %w", pid, qty, ErrMalformedRow)
		}
		h.lines = append(h.lines, BasketLine{ProductID: pid, Quantity: qty})
	}
	return h, nil
}

func DecodeSalesOrder(row Row) (SalesOrder, error) {
	h, err := decodeOrder(row)
	if err != nil {
		return SalesOrder{}, err
	}
	customer, err := CustomerRefFromRow(h.partyID)
	if err != nil {
		return SalesOrder{}, err
	}
	return SalesOrder{
		Number:    h.number,
		Date:      h.date,
		TotalCost: h.total,
		Customer:  customer,
		CashierID: h.staffID,
		Lines:     h.lines,
	}, nil
}

func DecodeResupplyOrder(row Row) (ResupplyOrder, error) {
	h, err := decodeOrder(row)
	if err != nil {
		return ResupplyOrder{}, err
	}
	return ResupplyOrder{
		Number:        h.number,
		Date:          h.date,
		TotalCost:     h.total,
		SupplierID:    h.partyID,
		StorekeeperID: h.staffID,
		Lines:         h.lines,
	}, nil
}

func expectFields(row Row, n int) error {
	if len(row) != n {
		return fmt.Errorf("expected %d fields, got %d: %w", n, len(row), ErrMalformedRow)
	}
	return nil
}

func parseInt(row Row, i int, field string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(row[i]))
	if err != nil {
		return 0, fmt.Errorf("field %d (%s) %q is not an integer: %w", i, field, row[i], ErrMalformedRow)
	}
	return v, nil
}

func parseMoney(row Row, i int, field string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(row[i]))
	if err != nil {
		return decimal.Zero, fmt.Errorf("field %d (%s) %q is not a number: %w", i, field, row[i], ErrMalformedRow)
	}
	return v, nil
}
