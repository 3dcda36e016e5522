package core

import (
	"fmt"
	"strings"
)

// SupplierDirectory keeps supplier master records in memory.
type SupplierDirectory struct {
	reg *registry[Supplier]
}

var _ SupplierLookup = (*SupplierDirectory)(nil)

func NewSupplierDirectory() *SupplierDirectory {
	return &SupplierDirectory{reg: newRegistry("supplier", func(s Supplier) int { return s.ID })}
}

func (d *SupplierDirectory) FindByID(id int) (Supplier, error) {
	return d.reg.find(id)
}

// Add registers a supplier under the next free id.
func (d *SupplierDirectory) Add(input SupplierInput) (Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Supplier{}, fmt.Errorf("supplier name: %w", ErrMissingField)
	}
	return d.reg.add(func(id int) Supplier {
		return Supplier{ID: id, Name: name, Address: input.Address, Telephone: input.Telephone}
	}), nil
}

// Insert places an already-numbered supplier. Used on reload.
func (d *SupplierDirectory) Insert(s Supplier) error {
	return d.reg.insert(s)
}

// Delete removes the supplier; resupply orders keep its id.
func (d *SupplierDirectory) Delete(id int) error {
	return d.reg.delete(id)
}

// ReserveID stops id from being issued again; orders may still reference it.
func (d *SupplierDirectory) ReserveID(id int) {
	d.reg.reserve(id)
}

func (d *SupplierDirectory) List() []Supplier {
	return d.reg.list()
}
