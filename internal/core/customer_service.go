package core

import (
	"fmt"
	"strings"
)

// CustomerDirectory keeps registered customers in memory.
type CustomerDirectory struct {
	reg *registry[Customer]
}

var _ CustomerLookup = (*CustomerDirectory)(nil)

func NewCustomerDirectory() *CustomerDirectory {
	return &CustomerDirectory{reg: newRegistry("customer", func(c Customer) int { return c.ID })}
}

func (d *CustomerDirectory) FindByID(id int) (Customer, error) {
	return d.reg.find(id)
}

// Add registers a customer under the next free id.
func (d *CustomerDirectory) Add(input CustomerInput) (Customer, error) {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return Customer{}, fmt.Errorf("customer company name: %w", ErrMissingField)
	}
	return d.reg.add(func(id int) Customer {
		return Customer{ID: id, CompanyName: name, Address: input.Address, Telephone: input.Telephone}
	}), nil
}

// Insert places an already-numbered customer. Used on reload.
func (d *CustomerDirectory) Insert(c Customer) error {
	return d.reg.insert(c)
}

// Delete removes the customer; sales orders keep its id.
func (d *CustomerDirectory) Delete(id int) error {
	return d.reg.delete(id)
}

// ReserveID stops id from being issued again; orders may still reference it.
func (d *CustomerDirectory) ReserveID(id int) {
	d.reg.reserve(id)
}

func (d *CustomerDirectory) List() []Customer {
	return d.reg.list()
}
