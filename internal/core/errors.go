package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a product, customer, supplier or user id is absent.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock is returned when a sale line exceeds the quantity on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidQuantity is returned for non-positive quantities.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrInvalidAmount is returned for negative prices or costs.
	ErrInvalidAmount = errors.New("amount cannot be negative")
	// ErrMalformedRow is returned when a persisted row cannot be parsed.
	ErrMalformedRow = errors.New("malformed row")
	// ErrMissingField is returned when a required name is blank.
	ErrMissingField = errors.New("required field is missing")
	// ErrInvalidTransition is returned when a checkout step is not allowed in its current state.
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// StockError reports a sale line that asked for more than is on hand.
type StockError struct {
	ProductID int `json:"product_id"`
	Requested int `json:"requested"`
	Available int `json:"available"`
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

func notFound(entity string, id int) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}
