package core

import "fmt"

// CheckoutState is the position of a checkout in its lifecycle:
//
//	Building → Previewed → Confirmed
//	Building | Previewed → Cancelled
type CheckoutState int

const (
	CheckoutBuilding CheckoutState = iota
	CheckoutPreviewed
	CheckoutConfirmed
	CheckoutCancelled
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutBuilding:
		return "building"
	case CheckoutPreviewed:
		return "previewed"
	case CheckoutConfirmed:
		return "confirmed"
	case CheckoutCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("CheckoutState(%d)", int(s))
}

// checkout holds the state and basket shared by both checkout kinds.
type checkout struct {
	state   CheckoutState
	builder *BasketBuilder
}

func (c *checkout) require(allowed ...CheckoutState) error {
	for _, s := range allowed {
		if c.state == s {
			return nil
		}
	}
	return fmt.Errorf("checkout is %s: %w", c.state, ErrInvalidTransition)
}

func (c *checkout) add(productID, quantity int) error {
	if err := c.require(CheckoutBuilding); err != nil {
		return err
	}
	return c.builder.Add(productID, quantity)
}

func (c *checkout) feed(candidate BasketLine) (bool, error) {
	if err := c.require(CheckoutBuilding); err != nil {
		return false, err
	}
	return c.builder.Feed(candidate)
}

func (c *checkout) cancel() error {
	if err := c.require(CheckoutBuilding, CheckoutPreviewed); err != nil {
		return err
	}
	c.state = CheckoutCancelled
	return nil
}
