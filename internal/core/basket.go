package core

import "fmt"

// BasketKind selects which validation rules a BasketBuilder applies.
type BasketKind int

const (
	// SalesBasket lines must be covered by stock on hand.
	SalesBasket BasketKind = iota
	// ResupplyBasket lines only need an existing product.
	ResupplyBasket
)

func (k BasketKind) String() string {
	if k == ResupplyBasket {
		return "resupply"
	}
	return "sales"
}

// BasketLine is one (product, quantity) pair of an order.
type BasketLine struct {
	ProductID int `json:"product_id" jsonschema:"minimum=1"`
	Quantity  int `json:"quantity" jsonschema:"minimum=1"`
}

// Basket is an ordered set of lines with unique product ids.
type Basket []BasketLine

// TotalQuantity sums the quantity of every line.
func (b Basket) TotalQuantity() int {
	n := 0
	for _, line := range b {
		n += line.Quantity
	}
	return n
}

func (b Basket) clone() Basket {
	out := make(Basket, len(b))
	copy(out, b)
	return out
}

// BasketBuilder accumulates candidate lines into a Basket. It reads the
// catalog but never mutates it.
type BasketBuilder struct {
	catalog StockChecker
	kind    BasketKind
	lines   Basket
	index   map[int]int // product id → position in lines
	done    bool
}

func NewBasketBuilder(catalog StockChecker, kind BasketKind) *BasketBuilder {
	return &BasketBuilder{catalog: catalog, kind: kind, index: map[int]int{}}
}

// Add offers one candidate line. A product already in the basket is merged
// without further checks; stock is validated again at confirmation.
func (b *BasketBuilder) Add(productID, quantity int) error {
	if b.done {
		return fmt.Errorf("basket already completed: %w", ErrInvalidTransition)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity %d for product %d: %w", quantity, productID, ErrInvalidQuantity)
	}
	if pos, ok := b.index[productID]; ok {
		b.lines[pos].Quantity += quantity
		return nil
	}

	p, err := b.catalog.FindByID(productID)
	if err != nil {
		return err
	}
	if b.kind == SalesBasket && !b.catalog.HasSufficientStock(productID, quantity) {
		return &StockError{ProductID: productID, Requested: quantity, Available: p.Quantity}
	}

	b.index[productID] = len(b.lines)
	b.lines = append(b.lines, BasketLine{ProductID: productID, Quantity: quantity})
	return nil
}

// Feed offers a candidate and treats a zero product id as the end of input.
// It reports done=true once the sentinel has been seen.
func (b *BasketBuilder) Feed(candidate BasketLine) (bool, error) {
	if candidate.ProductID == 0 {
		b.done = true
		return true, nil
	}
	return false, b.Add(candidate.ProductID, candidate.Quantity)
}

// Basket returns a copy of the lines accepted so far, in insertion order.
func (b *BasketBuilder) Basket() Basket {
	return b.lines.clone()
}

// Len is the number of distinct products in the basket.
func (b *BasketBuilder) Len() int { return len(b.lines) }
