package core

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Catalog owns the shop's products and their on-hand quantities.
// A single mutex serializes every read-modify-write, so a confirmation that
// validates and mutates several products runs as one critical section.
type Catalog struct {
	mu       sync.Mutex
	products map[int]*Product
	lastID   int
}

var _ StockChecker = (*Catalog)(nil)

func NewCatalog() *Catalog {
	return &Catalog{products: map[int]*Product{}}
}

// ── Record management ─────────────────────────────────────────────────────────

// Add creates a product with the next never-used id.
func (c *Catalog) Add(name string, salePrice decimal.Decimal, quantity int) (Product, error) {
	if salePrice.IsNegative() {
		return Product{}, fmt.Errorf("sale price %s: %w", salePrice, ErrInvalidAmount)
	}
	if quantity < 0 {
		return Product{}, fmt.Errorf("initial quantity %d: %w", quantity, ErrInvalidQuantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastID++
	p := &Product{ID: c.lastID, Name: name, SalePrice: salePrice, Quantity: quantity}
	c.products[p.ID] = p
	return *p, nil
}

// Insert places an already-numbered product into the catalog. Used on reload.
func (c *Catalog) Insert(p Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("product id %d must be positive: %w", p.ID, ErrMalformedRow)
	}
	if p.SalePrice.IsNegative() {
		return fmt.Errorf("product %d sale price %s: %w", p.ID, p.SalePrice, ErrInvalidAmount)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("product %d quantity %d cannot be negative: %w", p.ID, p.Quantity, ErrMalformedRow)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.products[p.ID]; exists {
		return fmt.Errorf("duplicate product id %d: %w", p.ID, ErrMalformedRow)
	}
	clone := p
	c.products[p.ID] = &clone
	if p.ID > c.lastID {
		c.lastID = p.ID
	}
	return nil
}

// ReserveID marks id as used so Add never hands it out, even when the product
// itself no longer exists (it may still be referenced by historical orders).
func (c *Catalog) ReserveID(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id > c.lastID {
		c.lastID = id
	}
}

// Delete removes a product. Orders that reference it are not touched.
func (c *Catalog) Delete(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[id]; !ok {
		return notFound("product", id)
	}
	delete(c.products, id)
	return nil
}

// SetSalePrice changes the unit price used by future orders.
func (c *Catalog) SetSalePrice(id int, price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("sale price %s: %w", price, ErrInvalidAmount)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return notFound("product", id)
	}
	p.SalePrice = price
	return nil
}

// ── Lookups ───────────────────────────────────────────────────────────────────

func (c *Catalog) FindByID(id int) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return Product{}, notFound("product", id)
	}
	return *p, nil
}

// List returns every product ordered by id.
func (c *Catalog) List() []Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortedLocked(func(Product) bool { return true })
}

// SearchByName returns products whose name contains query, case-insensitively.
func (c *Catalog) SearchByName(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortedLocked(func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q)
	})
}

func (c *Catalog) sortedLocked(keep func(Product) bool) []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if keep(*p) {
			out = append(out, *p)
		}
	}
	slices.SortFunc(out, func(a, b Product) int { return a.ID - b.ID })
	return out
}

// LastID returns the highest product id ever issued or reserved.
func (c *Catalog) LastID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastID
}

// ── Quantity operations ───────────────────────────────────────────────────────

// HasSufficientStock reports whether amount units of product id are on hand.
// An absent product never has sufficient stock.
func (c *Catalog) HasSufficientStock(id, amount int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	return ok && amount <= p.Quantity
}

func (c *Catalog) IncreaseQuantity(id, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("increase product %d by %d: %w", id, amount, ErrInvalidQuantity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return notFound("product", id)
	}
	p.Quantity += amount
	return nil
}

func (c *Catalog) DecreaseQuantity(id, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("decrease product %d by %d: %w", id, amount, ErrInvalidQuantity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return notFound("product", id)
	}
	if amount > p.Quantity {
		return &StockError{ProductID: id, Requested: amount, Available: p.Quantity}
	}
	p.Quantity -= amount
	return nil
}

// Quote prices lines at current sale prices without touching stock.
func (c *Catalog) Quote(lines []BasketLine) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, line := range lines {
		p, ok := c.products[line.ProductID]
		if !ok {
			return decimal.Zero, notFound("product", line.ProductID)
		}
		total = total.Add(p.LineCost(line.Quantity))
	}
	return total, nil
}

// ApplySale validates every line against current stock and, only if all of
// them pass, decrements each product. It returns the basket total priced at
// the moment of the decrement. Either every line is applied or none is.
func (c *Catalog) ApplySale(lines []BasketLine) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	requested := make(map[int]int, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return decimal.Zero, fmt.Errorf("line for product %d: %w", line.ProductID, ErrInvalidQuantity)
		}
		p, ok := c.products[line.ProductID]
		if !ok {
			return decimal.Zero, notFound("product", line.ProductID)
		}
		requested[line.ProductID] += line.Quantity
		if requested[line.ProductID] > p.Quantity {
			return decimal.Zero, &StockError{
				ProductID: line.ProductID,
				Requested: requested[line.ProductID],
				Available: p.Quantity,
			}
		}
		total = total.Add(p.LineCost(line.Quantity))
	}

	for id, qty := range requested {
		c.products[id].Quantity -= qty
	}
	return total, nil
}

// ApplyResupply increments every line's product after checking that all of
// them still exist.
func (c *Catalog) ApplyResupply(lines []BasketLine) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("line for product %d: %w", line.ProductID, ErrInvalidQuantity)
		}
		if _, ok := c.products[line.ProductID]; !ok {
			return notFound("product", line.ProductID)
		}
	}
	for _, line := range lines {
		c.products[line.ProductID].Quantity += line.Quantity
	}
	return nil
}
