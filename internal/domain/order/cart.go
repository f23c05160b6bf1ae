package order

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartProduct is the product snapshot a cart line is priced from
type CartProduct struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CartLine is a product and how many of it are staged
type CartLine struct {
	Product  CartProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

// LineQuantity implements PricedLine
func (l CartLine) LineQuantity() int {
	return l.Quantity
}

// LineUnitPrice implements PricedLine
func (l CartLine) LineUnitPrice() decimal.Decimal {
	return l.Product.Price
}

// Cart stages products and quantities for a POS sale or an order edit.
// Lines are keyed by product ID. Adding a product already staged at a
// different price fails with PRICE_CONFLICT.
// A Cart is not safe for concurrent use.
type Cart struct {
	lines map[uuid.UUID]*CartLine
	order []uuid.UUID
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{lines: make(map[uuid.UUID]*CartLine)}
}

// NewCartFromOrder seeds a cart with the lines of an existing order
func NewCartFromOrder(o *Order) (*Cart, error) {
	c := NewCart()
	for _, item := range o.Items {
		p := CartProduct{ID: item.ProductID, Name: item.ProductName, Price: item.UnitPrice}
		if err := c.AddQuantity(p, item.Quantity); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func errPriceConflict(name string) error {
	return shared.NewDomainError("PRICE_CONFLICT", "Product "+name+" is listed with different prices")
}

// Add increments the product's quantity by one, inserting it if absent
func (c *Cart) Add(p CartProduct) {
	if line, ok := c.lines[p.ID]; ok {
		line.Quantity++
		return
	}
	c.put(p, 1)
}

// AddQuantity adds n units of the product. n must be positive.
func (c *Cart) AddQuantity(p CartProduct, n int) error {
	if n <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if line, ok := c.lines[p.ID]; ok {
		if !line.Product.Price.Equal(p.Price) {
			return errPriceConflict(line.Product.Name)
		}
		line.Quantity += n
		return nil
	}
	c.put(p, n)
	return nil
}

// SetQuantity overwrites the quantity of a staged product; n <= 0 removes it
func (c *Cart) SetQuantity(productID uuid.UUID, n int) {
	if n <= 0 {
		c.Remove(productID)
		return
	}
	if line, ok := c.lines[productID]; ok {
		line.Quantity = n
	}
}

// Remove drops the product from the cart
func (c *Cart) Remove(productID uuid.UUID) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Quantity returns the staged quantity of a product, zero if absent
func (c *Cart) Quantity(productID uuid.UUID) int {
	if line, ok := c.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}

// Len returns the number of distinct products
func (c *Cart) Len() int {
	return len(c.order)
}

// IsEmpty reports whether nothing is staged
func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

// Lines returns the staged lines in insertion order
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, *c.lines[id])
	}
	return lines
}

// Subtotal prices every line at its product price
func (c *Cart) Subtotal() decimal.Decimal {
	return Subtotal(c.Lines())
}

// Items converts the staged lines into validated order items
func (c *Cart) Items() ([]*OrderItem, error) {
	items := make([]*OrderItem, 0, len(c.order))
	for _, line := range c.Lines() {
		item, err := NewOrderItem(line.Product.ID, line.Product.Name, line.Quantity, line.Product.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Reset empties the cart
func (c *Cart) Reset() {
	c.lines = make(map[uuid.UUID]*CartLine)
	c.order = nil
}

type cartState struct {
	Lines []CartLine `json:"lines"`
}

// MarshalJSON encodes the cart as {"lines":[...]}
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(cartState{Lines: c.Lines()})
}

// UnmarshalJSON restores a cart saved by MarshalJSON. Lines with a
// non-positive quantity are dropped; conflicting prices fail.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var state cartState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	c.Reset()
	for _, line := range state.Lines {
		if line.Quantity <= 0 {
			continue
		}
		if err := c.AddQuantity(line.Product, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cart) put(p CartProduct, n int) {
	if c.lines == nil {
		c.lines = make(map[uuid.UUID]*CartLine)
	}
	c.lines[p.ID] = &CartLine{Product: p, Quantity: n}
	c.order = append(c.order, p.ID)
}
