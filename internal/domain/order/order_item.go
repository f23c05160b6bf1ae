package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderItem is a line of an order. Name and price are snapshots taken when
// the line was created, so later catalog edits never change historical totals.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	CreatedAt   time.Time
}

// NewOrderItem creates a validated order line
func NewOrderItem(productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	productName = strings.TrimSpace(productName)
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}

	return &OrderItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   LineTotal(quantity, unitPrice),
		CreatedAt:   time.Now(),
	}, nil
}

// LineQuantity implements PricedLine
func (i *OrderItem) LineQuantity() int {
	return i.Quantity
}

// LineUnitPrice implements PricedLine
func (i *OrderItem) LineUnitPrice() decimal.Decimal {
	return i.UnitPrice
}
