package order

import (
	"time"

	"github.com/labakery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type and event type constants
const (
	AggregateTypeOrder    = "Order"
	EventTypeOrderCreated = "OrderCreated"
)

// OrderCreatedItem is the line summary carried by OrderCreatedEvent
type OrderCreatedItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// OrderCreatedEvent is raised when an order is placed through any channel
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string             `json:"orderNumber"`
	CustomerName  string             `json:"customerName"`
	PhoneNumber   string             `json:"phoneNumber"`
	Origin        Origin             `json:"origin"`
	PaymentMethod string             `json:"paymentMethod"`
	Currency      string             `json:"currency"`
	ShippingFee   decimal.Decimal    `json:"shippingFee"`
	ShippingDate  *time.Time         `json:"shippingDate,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Total         decimal.Decimal    `json:"total"`
	Items         []OrderCreatedItem `json:"items"`
}

// NewOrderCreatedEvent snapshots the order into an OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	items := make([]OrderCreatedItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderCreatedItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		}
	}

	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		PhoneNumber:     o.PhoneNumber,
		Origin:          o.Origin,
		PaymentMethod:   o.PaymentMethod,
		Currency:        o.Currency.String(),
		ShippingFee:     o.ShippingFee,
		ShippingDate:    o.ShippingDate,
		Notes:           o.Notes,
		Total:           o.Total,
		Items:           items,
	}
}
