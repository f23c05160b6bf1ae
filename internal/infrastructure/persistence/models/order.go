package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/order"
	"github.com/labakery/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate
type OrderModel struct {
	AggregateModel
	OrderNumber   string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	PhoneNumber   string          `gorm:"type:varchar(50);not null"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	Origin        *string         `gorm:"type:varchar(20);index"` // NULL on rows created before channels existed
	PaymentMethod string          `gorm:"type:varchar(50)"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'CLP'"`
	ShippingFee   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ShippingDate  *time.Time      `gorm:"type:date"`
	Notes         string          `gorm:"type:text"`
	InternalNotes string          `gorm:"type:text"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UserID        *uuid.UUID      `gorm:"type:uuid;index"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		CustomerName:      m.CustomerName,
		PhoneNumber:       m.PhoneNumber,
		Status:            order.OrderStatus(m.Status),
		PaymentMethod:     m.PaymentMethod,
		Currency:          valueobject.Currency(m.Currency),
		ShippingFee:       m.ShippingFee,
		ShippingDate:      m.ShippingDate,
		Notes:             m.Notes,
		InternalNotes:     m.InternalNotes,
		Total:             m.Total,
		UserID:            m.UserID,
		Items:             make([]*order.OrderItem, 0, len(m.Items)),
	}
	if m.Origin != nil {
		o.Origin = order.Origin(*m.Origin)
	}
	for i := range m.Items {
		o.Items = append(o.Items, m.Items[i].ToDomain())
	}
	return o
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerName = o.CustomerName
	m.PhoneNumber = o.PhoneNumber
	m.Status = string(o.Status)
	m.Origin = nil
	if o.Origin != "" {
		origin := string(o.Origin)
		m.Origin = &origin
	}
	m.PaymentMethod = o.PaymentMethod
	m.Currency = string(o.Currency)
	m.ShippingFee = o.ShippingFee
	m.ShippingDate = o.ShippingDate
	m.Notes = o.Notes
	m.InternalNotes = o.InternalNotes
	m.Total = o.Total
	m.UserID = o.UserID
	m.Items = OrderItemModelsFromDomain(o.ID, o.Items)
}

// HeaderColumns returns the editable header columns for a partial update
func (m *OrderModel) HeaderColumns() map[string]any {
	return map[string]any{
		"customer_name":  m.CustomerName,
		"phone_number":   m.PhoneNumber,
		"status":         m.Status,
		"internal_notes": m.InternalNotes,
		"shipping_fee":   m.ShippingFee,
		"shipping_date":  m.ShippingDate,
		"total":          m.Total,
		"version":        m.Version,
		"updated_at":     m.UpdatedAt,
	}
}

// OrderItemModel is the persistence model for an order line
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null;default:0"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() *order.OrderItem {
	return &order.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		LineTotal:   m.LineTotal,
		CreatedAt:   m.CreatedAt,
	}
}

// OrderItemModelsFromDomain converts lines, keeping their order in Position
func OrderItemModelsFromDomain(orderID uuid.UUID, items []*order.OrderItem) []OrderItemModel {
	out := make([]OrderItemModel, 0, len(items))
	for i, item := range items {
		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		out = append(out, OrderItemModel{
			ID:          item.ID,
			OrderID:     orderID,
			Position:    i,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			CreatedAt:   createdAt.UTC(),
		})
	}
	return out
}
