package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one line of a checkout, POS or item-replacement request
type OrderItemInput struct {
	ProductID   uuid.UUID       `json:"productId" binding:"required"`
	ProductName string          `json:"productName" binding:"required,min=1,max=200"`
	Quantity    int             `json:"quantity" binding:"required,gt=0"`
	Price       decimal.Decimal `json:"price"`
}

// CheckoutRequest is the public storefront order payload
type CheckoutRequest struct {
	CustomerName  string           `json:"customerName" binding:"required,min=1,max=200"`
	PhoneNumber   string           `json:"phoneNumber" binding:"required,min=1,max=50"`
	PaymentMethod string           `json:"paymentMethod" binding:"required,min=1,max=50"`
	Currency      string           `json:"currency" binding:"omitempty,len=3"`
	ShippingFee   *decimal.Decimal `json:"shippingFee"`
	ShippingDate  string           `json:"shippingDate" binding:"required"`
	Notes         string           `json:"notes" binding:"max=1000"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`

	// UserID is resolved from an optional bearer token, never from the body
	UserID *uuid.UUID `json:"-"`
}

// CheckoutResponse is returned to the storefront after a successful checkout
type CheckoutResponse struct {
	OrderNumber string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
}

// CreatePOSOrderRequest is an in-person sale rung up from the back-office
type CreatePOSOrderRequest struct {
	Origin        string           `json:"origin" binding:"omitempty,oneof=pos manual"`
	CustomerName  string           `json:"customerName" binding:"max=200"`
	PhoneNumber   string           `json:"phoneNumber" binding:"max=50"`
	PaymentMethod string           `json:"paymentMethod" binding:"max=50"`
	ShippingFee   *decimal.Decimal `json:"shippingFee"`
	ShippingDate  string           `json:"shippingDate"`
	Notes         string           `json:"notes" binding:"max=1000"`
	InternalNotes string           `json:"internalNotes" binding:"max=1000"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// POSOrderResponse is returned after a POS sale is recorded
type POSOrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
}

// UpdateOrderRequest is an admin patch. Absent fields are left untouched;
// a present Items list replaces every line of the order.
type UpdateOrderRequest struct {
	CustomerName  *string          `json:"customerName" binding:"omitempty,min=1,max=200"`
	PhoneNumber   *string          `json:"phoneNumber" binding:"omitempty,min=1,max=50"`
	Status        *string          `json:"status" binding:"omitempty,oneof=pending paid completed abandoned cancelled"`
	InternalNotes *string          `json:"internalNotes" binding:"omitempty,max=1000"`
	ShippingFee   *decimal.Decimal `json:"shippingFee"`
	ShippingDate  *string          `json:"shippingDate"`
	Items         []OrderItemInput `json:"items" binding:"omitempty,dive"`
}

// OrderListFilter holds the admin listing query parameters
type OrderListFilter struct {
	Origin   string `form:"origin" binding:"omitempty,oneof=web pos manual"`
	Status   string `form:"status" binding:"omitempty,oneof=pending paid completed abandoned cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse is an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// OrderResponse is an order in admin API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	CustomerName  string              `json:"customerName"`
	PhoneNumber   string              `json:"phoneNumber"`
	Status        string              `json:"status"`
	Origin        string              `json:"origin"`
	PaymentMethod string              `json:"paymentMethod"`
	Currency      string              `json:"currency"`
	ShippingFee   decimal.Decimal     `json:"shippingFee"`
	ShippingDate  *string             `json:"shippingDate"`
	ShippingDue   bool                `json:"shippingDue"`
	Notes         string              `json:"notes"`
	InternalNotes string              `json:"internalNotes"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Total         decimal.Decimal     `json:"total"`
	UserID        *uuid.UUID          `json:"userId,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// ToOrderResponse converts a domain Order, flagging shipping due against today
func ToOrderResponse(o *order.Order, today time.Time) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	var shippingDate *string
	if o.ShippingDate != nil {
		d := o.ShippingDate.Format("2006-01-02")
		shippingDate = &d
	}

	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		PhoneNumber:   o.PhoneNumber,
		Status:        o.Status.String(),
		Origin:        o.Origin.Normalized().String(),
		PaymentMethod: o.PaymentMethod,
		Currency:      o.Currency.String(),
		ShippingFee:   o.ShippingFee,
		ShippingDate:  shippingDate,
		ShippingDue:   o.IsShippingDue(today),
		Notes:         o.Notes,
		InternalNotes: o.InternalNotes,
		Subtotal:      o.Subtotal(),
		Total:         o.Total,
		UserID:        o.UserID,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
