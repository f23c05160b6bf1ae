package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Placeholders used when a POS sale is rung up without customer details
const (
	POSCustomerName = "Cliente POS"
	POSPhoneNumber  = "0"
	POSPaymentCash  = "cash"
)

const dateLayout = "2006-01-02"

// Order is the aggregate root for a purchase
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string
	CustomerName  string
	PhoneNumber   string
	Status        OrderStatus
	Origin        Origin
	PaymentMethod string
	Currency      valueobject.Currency
	ShippingFee   decimal.Decimal
	ShippingDate  *time.Time
	Notes         string
	InternalNotes string
	Total         decimal.Decimal
	UserID        *uuid.UUID
	Items         []*OrderItem
}

// NewOrderParams carries the header fields and lines of a new order
type NewOrderParams struct {
	Origin        Origin
	CustomerName  string
	PhoneNumber   string
	PaymentMethod string
	Currency      valueobject.Currency
	ShippingFee   decimal.Decimal
	ShippingDate  *time.Time
	Notes         string
	InternalNotes string
	UserID        *uuid.UUID
	Items         []*OrderItem
	// Now is the creation instant used for the order number; zero means time.Now()
	Now time.Time
}

// NewOrder validates the params and creates an order in its initial status
func NewOrder(p NewOrderParams) (*Order, error) {
	origin := p.Origin.Normalized()
	if !origin.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORIGIN", "Order origin must be ecommerce, pos or manual")
	}

	customerName := strings.TrimSpace(p.CustomerName)
	phoneNumber := strings.TrimSpace(p.PhoneNumber)
	paymentMethod := strings.TrimSpace(p.PaymentMethod)

	if origin == OriginEcommerce {
		if customerName == "" {
			return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
		}
		if phoneNumber == "" {
			return nil, shared.NewDomainError("INVALID_PHONE", "Phone number is required")
		}
		if paymentMethod == "" {
			return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is required")
		}
		if p.ShippingDate == nil {
			return nil, shared.NewDomainError("INVALID_SHIPPING_DATE", "Shipping date is required")
		}
	} else {
		if customerName == "" {
			customerName = POSCustomerName
		}
		if phoneNumber == "" {
			phoneNumber = POSPhoneNumber
		}
		if paymentMethod == "" {
			paymentMethod = POSPaymentCash
		}
	}

	if len(p.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must have at least one item")
	}
	if p.ShippingFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_FEE", "Shipping fee cannot be negative")
	}

	currency := p.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       GenerateOrderNumber(origin, now),
		CustomerName:      customerName,
		PhoneNumber:       phoneNumber,
		Status:            InitialStatus(origin),
		Origin:            origin,
		PaymentMethod:     paymentMethod,
		Currency:          currency,
		ShippingFee:       p.ShippingFee,
		ShippingDate:      normalizeDate(p.ShippingDate),
		Notes:             strings.TrimSpace(p.Notes),
		InternalNotes:     strings.TrimSpace(p.InternalNotes),
		UserID:            p.UserID,
	}
	o.attachItems(p.Items)
	o.recalculateTotal()

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// ReplaceItems discards every existing line and installs the given set
func (o *Order) ReplaceItems(items []*OrderItem) error {
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Order must have at least one item")
	}
	o.attachItems(items)
	o.recalculateTotal()
	o.Touch()
	return nil
}

// SetShippingFee changes the shipping fee and recomputes the total
func (o *Order) SetShippingFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_SHIPPING_FEE", "Shipping fee cannot be negative")
	}
	o.ShippingFee = fee
	o.recalculateTotal()
	o.Touch()
	return nil
}

// ChangeStatus moves the order to target. Transitions are unrestricted;
// only the target must be a known status. The total is never affected.
func (o *Order) ChangeStatus(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS", "Invalid order status: "+string(target))
	}
	o.Status = target
	o.Touch()
	return nil
}

// ApplyPatch applies the present fields of p. Fields left nil are untouched.
func (o *Order) ApplyPatch(p Patch) error {
	if p.CustomerName != nil {
		name := strings.TrimSpace(*p.CustomerName)
		if name == "" {
			return shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
		}
		o.CustomerName = name
	}
	if p.PhoneNumber != nil {
		phone := strings.TrimSpace(*p.PhoneNumber)
		if phone == "" {
			return shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
		}
		o.PhoneNumber = phone
	}
	if p.Status != nil {
		if err := o.ChangeStatus(*p.Status); err != nil {
			return err
		}
	}
	if p.InternalNotes != nil {
		o.InternalNotes = strings.TrimSpace(*p.InternalNotes)
	}
	if p.ShippingDate != nil {
		o.ShippingDate = normalizeDate(p.ShippingDate)
	}
	if p.ShippingFee != nil {
		if err := o.SetShippingFee(*p.ShippingFee); err != nil {
			return err
		}
	}
	o.Touch()
	return nil
}

// IsShippingDue reports whether a paid order's shipping date has arrived.
// The flag is advisory; nothing completes the order automatically.
func (o *Order) IsShippingDue(today time.Time) bool {
	if o.Status != OrderStatusPaid || o.ShippingDate == nil {
		return false
	}
	return o.ShippingDate.Format(dateLayout) <= today.Format(dateLayout)
}

// Subtotal returns the unrounded sum of the line totals
func (o *Order) Subtotal() decimal.Decimal {
	return Subtotal(o.Items)
}

// IsPaid returns true if the order is paid
func (o *Order) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// IsPending returns true if the order awaits payment
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsClosedUnpaid returns true if the order was cancelled or abandoned
func (o *Order) IsClosedUnpaid() bool {
	return o.Status == OrderStatusCancelled || o.Status == OrderStatusAbandoned
}

func (o *Order) attachItems(items []*OrderItem) {
	o.Items = make([]*OrderItem, 0, len(items))
	for _, item := range items {
		item.OrderID = o.ID
		item.LineTotal = LineTotal(item.Quantity, item.UnitPrice)
		o.Items = append(o.Items, item)
	}
}

func (o *Order) recalculateTotal() {
	o.Total = OrderTotal(o.Items, o.ShippingFee)
}

// normalizeDate drops the clock part so shipping dates compare by calendar day
func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
	}
	return d, nil
}

// Patch holds an optional value per editable header field
type Patch struct {
	CustomerName  *string
	PhoneNumber   *string
	Status        *OrderStatus
	InternalNotes *string
	ShippingFee   *decimal.Decimal
	ShippingDate  *time.Time
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.CustomerName == nil && p.PhoneNumber == nil && p.Status == nil &&
		p.InternalNotes == nil && p.ShippingFee == nil && p.ShippingDate == nil
}
