package order

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func newTestItem(t *testing.T, name string, qty int, price int64) *OrderItem {
	t.Helper()
	item, err := NewOrderItem(uuid.New(), name, qty, decimal.NewFromInt(price))
	require.NoError(t, err)
	return item
}

func shippingDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return &d
}

func newEcommerceOrder(t *testing.T, fee int64, items ...*OrderItem) *Order {
	t.Helper()
	o, err := NewOrder(NewOrderParams{
		Origin:        OriginEcommerce,
		CustomerName:  "Ana",
		PhoneNumber:   "+56911112222",
		PaymentMethod: "transfer",
		ShippingFee:   decimal.NewFromInt(fee),
		ShippingDate:  shippingDate(t, "2024-05-10"),
		Items:         items,
	})
	require.NoError(t, err)
	return o
}

func domainCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================
// OrderItem Tests
// ============================================

func TestNewOrderItem(t *testing.T) {
	productID := uuid.New()

	t.Run("valid item computes line total", func(t *testing.T) {
		item, err := NewOrderItem(productID, "  Brownie  ", 3, decimal.NewFromInt(1500))
		require.NoError(t, err)
		assert.Equal(t, "Brownie", item.ProductName)
		assert.Equal(t, 3, item.Quantity)
		assertDecimal(t, "4500", item.LineTotal)
		assert.NotEqual(t, uuid.Nil, item.ID)
	})

	tests := []struct {
		name      string
		productID uuid.UUID
		product   string
		qty       int
		price     int64
		code      string
	}{
		{"zero quantity", productID, "Cookie", 0, 100, "INVALID_QUANTITY"},
		{"negative quantity", productID, "Cookie", -1, 100, "INVALID_QUANTITY"},
		{"negative price", productID, "Cookie", 1, -5, "INVALID_PRICE"},
		{"zero price", productID, "Cookie", 1, 0, "INVALID_PRICE"},
		{"missing product", uuid.Nil, "Cookie", 1, 100, "INVALID_PRODUCT"},
		{"blank name", productID, "   ", 1, 100, "INVALID_PRODUCT_NAME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrderItem(tt.productID, tt.product, tt.qty, decimal.NewFromInt(tt.price))
			require.Error(t, err)
			assert.Equal(t, tt.code, domainCode(err))
		})
	}
}

// ============================================
// NewOrder Tests
// ============================================

func TestNewOrder_Ecommerce(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	o, err := NewOrder(NewOrderParams{
		Origin:        OriginEcommerce,
		CustomerName:  "Ana",
		PhoneNumber:   "+56911112222",
		PaymentMethod: "transfer",
		ShippingFee:   decimal.Zero,
		ShippingDate:  shippingDate(t, "2024-05-10"),
		Items: []*OrderItem{
			newTestItem(t, "Cookie", 2, 100),
			newTestItem(t, "Brownie", 1, 120),
		},
		Now: created,
	})
	require.NoError(t, err)

	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, GenerateOrderNumber(OriginEcommerce, created), o.OrderNumber)
	assert.Equal(t, "CLP", o.Currency.String())
	assertDecimal(t, "320", o.Total)
	for _, item := range o.Items {
		assert.Equal(t, o.ID, item.OrderID)
	}

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	evt, ok := events[0].(*OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, EventTypeOrderCreated, evt.EventType())
	assert.Equal(t, o.OrderNumber, evt.OrderNumber)
	assert.Len(t, evt.Items, 2)
}

func TestNewOrder_POSDefaults(t *testing.T) {
	for _, origin := range []Origin{OriginPOS, OriginManual} {
		t.Run(string(origin), func(t *testing.T) {
			o, err := NewOrder(NewOrderParams{
				Origin:       origin,
				CustomerName: "  ",
				Items:        []*OrderItem{newTestItem(t, "Cookie", 1, 100)},
			})
			require.NoError(t, err)
			assert.Equal(t, POSCustomerName, o.CustomerName)
			assert.Equal(t, POSPhoneNumber, o.PhoneNumber)
			assert.Equal(t, POSPaymentCash, o.PaymentMethod)
			assert.Equal(t, OrderStatusPaid, o.Status)
			assert.Contains(t, o.OrderNumber, origin.OrderNumberPrefix()+"-")
			assert.Nil(t, o.ShippingDate)
		})
	}
}

func TestNewOrder_Validation(t *testing.T) {
	item := newTestItem(t, "Cookie", 1, 100)
	base := func() NewOrderParams {
		return NewOrderParams{
			Origin:        OriginEcommerce,
			CustomerName:  "Ana",
			PhoneNumber:   "123",
			PaymentMethod: "transfer",
			ShippingDate:  shippingDate(t, "2024-05-10"),
			Items:         []*OrderItem{item},
		}
	}

	tests := []struct {
		name   string
		mutate func(p *NewOrderParams)
		code   string
	}{
		{"unknown origin", func(p *NewOrderParams) { p.Origin = "kiosk" }, "INVALID_ORIGIN"},
		{"missing customer", func(p *NewOrderParams) { p.CustomerName = "" }, "INVALID_CUSTOMER"},
		{"missing phone", func(p *NewOrderParams) { p.PhoneNumber = " " }, "INVALID_PHONE"},
		{"missing payment method", func(p *NewOrderParams) { p.PaymentMethod = "" }, "INVALID_PAYMENT_METHOD"},
		{"missing shipping date", func(p *NewOrderParams) { p.ShippingDate = nil }, "INVALID_SHIPPING_DATE"},
		{"no items", func(p *NewOrderParams) { p.Items = nil }, "NO_ITEMS"},
		{"negative fee", func(p *NewOrderParams) { p.ShippingFee = decimal.NewFromInt(-1) }, "INVALID_SHIPPING_FEE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(&p)
			_, err := NewOrder(p)
			require.Error(t, err)
			assert.Equal(t, tt.code, domainCode(err))
		})
	}
}

// ============================================
// Mutation Tests
// ============================================

func TestOrder_ReplaceItems(t *testing.T) {
	o := newEcommerceOrder(t, 0, newTestItem(t, "Cookie", 2, 100), newTestItem(t, "Brownie", 1, 120))
	assertDecimal(t, "320", o.Total)

	require.NoError(t, o.SetShippingFee(decimal.NewFromInt(20)))
	require.NoError(t, o.ReplaceItems([]*OrderItem{newTestItem(t, "Cookie", 1, 50)}))

	assertDecimal(t, "70", o.Total)
	require.Len(t, o.Items, 1)
	assert.Equal(t, o.ID, o.Items[0].OrderID)

	err := o.ReplaceItems(nil)
	assert.Equal(t, "NO_ITEMS", domainCode(err))
	assert.Len(t, o.Items, 1)
}

func TestOrder_SetShippingFee(t *testing.T) {
	o := newEcommerceOrder(t, 0, newTestItem(t, "Cookie", 1, 100))

	require.NoError(t, o.SetShippingFee(decimal.NewFromInt(3500)))
	assertDecimal(t, "3600", o.Total)

	err := o.SetShippingFee(decimal.NewFromInt(-1))
	assert.Equal(t, "INVALID_SHIPPING_FEE", domainCode(err))
	assertDecimal(t, "3600", o.Total)
}

func TestOrder_ReactivationKeepsTotal(t *testing.T) {
	o := newEcommerceOrder(t, 120, newTestItem(t, "Cookie", 1, 100), newTestItem(t, "Brownie", 2, 50))
	require.NoError(t, o.ChangeStatus(OrderStatusCancelled))
	before := o.Total

	require.NoError(t, o.ChangeStatus(OrderStatusPaid))
	assert.Equal(t, OrderStatusPaid, o.Status)
	assert.True(t, before.Equal(o.Total))
	assertDecimal(t, "320", o.Total)
}

func TestOrder_ChangeStatusRejectsUnknown(t *testing.T) {
	o := newEcommerceOrder(t, 0, newTestItem(t, "Cookie", 1, 100))
	err := o.ChangeStatus("shipped")
	assert.Equal(t, "INVALID_STATUS", domainCode(err))
	assert.Equal(t, OrderStatusPending, o.Status)
}

func TestOrder_ApplyPatch(t *testing.T) {
	t.Run("empty patch leaves fields untouched", func(t *testing.T) {
		o := newEcommerceOrder(t, 100, newTestItem(t, "Cookie", 1, 100))
		snapshot := *o

		require.NoError(t, o.ApplyPatch(Patch{}))
		assert.Equal(t, snapshot.CustomerName, o.CustomerName)
		assert.Equal(t, snapshot.PhoneNumber, o.PhoneNumber)
		assert.Equal(t, snapshot.Status, o.Status)
		assert.Equal(t, snapshot.InternalNotes, o.InternalNotes)
		assert.True(t, snapshot.ShippingFee.Equal(o.ShippingFee))
		assert.True(t, snapshot.Total.Equal(o.Total))
		assert.Equal(t, snapshot.ShippingDate, o.ShippingDate)
	})

	t.Run("present fields are applied", func(t *testing.T) {
		o := newEcommerceOrder(t, 0, newTestItem(t, "Cookie", 2, 100))
		name := "Beatriz"
		status := OrderStatusPaid
		notes := "call before delivery"
		fee := decimal.NewFromInt(50)

		require.NoError(t, o.ApplyPatch(Patch{
			CustomerName:  &name,
			Status:        &status,
			InternalNotes: &notes,
			ShippingFee:   &fee,
		}))
		assert.Equal(t, "Beatriz", o.CustomerName)
		assert.Equal(t, OrderStatusPaid, o.Status)
		assert.Equal(t, notes, o.InternalNotes)
		assertDecimal(t, "250", o.Total)
		assert.Equal(t, "+56911112222", o.PhoneNumber)
	})

	t.Run("blank customer rejected", func(t *testing.T) {
		o := newEcommerceOrder(t, 0, newTestItem(t, "Cookie", 1, 100))
		blank := " "
		err := o.ApplyPatch(Patch{CustomerName: &blank})
		assert.Equal(t, "INVALID_CUSTOMER", domainCode(err))
	})
}

func TestOrder_IsShippingDue(t *testing.T) {
	o := newEcommerceOrder(t, 0, newTestItem(t, "Cookie", 1, 100))
	before := time.Date(2024, 5, 9, 23, 0, 0, 0, time.UTC)
	sameDay := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	after := time.Date(2024, 5, 11, 8, 0, 0, 0, time.UTC)

	assert.False(t, o.IsShippingDue(sameDay), "pending orders are never due")

	require.NoError(t, o.ChangeStatus(OrderStatusPaid))
	assert.False(t, o.IsShippingDue(before))
	assert.True(t, o.IsShippingDue(sameDay))
	assert.True(t, o.IsShippingDue(after))

	require.NoError(t, o.ChangeStatus(OrderStatusCompleted))
	assert.False(t, o.IsShippingDue(after))
}

func TestPatch_IsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	notes := ""
	assert.False(t, Patch{InternalNotes: &notes}.IsEmpty())
}
