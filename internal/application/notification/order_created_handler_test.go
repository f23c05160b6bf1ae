package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/order"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

func newCreatedEvent(t *testing.T, currency string) *order.OrderCreatedEvent {
	t.Helper()
	cookie, err := order.NewOrderItem(uuid.New(), "Chocolate chip", 6, decimal.NewFromInt(1500))
	require.NoError(t, err)
	brownie, err := order.NewOrderItem(uuid.New(), "Brownie", 4, decimal.NewFromInt(2500))
	require.NoError(t, err)

	shipping := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(order.NewOrderParams{
		Origin:        order.OriginEcommerce,
		CustomerName:  "Ana",
		PhoneNumber:   "+56911111111",
		PaymentMethod: "transfer",
		ShippingFee:   decimal.NewFromInt(3000),
		ShippingDate:  &shipping,
		Notes:         "Sin nueces",
		Items:         []*order.OrderItem{cookie, brownie},
	})
	require.NoError(t, err)

	event := order.NewOrderCreatedEvent(o)
	event.Currency = currency
	return event
}

func TestOrderCreatedHandler_Format(t *testing.T) {
	h := NewOrderCreatedHandler(NewDispatcher(nil, nil, nil), language.English, time.UTC, zap.NewNop())
	event := newCreatedEvent(t, "CLP")

	text := h.Format(event)

	assert.Contains(t, text, "Nuevo pedido "+event.OrderNumber)
	assert.Contains(t, text, "Cliente: Ana")
	assert.Contains(t, text, "Teléfono: +56911111111")
	assert.Contains(t, text, "Entrega: 2024-03-06")
	assert.Contains(t, text, "• 6 × Chocolate chip = 9,000 CLP")
	assert.Contains(t, text, "• 4 × Brownie = 10,000 CLP")
	assert.Contains(t, text, "Envío: 3,000 CLP")
	assert.Contains(t, text, "Total: 22,000 CLP")
	assert.Contains(t, text, "Notas: Sin nueces")
}

func TestOrderCreatedHandler_FormatWithCents(t *testing.T) {
	h := NewOrderCreatedHandler(NewDispatcher(nil, nil, nil), language.English, time.UTC, nil)
	event := newCreatedEvent(t, "USD")
	event.ShippingFee = decimal.RequireFromString("2.5")

	assert.Contains(t, h.Format(event), "Envío: 2.50 USD")
}

func TestOrderCreatedHandler_Handle(t *testing.T) {
	event := newCreatedEvent(t, "CLP")

	sender := new(MockSender)
	sender.On("Send", mock.Anything, "staff", mock.MatchedBy(func(text string) bool {
		return len(text) > 0
	})).Return(errors.New("telegram down")).Once()

	h := NewOrderCreatedHandler(NewDispatcher(sender, []string{"staff"}, nil), language.English, time.UTC, zap.NewNop())

	assert.Equal(t, []string{order.EventTypeOrderCreated}, h.EventTypes())
	assert.NoError(t, h.Handle(context.Background(), event), "delivery failures are not returned")
	sender.AssertExpectations(t)
}

func TestOrderCreatedHandler_Handle_WrongEvent(t *testing.T) {
	h := NewOrderCreatedHandler(NewDispatcher(nil, nil, nil), language.English, time.UTC, zap.NewNop())

	other := shared.NewBaseDomainEvent("ProductUpdated", "Product", uuid.New())
	assert.Error(t, h.Handle(context.Background(), &other))
}

func TestOrderCreatedHandler_NotifySample(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, "staff", mock.Anything).Return(nil).Once()
	h := NewOrderCreatedHandler(NewDispatcher(sender, []string{"staff"}, nil), language.English, time.UTC, zap.NewNop())

	sample := SampleOrderCreatedEvent("CLP", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))
	result := h.Notify(context.Background(), sample)

	assert.Equal(t, StatusSent, result.Status)
	assert.Equal(t, 1, result.Sent)
	assert.True(t, sample.Total.Equal(decimal.NewFromInt(22000)))
	sender.AssertExpectations(t)
}

func TestOrderCreatedHandler_Handle_SkipsInPersonSales(t *testing.T) {
	sender := new(MockSender)
	h := NewOrderCreatedHandler(NewDispatcher(sender, []string{"staff"}, nil), language.English, time.UTC, zap.NewNop())

	event := newCreatedEvent(t, "CLP")
	event.Origin = order.OriginPOS

	assert.NoError(t, h.Handle(context.Background(), event))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}
