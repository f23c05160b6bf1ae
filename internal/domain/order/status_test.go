package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, OrderStatus("PAID").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	// Every valid status is reachable from every other
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			assert.True(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
		assert.False(t, from.CanTransitionTo("shipped"))
	}
}

func TestOrderStatus_IsDeclaredTransition(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		declared bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPaid, OrderStatusCompleted, true},
		{OrderStatusCancelled, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusAbandoned, true},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusPaid, OrderStatusPaid, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.declared, tt.from.IsDeclaredTransition(tt.to))
		})
	}
}

func TestOrderStatus_IsReactivation(t *testing.T) {
	assert.True(t, OrderStatusCancelled.IsReactivation(OrderStatusPaid))
	assert.False(t, OrderStatusAbandoned.IsReactivation(OrderStatusPaid))
	assert.False(t, OrderStatusCancelled.IsReactivation(OrderStatusPending))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, OrderStatusPending, InitialStatus(OriginEcommerce))
	assert.Equal(t, OrderStatusPaid, InitialStatus(OriginPOS))
	assert.Equal(t, OrderStatusPaid, InitialStatus(OriginManual))
}

func TestOrigin_Normalized(t *testing.T) {
	assert.Equal(t, OriginEcommerce, Origin("").Normalized())
	assert.Equal(t, OriginPOS, OriginPOS.Normalized())
	assert.False(t, Origin("").IsValid())
}

func TestOriginFilter_IsValid(t *testing.T) {
	assert.True(t, OriginFilterWeb.IsValid())
	assert.True(t, OriginFilterAll.IsValid())
	assert.False(t, OriginFilter("ecommerce").IsValid())
}
