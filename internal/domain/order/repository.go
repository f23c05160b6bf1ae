package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/shared"
)

// OriginFilter selects orders by channel in listings
type OriginFilter string

const (
	OriginFilterAll    OriginFilter = ""
	OriginFilterWeb    OriginFilter = "web" // ecommerce plus legacy rows with no origin
	OriginFilterPOS    OriginFilter = "pos"
	OriginFilterManual OriginFilter = "manual"
)

// IsValid checks if the origin filter is known
func (f OriginFilter) IsValid() bool {
	switch f {
	case OriginFilterAll, OriginFilterWeb, OriginFilterPOS, OriginFilterManual:
		return true
	}
	return false
}

// ListFilter narrows an order listing
type ListFilter struct {
	shared.Filter
	Origin OriginFilter
	Status OrderStatus
}

// OrderRepository persists Order aggregates
type OrderRepository interface {
	// Create inserts the header and all items atomically
	Create(ctx context.Context, o *Order) error

	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// UpdatePartial applies header-only changes; items are left untouched
	UpdatePartial(ctx context.Context, id uuid.UUID, patch Patch) (*Order, error)

	// UpdateWithItems applies the patch and replaces every item in one
	// transaction, recomputing the total from the new items
	UpdateWithItems(ctx context.Context, id uuid.UUID, patch Patch, items []*OrderItem) (*Order, error)

	// List returns one page of orders, newest first, and the total match count
	List(ctx context.Context, filter ListFilter) ([]*Order, int64, error)

	// FindCreatedBetween returns orders with created_at in [start, end],
	// optionally restricted to the given statuses
	FindCreatedBetween(ctx context.Context, start, end time.Time, statuses ...OrderStatus) ([]*Order, error)
}
