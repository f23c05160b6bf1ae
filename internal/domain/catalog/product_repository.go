package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductFilter narrows a product listing
type ProductFilter struct {
	// Channel keeps only products offered on the channel
	Channel Channel
	// Category keeps only products of the category
	Category Category
	// Featured, when set, keeps only products with that featured flag
	Featured *bool
	// IncludeHidden also returns products offered on no channel
	IncludeHidden bool
}

// ProductRepository persists products
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDs returns the products that exist among ids, in no particular order
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	// Delete removes the product row permanently
	Delete(ctx context.Context, id uuid.UUID) error
}
