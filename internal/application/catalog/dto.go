package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" binding:"required,oneof=cookies brownies"`
	ImageURL    string          `json:"imageUrl" binding:"omitempty,max=1000"`
	Featured    bool            `json:"featured"`
	Channels    []string        `json:"channels" binding:"omitempty,dive,oneof=ecommerce pos"`
	Seasonal    bool            `json:"seasonal"`
	SeasonKey   string          `json:"seasonKey" binding:"max=100"`
}

// UpdateProductRequest represents a partial product update. An empty
// channels list hides the product.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category" binding:"omitempty,oneof=cookies brownies"`
	ImageURL    *string          `json:"imageUrl" binding:"omitempty,max=1000"`
	Featured    *bool            `json:"featured"`
	Channels    *[]string        `json:"channels"`
	Seasonal    *bool            `json:"seasonal"`
	SeasonKey   *string          `json:"seasonKey" binding:"omitempty,max=100"`
}

// PublicProductFilter holds the storefront listing query
type PublicProductFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=cookies brownies"`
	Featured *bool  `form:"featured"`
}

// AdminProductFilter holds the back-office listing query
type AdminProductFilter struct {
	Channel       string `form:"channel" binding:"omitempty,oneof=ecommerce pos"`
	Category      string `form:"category" binding:"omitempty,oneof=cookies brownies"`
	Featured      *bool  `form:"featured"`
	IncludeHidden bool   `form:"includeHidden"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	Featured    bool            `json:"featured"`
	Channels    []string        `json:"channels"`
	Hidden      bool            `json:"hidden"`
	Seasonal    bool            `json:"seasonal"`
	SeasonKey   string          `json:"seasonKey,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// UploadImageInput is a product image received from the back-office
type UploadImageInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadImageResponse carries the public URL of a stored image
type UploadImageResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category.String(),
		ImageURL:    p.ImageURL,
		Featured:    p.Featured,
		Channels:    p.Channels.Strings(),
		Hidden:      p.IsHidden(),
		Seasonal:    p.Seasonal,
		SeasonKey:   p.SeasonKey,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}

func toChannels(values []string) []catalog.Channel {
	channels := make([]catalog.Channel, len(values))
	for i, v := range values {
		channels[i] = catalog.Channel(v)
	}
	return channels
}
