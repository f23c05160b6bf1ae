package catalog

import (
	"slices"
	"strings"

	"github.com/labakery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category groups products for the storefront and sales charts
type Category string

const (
	CategoryCookies  Category = "cookies"
	CategoryBrownies Category = "brownies"
)

// AllCategories lists every product category
var AllCategories = []Category{CategoryCookies, CategoryBrownies}

// IsValid checks if the category is known
func (c Category) IsValid() bool {
	return slices.Contains(AllCategories, c)
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Product is a sellable bakery item
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	Price       decimal.Decimal
	Category    Category
	ImageURL    string
	Featured    bool
	Channels    ChannelSet
	Seasonal    bool
	SeasonKey   string
}

// NewProductParams carries the fields of a new product
type NewProductParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    Category
	ImageURL    string
	Featured    bool
	Channels    []Channel
	Seasonal    bool
	SeasonKey   string
}

// NewProduct validates the params and creates a product
func NewProduct(p NewProductParams) (*Product, error) {
	name := strings.TrimSpace(p.Name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if p.Price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if !p.Category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category must be cookies or brownies")
	}
	channels, err := NewChannelSet(p.Channels...)
	if err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       strings.TrimSpace(p.Description),
		Price:             p.Price,
		Category:          p.Category,
		ImageURL:          strings.TrimSpace(p.ImageURL),
		Featured:          p.Featured,
		Channels:          channels,
	}
	if err := product.setSeason(p.Seasonal, p.SeasonKey); err != nil {
		return nil, err
	}

	return product, nil
}

// ProductPatch holds an optional value per editable field. A non-nil
// Channels pointing at an empty slice hides the product.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *Category
	ImageURL    *string
	Featured    *bool
	Channels    *[]Channel
	Seasonal    *bool
	SeasonKey   *string
}

// Update applies the present fields of the patch
func (p *Product) Update(patch ProductPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateProductName(name); err != nil {
			return err
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
		}
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		if !patch.Category.IsValid() {
			return shared.NewDomainError("INVALID_CATEGORY", "Category must be cookies or brownies")
		}
		p.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.Channels != nil {
		channels, err := NewChannelSet(*patch.Channels...)
		if err != nil {
			return err
		}
		p.Channels = channels
	}
	if patch.Seasonal != nil || patch.SeasonKey != nil {
		seasonal := p.Seasonal
		if patch.Seasonal != nil {
			seasonal = *patch.Seasonal
		}
		key := p.SeasonKey
		if patch.SeasonKey != nil {
			key = *patch.SeasonKey
		}
		if err := p.setSeason(seasonal, key); err != nil {
			return err
		}
	}

	p.Touch()
	p.IncrementVersion()
	return nil
}

// Hide removes the product from every channel
func (p *Product) Hide() {
	p.Channels = ChannelSet{}
	p.Touch()
}

// IsHidden reports whether the product is offered on no channel
func (p *Product) IsHidden() bool {
	return p.Channels.IsEmpty()
}

// AvailableOn reports whether the product is offered on the channel
func (p *Product) AvailableOn(ch Channel) bool {
	return p.Channels.Has(ch)
}

// setSeason keeps the season key only for seasonal products
func (p *Product) setSeason(seasonal bool, key string) error {
	key = strings.TrimSpace(key)
	if !seasonal {
		key = ""
	} else if key == "" {
		return shared.NewDomainError("INVALID_SEASON_KEY", "Seasonal products need a season key")
	}
	p.Seasonal = seasonal
	p.SeasonKey = key
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
