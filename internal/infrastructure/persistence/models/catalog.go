package models

import (
	"strings"

	"github.com/labakery/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Category    string          `gorm:"type:varchar(30);not null;index"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	Featured    bool            `gorm:"not null;default:false"`
	Channels    string          `gorm:"type:varchar(50);not null;default:''"` // comma separated, empty when hidden
	Seasonal    bool            `gorm:"not null;default:false"`
	SeasonKey   string          `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
// Unknown channel names are dropped.
func (m *ProductModel) ToDomain() *catalog.Product {
	channels := catalog.ChannelSet{}
	for _, name := range strings.Split(m.Channels, ",") {
		ch := catalog.Channel(strings.TrimSpace(name))
		if ch.IsValid() {
			channels = append(channels, ch)
		}
	}
	channels, _ = catalog.NewChannelSet(channels...)

	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		Category:          catalog.Category(m.Category),
		ImageURL:          m.ImageURL,
		Featured:          m.Featured,
		Channels:          channels,
		Seasonal:          m.Seasonal,
		SeasonKey:         m.SeasonKey,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Category = string(p.Category)
	m.ImageURL = p.ImageURL
	m.Featured = p.Featured
	m.Channels = strings.Join(p.Channels.Strings(), ",")
	m.Seasonal = p.Seasonal
	m.SeasonKey = p.SeasonKey
}
