package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/labakery/backend/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// StoreConfigModel is the persistence model for the settings singleton
type StoreConfigModel struct {
	ID          int             `gorm:"primaryKey;autoIncrement:false"`
	ShippingFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ClosedDates string          `gorm:"type:text;not null;default:'[]'"` // JSON array of YYYY-MM-DD
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StoreConfigModel) TableName() string {
	return "store_config"
}

// ToDomain converts the persistence model to a domain StoreConfig
func (m *StoreConfigModel) ToDomain() (*settings.StoreConfig, error) {
	dates := []string{}
	if m.ClosedDates != "" {
		if err := json.Unmarshal([]byte(m.ClosedDates), &dates); err != nil {
			return nil, fmt.Errorf("decode closed dates: %w", err)
		}
	}
	return &settings.StoreConfig{
		ID:          m.ID,
		ShippingFee: m.ShippingFee,
		ClosedDates: dates,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// FromDomain populates the persistence model from a domain StoreConfig
func (m *StoreConfigModel) FromDomain(c *settings.StoreConfig) error {
	dates := c.ClosedDates
	if dates == nil {
		dates = []string{}
	}
	encoded, err := json.Marshal(dates)
	if err != nil {
		return fmt.Errorf("encode closed dates: %w", err)
	}
	m.ID = c.ID
	m.ShippingFee = c.ShippingFee
	m.ClosedDates = string(encoded)
	m.UpdatedAt = c.UpdatedAt.UTC()
	return nil
}
