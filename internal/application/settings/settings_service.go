package settings

import (
	"context"
	"time"

	"github.com/labakery/backend/internal/domain/settings"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UpdateStoreConfigRequest is a partial update of the store settings
type UpdateStoreConfigRequest struct {
	ShippingFee *decimal.Decimal `json:"shippingFee"`
	ClosedDates *[]string        `json:"closedDates"`
}

// StoreConfigResponse represents the store settings in API responses
type StoreConfigResponse struct {
	ShippingFee decimal.Decimal `json:"shippingFee"`
	ClosedDates []string        `json:"closedDates"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToStoreConfigResponse converts the domain StoreConfig
func ToStoreConfigResponse(cfg *settings.StoreConfig) StoreConfigResponse {
	dates := cfg.ClosedDates
	if dates == nil {
		dates = []string{}
	}
	return StoreConfigResponse{
		ShippingFee: cfg.ShippingFee,
		ClosedDates: dates,
		UpdatedAt:   cfg.UpdatedAt,
	}
}

// SettingsService reads and edits the store-wide settings
type SettingsService struct {
	repo   settings.StoreConfigRepository
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo settings.StoreConfigRepository, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the current settings
func (s *SettingsService) Get(ctx context.Context) (*StoreConfigResponse, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	response := ToStoreConfigResponse(cfg)
	return &response, nil
}

// Update applies the present fields and saves the settings
func (s *SettingsService) Update(ctx context.Context, req UpdateStoreConfigRequest) (*StoreConfigResponse, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(settings.StoreConfigPatch{
		ShippingFee: req.ShippingFee,
		ClosedDates: req.ClosedDates,
	}); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}

	logger.L(ctx, s.logger).Info("Store settings updated",
		zap.String("shipping_fee", cfg.ShippingFee.String()),
		zap.Int("closed_dates", len(cfg.ClosedDates)),
	)
	response := ToStoreConfigResponse(cfg)
	return &response, nil
}
