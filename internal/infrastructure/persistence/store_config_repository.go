package persistence

import (
	"context"
	"errors"

	"github.com/labakery/backend/internal/domain/settings"
	"github.com/labakery/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreConfigRepository implements settings.StoreConfigRepository using GORM
type GormStoreConfigRepository struct {
	db *gorm.DB
}

var _ settings.StoreConfigRepository = (*GormStoreConfigRepository)(nil)

// NewGormStoreConfigRepository creates a new GormStoreConfigRepository
func NewGormStoreConfigRepository(db *gorm.DB) *GormStoreConfigRepository {
	return &GormStoreConfigRepository{db: db}
}

// Get loads the singleton row, inserting the default one on first use
func (r *GormStoreConfigRepository) Get(ctx context.Context) (*settings.StoreConfig, error) {
	var model models.StoreConfigModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", settings.SingletonID).Error
	if err == nil {
		return model.ToDomain()
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cfg := settings.DefaultStoreConfig()
	if err := model.FromDomain(cfg); err != nil {
		return nil, err
	}
	// A concurrent first read may have inserted the row already.
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save upserts the singleton row
func (r *GormStoreConfigRepository) Save(ctx context.Context, cfg *settings.StoreConfig) error {
	cfg.ID = settings.SingletonID
	model := &models.StoreConfigModel{}
	if err := model.FromDomain(cfg); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"shipping_fee", "closed_dates", "updated_at"}),
		}).
		Create(model).Error
}
