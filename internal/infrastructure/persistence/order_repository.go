package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/order"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// ErrConcurrentModification is returned when an order changed between load and save
var ErrConcurrentModification = shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another request")

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

// Create inserts the header and all items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := &models.OrderModel{}
	model.FromDomain(o)
	items := model.Items
	model.Items = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.findOne(r.db.WithContext(ctx), "id = ?", id)
}

// FindByOrderNumber finds an order by its public number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	return r.findOne(r.db.WithContext(ctx), "order_number = ?", orderNumber)
}

func (r *GormOrderRepository) findOne(db *gorm.DB, query string, args ...any) (*order.Order, error) {
	var model models.OrderModel
	if err := preloadItems(db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// UpdatePartial applies header changes; a fee change recomputes the total
// against the stored items
func (r *GormOrderRepository) UpdatePartial(ctx context.Context, id uuid.UUID, patch order.Patch) (*order.Order, error) {
	var updated *order.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := r.findOne(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if err := o.ApplyPatch(patch); err != nil {
			return err
		}
		if err := r.saveHeader(tx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateWithItems replaces every item and applies the patch in one transaction.
// The total is recomputed from the new items and the resulting fee.
func (r *GormOrderRepository) UpdateWithItems(ctx context.Context, id uuid.UUID, patch order.Patch, items []*order.OrderItem) (*order.Order, error) {
	var updated *order.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := r.findOne(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if err := o.ReplaceItems(items); err != nil {
			return err
		}
		if err := o.ApplyPatch(patch); err != nil {
			return err
		}
		if err := r.saveHeader(tx, o); err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		rows := models.OrderItemModelsFromDomain(o.ID, o.Items)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// saveHeader writes the editable header columns guarded by the loaded version
func (r *GormOrderRepository) saveHeader(tx *gorm.DB, o *order.Order) error {
	loadedVersion := o.Version
	o.IncrementVersion()

	model := &models.OrderModel{}
	model.FromDomain(o)

	result := tx.Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", o.ID, loadedVersion).
		Updates(model.HeaderColumns())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentModification
	}
	return nil
}

// List returns one page of orders and the total number of matches
func (r *GormOrderRepository) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, int64, error) {
	filter.Normalize()
	scope := orderListScope(filter)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	err := preloadItems(r.db.WithContext(ctx)).
		Scopes(scope).
		Order(orderClause(filter.OrderBy, filter.OrderDir, OrderSortFields, "created_at")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return toDomainOrders(rows), total, nil
}

// orderListScope applies the origin and status filters. The web channel also
// matches legacy rows stored without an origin.
func orderListScope(filter order.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch filter.Origin {
		case order.OriginFilterWeb:
			db = db.Where("(origin = ? OR origin IS NULL)", string(order.OriginEcommerce))
		case order.OriginFilterPOS:
			db = db.Where("origin = ?", string(order.OriginPOS))
		case order.OriginFilterManual:
			db = db.Where("origin = ?", string(order.OriginManual))
		}
		if filter.Status != "" {
			db = db.Where("status = ?", string(filter.Status))
		}
		return db
	}
}

// FindCreatedBetween returns orders created in [start, end], oldest first
func (r *GormOrderRepository) FindCreatedBetween(ctx context.Context, start, end time.Time, statuses ...order.OrderStatus) ([]*order.Order, error) {
	query := preloadItems(r.db.WithContext(ctx)).
		Where("created_at >= ? AND created_at <= ?", start.UTC(), end.UTC())
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		query = query.Where("status IN ?", names)
	}

	var rows []models.OrderModel
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

func toDomainOrders(rows []models.OrderModel) []*order.Order {
	out := make([]*order.Order, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}
