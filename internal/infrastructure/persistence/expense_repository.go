package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/finance"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Create inserts an expense
func (r *GormExpenseRepository) Create(ctx context.Context, expense *finance.Expense) error {
	model := &models.ExpenseModel{}
	model.FromDomain(expense)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds an expense by ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns one page of expenses and the total number of matches
func (r *GormExpenseRepository) List(ctx context.Context, filter finance.ExpenseFilter) ([]*finance.Expense, int64, error) {
	filter.Normalize()
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			db = db.Where("category = ?", string(filter.Category))
		}
		if filter.From != nil {
			db = db.Where("date >= ?", dayStart(*filter.From))
		}
		if filter.To != nil {
			db = db.Where("date <= ?", dayStart(*filter.To))
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "created_at" {
		// Listings default to the expense date rather than entry time.
		orderBy = "date"
	}

	var rows []models.ExpenseModel
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order(orderClause(orderBy, filter.OrderDir, ExpenseSortFields, "date")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainExpenses(rows), total, nil
}

// Update saves every column of the expense
func (r *GormExpenseRepository) Update(ctx context.Context, expense *finance.Expense) error {
	model := &models.ExpenseModel{}
	model.FromDomain(expense)

	result := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("id = ?", expense.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByDateRange returns every expense dated within [from, to] by calendar day
func (r *GormExpenseRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*finance.Expense, error) {
	var rows []models.ExpenseModel
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", dayStart(from), dayStart(to)).
		Order("date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainExpenses(rows), nil
}

// dayStart maps a point in time to its calendar day at UTC midnight, the way
// expense dates are stored
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toDomainExpenses(rows []models.ExpenseModel) []*finance.Expense {
	out := make([]*finance.Expense, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}
