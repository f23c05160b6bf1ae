package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/shared"
)

// ExpenseFilter narrows an expense listing
type ExpenseFilter struct {
	shared.Filter
	Category ExpenseCategory
	From     *time.Time
	To       *time.Time
}

// ExpenseRepository persists expenses
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	// List returns one page of expenses, most recent date first, and the total match count
	List(ctx context.Context, filter ExpenseFilter) ([]*Expense, int64, error)
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByDateRange returns every expense dated within [from, to]
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*Expense, error)
}
