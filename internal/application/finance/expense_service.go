package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/finance"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ExpenseService handles expense bookkeeping
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{expenseRepo: expenseRepo, logger: logger}
}

// Create records a new expense
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	expense, err := finance.NewExpense(date, req.Amount, finance.ExpenseCategory(req.Category), req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	logger.L(ctx, s.logger).Info("Expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("category", expense.Category.String()),
		zap.String("amount", expense.Amount.String()),
	)
	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID returns one expense
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List returns one page of expenses, most recent first
func (s *ExpenseService) List(ctx context.Context, filter ExpenseListFilter) (*shared.Paginated[ExpenseResponse], error) {
	listFilter := finance.ExpenseFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "date",
		},
		Category: finance.ExpenseCategory(filter.Category),
	}
	listFilter.Normalize()

	if listFilter.Category != "" && !listFilter.Category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category")
	}
	if filter.From != "" {
		from, err := parseDate(filter.From)
		if err != nil {
			return nil, err
		}
		listFilter.From = &from
	}
	if filter.To != "" {
		to, err := parseDate(filter.To)
		if err != nil {
			return nil, err
		}
		listFilter.To = &to
	}
	if listFilter.From != nil && listFilter.To != nil && listFilter.To.Before(*listFilter.From) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date must not be before start date")
	}

	expenses, total, err := s.expenseRepo.List(ctx, listFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = ToExpenseResponse(e)
	}
	page := shared.NewPaginated(responses, total, listFilter.Page, listFilter.PageSize)
	return &page, nil
}

// Update applies a partial update to an expense
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := finance.ExpensePatch{
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		patch.Date = &date
	}
	if req.Category != nil {
		category := finance.ExpenseCategory(*req.Category)
		patch.Category = &category
	}

	if err := expense.Update(patch); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.L(ctx, s.logger).Info("Expense deleted", zap.String("expense_id", id.String()))
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
	}
	return d, nil
}
