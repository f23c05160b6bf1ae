package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Date        string          `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" binding:"required,oneof=advertising specialized_baking_supplies raw_materials shipping"`
	Description string          `json:"description" binding:"required,min=1,max=500"`
}

// UpdateExpenseRequest represents a partial expense update
type UpdateExpenseRequest struct {
	Date        *string          `json:"date"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category" binding:"omitempty,oneof=advertising specialized_baking_supplies raw_materials shipping"`
	Description *string          `json:"description" binding:"omitempty,min=1,max=500"`
}

// ExpenseListFilter holds the expense listing query
type ExpenseListFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=advertising specialized_baking_supplies raw_materials shipping"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID           uuid.UUID       `json:"id"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	CategoryName string          `json:"categoryName"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToExpenseResponse converts a domain Expense to ExpenseResponse
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID,
		Date:         e.Date.Format(dateLayout),
		Amount:       e.Amount,
		Category:     e.Category.String(),
		CategoryName: e.Category.DisplayName(),
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
