package finance

import (
	"strings"
	"time"

	"github.com/labakery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category of an expense
type ExpenseCategory string

const (
	ExpenseCategoryAdvertising               ExpenseCategory = "advertising"
	ExpenseCategorySpecializedBakingSupplies ExpenseCategory = "specialized_baking_supplies"
	ExpenseCategoryRawMaterials              ExpenseCategory = "raw_materials"
	ExpenseCategoryShipping                  ExpenseCategory = "shipping"
)

// AllExpenseCategories lists every category in report order
var AllExpenseCategories = []ExpenseCategory{
	ExpenseCategoryAdvertising,
	ExpenseCategorySpecializedBakingSupplies,
	ExpenseCategoryRawMaterials,
	ExpenseCategoryShipping,
}

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryAdvertising, ExpenseCategorySpecializedBakingSupplies,
		ExpenseCategoryRawMaterials, ExpenseCategoryShipping:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the category
func (c ExpenseCategory) DisplayName() string {
	switch c {
	case ExpenseCategoryAdvertising:
		return "Publicidad"
	case ExpenseCategorySpecializedBakingSupplies:
		return "Insumos de repostería"
	case ExpenseCategoryRawMaterials:
		return "Materias primas"
	case ExpenseCategoryShipping:
		return "Envíos"
	default:
		return string(c)
	}
}

const maxDescriptionLength = 500

// Expense is money spent running the bakery
type Expense struct {
	shared.BaseAggregateRoot
	Date        time.Time
	Amount      decimal.Decimal
	Category    ExpenseCategory
	Description string
}

// NewExpense creates a validated expense. Date is truncated to the calendar day.
func NewExpense(date time.Time, amount decimal.Decimal, category ExpenseCategory, description string) (*Expense, error) {
	e := &Expense{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := e.set(date, amount, category, description); err != nil {
		return nil, err
	}
	return e, nil
}

// ExpensePatch holds an optional value per editable field
type ExpensePatch struct {
	Date        *time.Time
	Amount      *decimal.Decimal
	Category    *ExpenseCategory
	Description *string
}

// Update applies the present fields of the patch
func (e *Expense) Update(patch ExpensePatch) error {
	date, amount, category, description := e.Date, e.Amount, e.Category, e.Description
	if patch.Date != nil {
		date = *patch.Date
	}
	if patch.Amount != nil {
		amount = *patch.Amount
	}
	if patch.Category != nil {
		category = *patch.Category
	}
	if patch.Description != nil {
		description = *patch.Description
	}
	if err := e.set(date, amount, category, description); err != nil {
		return err
	}
	e.Touch()
	e.IncrementVersion()
	return nil
}

func (e *Expense) set(date time.Time, amount decimal.Decimal, category ExpenseCategory, description string) error {
	description = strings.TrimSpace(description)
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > maxDescriptionLength {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	e.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	e.Amount = amount
	e.Category = category
	e.Description = description
	return nil
}
