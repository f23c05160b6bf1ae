package report

import (
	"github.com/labakery/backend/internal/domain/finance"
	"github.com/labakery/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// FinancialSummary is the income statement for a date range
type FinancialSummary struct {
	Range              DateRange                                   `json:"range"`
	SalesByOrigin      map[order.Origin]decimal.Decimal            `json:"salesByOrigin"`
	TotalSales         decimal.Decimal                             `json:"totalSales"`
	PaidOrderCount     int                                         `json:"paidOrderCount"`
	ExpensesByCategory map[finance.ExpenseCategory]decimal.Decimal `json:"expensesByCategory"`
	ExpensesTotal      decimal.Decimal                             `json:"expensesTotal"`
	ShippingCosts      decimal.Decimal                             `json:"shippingCosts"`
	TotalOutflows      decimal.Decimal                             `json:"totalOutflows"`
	// NetTotal may be negative
	NetTotal decimal.Decimal `json:"netTotal"`
}

// BuildFinancialSummary aggregates paid orders created within r and expenses
// dated within r. Orders and expenses outside r are ignored, so callers may
// pass a superset.
func BuildFinancialSummary(orders []*order.Order, expenses []*finance.Expense, r DateRange) FinancialSummary {
	s := FinancialSummary{
		Range: r,
		SalesByOrigin: map[order.Origin]decimal.Decimal{
			order.OriginEcommerce: decimal.Zero,
			order.OriginPOS:       decimal.Zero,
			order.OriginManual:    decimal.Zero,
		},
		TotalSales:         decimal.Zero,
		ExpensesByCategory: make(map[finance.ExpenseCategory]decimal.Decimal, len(finance.AllExpenseCategories)),
		ExpensesTotal:      decimal.Zero,
		ShippingCosts:      decimal.Zero,
	}
	for _, c := range finance.AllExpenseCategories {
		s.ExpensesByCategory[c] = decimal.Zero
	}

	for _, o := range orders {
		if !o.IsPaid() || !r.Contains(o.CreatedAt) {
			continue
		}
		origin := o.Origin.Normalized()
		s.SalesByOrigin[origin] = s.SalesByOrigin[origin].Add(o.Total)
		s.TotalSales = s.TotalSales.Add(o.Total)
		s.ShippingCosts = s.ShippingCosts.Add(o.ShippingFee)
		s.PaidOrderCount++
	}

	for _, e := range expenses {
		if !r.ContainsDay(e.Date) {
			continue
		}
		s.ExpensesByCategory[e.Category] = s.ExpensesByCategory[e.Category].Add(e.Amount)
		s.ExpensesTotal = s.ExpensesTotal.Add(e.Amount)
	}

	s.TotalOutflows = s.ExpensesTotal.Add(s.ShippingCosts)
	s.NetTotal = s.TotalSales.Sub(s.TotalOutflows)
	return s
}
