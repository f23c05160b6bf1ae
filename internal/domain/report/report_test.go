package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/catalog"
	"github.com/labakery/backend/internal/domain/finance"
	"github.com/labakery/backend/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, expected int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(got), "expected %d, got %s", expected, got.String())
}

// testOrder builds a single-line order without shipping whose total is total
func testOrder(t *testing.T, origin order.Origin, status order.OrderStatus, total int64, created time.Time) *order.Order {
	t.Helper()
	item, err := order.NewOrderItem(uuid.New(), "Cookie", 1, dec(total))
	require.NoError(t, err)
	date := created
	o, err := order.NewOrder(order.NewOrderParams{
		Origin:        origin,
		CustomerName:  "Ana",
		PhoneNumber:   "1",
		PaymentMethod: "transfer",
		ShippingDate:  &date,
		Items:         []*order.OrderItem{item},
	})
	require.NoError(t, err)
	o.Status = status
	o.CreatedAt = created
	return o
}

func withShipping(t *testing.T, o *order.Order, fee int64) *order.Order {
	t.Helper()
	require.NoError(t, o.SetShippingFee(dec(fee)))
	return o
}

func testExpense(t *testing.T, category finance.ExpenseCategory, amount int64, date time.Time) *finance.Expense {
	t.Helper()
	e, err := finance.NewExpense(date, dec(amount), category, "test expense")
	require.NoError(t, err)
	return e
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// ============================================
// DateRange Tests
// ============================================

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange(day(2024, 3, 1), day(2024, 3, 31), time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999000000, time.UTC), r.End)
	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.End.Add(time.Millisecond)))
	assert.False(t, r.Contains(r.Start.Add(-time.Nanosecond)))

	_, err = NewDateRange(day(2024, 3, 2), day(2024, 3, 1), time.UTC)
	assert.Error(t, err)
}

func TestDateRange_ContainsDayIgnoresOffset(t *testing.T) {
	santiago := time.FixedZone("CLT", -3*3600)
	r, err := NewDateRange(day(2024, 3, 15), day(2024, 3, 15), santiago)
	require.NoError(t, err)

	// expense dates are stored as UTC midnights
	assert.True(t, r.ContainsDay(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.ContainsDay(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)))
}

// ============================================
// FinancialSummary Tests
// ============================================

func TestBuildFinancialSummary_Sales(t *testing.T) {
	r, err := NewDateRange(day(2024, 3, 1), day(2024, 3, 31), time.UTC)
	require.NoError(t, err)

	orders := []*order.Order{
		testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 100, day(2024, 3, 2)),
		testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 200, day(2024, 3, 10)),
		testOrder(t, order.OriginPOS, order.OrderStatusPaid, 50, day(2024, 3, 31)),
		testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 999, day(2024, 4, 1)),
		testOrder(t, order.OriginPOS, order.OrderStatusPending, 70, day(2024, 3, 5)),
		testOrder(t, order.OriginPOS, order.OrderStatusCancelled, 80, day(2024, 3, 6)),
	}

	s := BuildFinancialSummary(orders, nil, r)

	assertDecimal(t, 350, s.TotalSales)
	assertDecimal(t, 300, s.SalesByOrigin[order.OriginEcommerce])
	assertDecimal(t, 50, s.SalesByOrigin[order.OriginPOS])
	assertDecimal(t, 0, s.SalesByOrigin[order.OriginManual])
	assert.Equal(t, 3, s.PaidOrderCount)
}

func TestBuildFinancialSummary_LegacyOriginCountsAsEcommerce(t *testing.T) {
	r, err := NewDateRange(day(2024, 3, 1), day(2024, 3, 31), time.UTC)
	require.NoError(t, err)

	legacy := testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 40, day(2024, 3, 3))
	legacy.Origin = ""

	s := BuildFinancialSummary([]*order.Order{legacy}, nil, r)
	assertDecimal(t, 40, s.SalesByOrigin[order.OriginEcommerce])
	_, hasBlank := s.SalesByOrigin[""]
	assert.False(t, hasBlank)
}

func TestBuildFinancialSummary_Outflows(t *testing.T) {
	r, err := NewDateRange(day(2024, 3, 1), day(2024, 3, 31), time.UTC)
	require.NoError(t, err)

	orders := []*order.Order{
		withShipping(t, testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 100, day(2024, 3, 2)), 25),
		withShipping(t, testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 200, day(2024, 3, 3)), 15),
		withShipping(t, testOrder(t, order.OriginEcommerce, order.OrderStatusPending, 200, day(2024, 3, 3)), 99),
	}
	expenses := []*finance.Expense{
		testExpense(t, finance.ExpenseCategoryAdvertising, 30, day(2024, 3, 4)),
		testExpense(t, finance.ExpenseCategoryRawMaterials, 20, day(2024, 3, 31)),
		testExpense(t, finance.ExpenseCategoryShipping, 500, day(2024, 2, 29)),
	}

	s := BuildFinancialSummary(orders, expenses, r)

	assertDecimal(t, 40, s.ShippingCosts)
	assertDecimal(t, 50, s.ExpensesTotal)
	assertDecimal(t, 90, s.TotalOutflows)
	assert.True(t, s.NetTotal.Equal(s.TotalSales.Sub(dec(90))))
	assertDecimal(t, 30, s.ExpensesByCategory[finance.ExpenseCategoryAdvertising])
	assertDecimal(t, 20, s.ExpensesByCategory[finance.ExpenseCategoryRawMaterials])
	assertDecimal(t, 0, s.ExpensesByCategory[finance.ExpenseCategoryShipping])
	assert.Len(t, s.ExpensesByCategory, 4)
}

func TestBuildFinancialSummary_NegativeNet(t *testing.T) {
	r, err := NewDateRange(day(2024, 3, 1), day(2024, 3, 31), time.UTC)
	require.NoError(t, err)

	expenses := []*finance.Expense{testExpense(t, finance.ExpenseCategoryAdvertising, 30, day(2024, 3, 4))}
	s := BuildFinancialSummary(nil, expenses, r)

	assertDecimal(t, -30, s.NetTotal)
}

// ============================================
// Dashboard Tests
// ============================================

func TestBuildDashboard(t *testing.T) {
	// Wednesday 2024-05-15 15:00 UTC; the week started Monday 2024-05-13
	now := time.Date(2024, 5, 15, 15, 0, 0, 0, time.UTC)

	orders := []*order.Order{
		testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 100, time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)),
		testOrder(t, order.OriginPOS, order.OrderStatusPaid, 40, time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)),
		testOrder(t, order.OriginPOS, order.OrderStatusPaid, 60, time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC)),
		testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 300, time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)),
		testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 999, time.Date(2024, 4, 30, 10, 0, 0, 0, time.UTC)),
		testOrder(t, order.OriginEcommerce, order.OrderStatusPending, 70, time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)),
		testOrder(t, order.OriginEcommerce, order.OrderStatusPending, 11, time.Date(2024, 4, 3, 10, 0, 0, 0, time.UTC)),
		testOrder(t, order.OriginEcommerce, order.OrderStatusCancelled, 20, time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)),
		testOrder(t, order.OriginEcommerce, order.OrderStatusAbandoned, 30, time.Date(2024, 5, 5, 10, 0, 0, 0, time.UTC)),
	}

	d := BuildDashboard(orders, now)

	assertDecimal(t, 100, d.Today.Ecommerce)
	assertDecimal(t, 40, d.Today.POS)
	assertDecimal(t, 140, d.Today.Total)
	assert.Equal(t, 2, d.Today.OrderCount)

	assertDecimal(t, 200, d.Week.Total)
	assertDecimal(t, 100, d.Week.POS)

	assertDecimal(t, 500, d.Month.Total)
	assertDecimal(t, 400, d.Month.Ecommerce)

	assert.Equal(t, 1, d.Pending.Count)
	assertDecimal(t, 70, d.Pending.Total)
	assert.Equal(t, 2, d.Cancelled.Count)
	assertDecimal(t, 50, d.Cancelled.Total)
}

func TestEarliestDashboardStart(t *testing.T) {
	// Friday 2024-03-01: the week began Monday 2024-02-26
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC), EarliestDashboardStart(now))

	mid := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), EarliestDashboardStart(mid))
}

// ============================================
// Chart Tests
// ============================================

func TestBuildMonthlyChart(t *testing.T) {
	cookieID, brownieID, unknownID := uuid.New(), uuid.New(), uuid.New()
	categories := map[uuid.UUID]catalog.Category{
		cookieID:  catalog.CategoryCookies,
		brownieID: catalog.CategoryBrownies,
	}

	mkItem := func(id uuid.UUID, qty int, price int64) *order.OrderItem {
		item, err := order.NewOrderItem(id, "x", qty, dec(price))
		require.NoError(t, err)
		return item
	}

	o1 := testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 1, day(2024, 1, 10))
	require.NoError(t, o1.ReplaceItems([]*order.OrderItem{mkItem(cookieID, 2, 100), mkItem(brownieID, 1, 150), mkItem(unknownID, 1, 999)}))

	o2 := testOrder(t, order.OriginPOS, order.OrderStatusPaid, 1, day(2024, 1, 20))
	require.NoError(t, o2.ReplaceItems([]*order.OrderItem{mkItem(cookieID, 1, 100)}))

	o3 := testOrder(t, order.OriginPOS, order.OrderStatusPending, 1, day(2024, 1, 21))
	require.NoError(t, o3.ReplaceItems([]*order.OrderItem{mkItem(cookieID, 5, 100)}))

	o4 := testOrder(t, order.OriginEcommerce, order.OrderStatusPaid, 1, day(2023, 12, 31))
	require.NoError(t, o4.ReplaceItems([]*order.OrderItem{mkItem(cookieID, 5, 100)}))

	chart := BuildMonthlyChart([]*order.Order{o1, o2, o3, o4}, categories, 2024, time.UTC)

	require.Len(t, chart, 12)
	assert.Equal(t, "2024-01", chart[0].Month)
	assert.Equal(t, "2024-12", chart[11].Month)

	jan := chart[0].ByOrigin
	assertDecimal(t, 200, jan[order.OriginEcommerce].Cookies)
	assertDecimal(t, 150, jan[order.OriginEcommerce].Brownies)
	assertDecimal(t, 100, jan[order.OriginPOS].Cookies)
	assertDecimal(t, 0, jan[order.OriginManual].Cookies)
	assertDecimal(t, 0, chart[1].ByOrigin[order.OriginEcommerce].Cookies)
}
