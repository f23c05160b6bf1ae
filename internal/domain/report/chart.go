package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/catalog"
	"github.com/labakery/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CategorySales splits revenue between the two product categories
type CategorySales struct {
	Cookies  decimal.Decimal `json:"cookies"`
	Brownies decimal.Decimal `json:"brownies"`
}

// MonthlyCategorySales is one month of the dashboard chart
type MonthlyCategorySales struct {
	Month    string                        `json:"month"` // YYYY-MM
	ByOrigin map[order.Origin]CategorySales `json:"byOrigin"`
}

// BuildMonthlyChart buckets the line totals of paid orders created in year by
// month, origin and product category. Lines whose product has no known
// category are left out. Months are read in loc.
func BuildMonthlyChart(orders []*order.Order, categories map[uuid.UUID]catalog.Category, year int, loc *time.Location) []MonthlyCategorySales {
	if loc == nil {
		loc = time.UTC
	}

	months := make([]MonthlyCategorySales, 12)
	for i := range months {
		months[i] = MonthlyCategorySales{
			Month: fmt.Sprintf("%04d-%02d", year, i+1),
			ByOrigin: map[order.Origin]CategorySales{
				order.OriginEcommerce: zeroCategorySales(),
				order.OriginPOS:       zeroCategorySales(),
				order.OriginManual:    zeroCategorySales(),
			},
		}
	}

	for _, o := range orders {
		if !o.IsPaid() {
			continue
		}
		created := o.CreatedAt.In(loc)
		if created.Year() != year {
			continue
		}
		bucket := &months[created.Month()-1]
		origin := o.Origin.Normalized()
		sales := bucket.ByOrigin[origin]

		for _, item := range o.Items {
			switch categories[item.ProductID] {
			case catalog.CategoryCookies:
				sales.Cookies = sales.Cookies.Add(item.LineTotal)
			case catalog.CategoryBrownies:
				sales.Brownies = sales.Brownies.Add(item.LineTotal)
			}
		}
		bucket.ByOrigin[origin] = sales
	}
	return months
}

func zeroCategorySales() CategorySales {
	return CategorySales{Cookies: decimal.Zero, Brownies: decimal.Zero}
}
