package report

import (
	"time"

	"github.com/labakery/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// ChannelSales is paid revenue in a period split by origin
type ChannelSales struct {
	From       time.Time       `json:"from"`
	Ecommerce  decimal.Decimal `json:"ecommerce"`
	POS        decimal.Decimal `json:"pos"`
	Manual     decimal.Decimal `json:"manual"`
	Total      decimal.Decimal `json:"total"`
	OrderCount int             `json:"orderCount"`
}

func (c *ChannelSales) add(o *order.Order) {
	switch o.Origin.Normalized() {
	case order.OriginPOS:
		c.POS = c.POS.Add(o.Total)
	case order.OriginManual:
		c.Manual = c.Manual.Add(o.Total)
	default:
		c.Ecommerce = c.Ecommerce.Add(o.Total)
	}
	c.Total = c.Total.Add(o.Total)
	c.OrderCount++
}

// StatusTally counts orders and sums their totals
type StatusTally struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func (s *StatusTally) add(o *order.Order) {
	s.Count++
	s.Total = s.Total.Add(o.Total)
}

// Dashboard is the back-office landing summary
type Dashboard struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Today       ChannelSales `json:"today"`
	Week        ChannelSales `json:"week"`
	Month       ChannelSales `json:"month"`
	// Pending and Cancelled cover the month to date; Cancelled includes abandoned orders
	Pending   StatusTally `json:"pending"`
	Cancelled StatusTally `json:"cancelled"`
}

// BuildDashboard summarizes orders created between the start of now's month
// and now, using calendar boundaries in now's location. Weeks start on Monday.
func BuildDashboard(orders []*order.Order, now time.Time) Dashboard {
	dayStart := startOfDay(now)
	weekStart := startOfWeek(now)
	monthStart := startOfMonth(now)

	d := Dashboard{
		GeneratedAt: now,
		Today:       newChannelSales(dayStart),
		Week:        newChannelSales(weekStart),
		Month:       newChannelSales(monthStart),
		Pending:     StatusTally{Total: decimal.Zero},
		Cancelled:   StatusTally{Total: decimal.Zero},
	}

	for _, o := range orders {
		created := o.CreatedAt
		if created.After(now) {
			continue
		}
		inMonth := !created.Before(monthStart)

		switch {
		case o.IsPaid():
			if !created.Before(dayStart) {
				d.Today.add(o)
			}
			if !created.Before(weekStart) {
				d.Week.add(o)
			}
			if inMonth {
				d.Month.add(o)
			}
		case o.IsPending() && inMonth:
			d.Pending.add(o)
		case o.IsClosedUnpaid() && inMonth:
			d.Cancelled.add(o)
		}
	}
	return d
}

// EarliestDashboardStart returns the earliest instant BuildDashboard looks at.
// A week can begin in the previous month.
func EarliestDashboardStart(now time.Time) time.Time {
	week, month := startOfWeek(now), startOfMonth(now)
	if week.Before(month) {
		return week
	}
	return month
}

func newChannelSales(from time.Time) ChannelSales {
	return ChannelSales{
		From:      from,
		Ecommerce: decimal.Zero,
		POS:       decimal.Zero,
		Manual:    decimal.Zero,
		Total:     decimal.Zero,
	}
}
