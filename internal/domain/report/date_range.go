package report

import (
	"time"

	"github.com/labakery/backend/internal/domain/shared"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive reporting window from the first instant of
// Start's day to the last millisecond of End's day
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds [start 00:00:00.000, end 23:59:59.999] in loc
func NewDateRange(start, end time.Time, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	if e.Before(s) {
		return DateRange{}, shared.NewDomainError("INVALID_DATE_RANGE", "End date must not be before start date")
	}
	return DateRange{Start: s, End: e}, nil
}

// Contains reports whether instant t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ContainsDay reports whether the calendar day of d, read in d's own
// location, lies between the range's first and last day
func (r DateRange) ContainsDay(d time.Time) bool {
	day := d.Format(dateLayout)
	return day >= r.Start.Format(dateLayout) && day <= r.End.Format(dateLayout)
}

// startOfDay returns local midnight of t's day
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns local midnight of the Monday on or before t
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return startOfDay(t).AddDate(0, 0, -offset)
}

// startOfMonth returns local midnight of the first day of t's month
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
