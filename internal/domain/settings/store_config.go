package settings

import (
	"sort"
	"strings"
	"time"

	"github.com/labakery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// StoreConfig is the single store-wide settings row
type StoreConfig struct {
	ID          int
	ShippingFee decimal.Decimal
	// ClosedDates are YYYY-MM-DD days with no deliveries, sorted and unique
	ClosedDates []string
	UpdatedAt   time.Time
}

// SingletonID is the primary key of the only StoreConfig row
const SingletonID = 1

// DefaultStoreConfig returns the config used before an admin saves one
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		ID:          SingletonID,
		ShippingFee: decimal.Zero,
		ClosedDates: []string{},
		UpdatedAt:   time.Now(),
	}
}

// StoreConfigPatch holds an optional value per editable field
type StoreConfigPatch struct {
	ShippingFee *decimal.Decimal
	ClosedDates *[]string
}

// Apply validates and applies the present fields of the patch
func (c *StoreConfig) Apply(patch StoreConfigPatch) error {
	if patch.ShippingFee != nil {
		if patch.ShippingFee.IsNegative() {
			return shared.NewDomainError("INVALID_SHIPPING_FEE", "Shipping fee cannot be negative")
		}
	}
	var dates []string
	if patch.ClosedDates != nil {
		normalized, err := NormalizeClosedDates(*patch.ClosedDates)
		if err != nil {
			return err
		}
		dates = normalized
	}

	if patch.ShippingFee != nil {
		c.ShippingFee = *patch.ShippingFee
	}
	if patch.ClosedDates != nil {
		c.ClosedDates = dates
	}
	c.UpdatedAt = time.Now()
	return nil
}

// IsClosed reports whether deliveries are suspended on the calendar day of t
func (c *StoreConfig) IsClosed(t time.Time) bool {
	day := t.Format(dateLayout)
	i := sort.SearchStrings(c.ClosedDates, day)
	return i < len(c.ClosedDates) && c.ClosedDates[i] == day
}

// NormalizeClosedDates validates YYYY-MM-DD strings, then sorts and deduplicates them
func NormalizeClosedDates(dates []string) ([]string, error) {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, raw := range dates {
		d := strings.TrimSpace(raw)
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "Closed dates must be formatted as YYYY-MM-DD: "+raw)
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}
