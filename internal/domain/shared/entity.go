package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and timestamps every stored record has.
// Timestamps are kept in UTC at microsecond precision, the resolution
// postgres stores, so a loaded entity compares equal to the saved one.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates an entity with a fresh random ID stamped now
func NewBaseEntity() BaseEntity {
	now := Timestamp(time.Now())
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch marks the entity as modified now
func (e *BaseEntity) Touch() {
	e.UpdatedAt = Timestamp(time.Now())
}

// Timestamp normalizes t to the stored precision
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
