package order

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusAbandoned OrderStatus = "abandoned"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// AllStatuses lists every status in display order
var AllStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusCompleted,
	OrderStatusAbandoned,
	OrderStatusCancelled,
}

// DeclaredTransitions is the documented workflow. Staff may still move an
// order between any two statuses; see CanTransitionTo.
var DeclaredTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusAbandoned, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusAbandoned: {OrderStatusPending, OrderStatusCancelled},
	OrderStatusCancelled: {OrderStatusPaid},
	OrderStatusCompleted: {},
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCompleted, OrderStatusAbandoned, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether an admin may move the order to target.
// Any valid status is reachable from any other.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return target.IsValid()
}

// IsDeclaredTransition reports whether s → target follows the documented workflow
func (s OrderStatus) IsDeclaredTransition(target OrderStatus) bool {
	if s == target {
		return true
	}
	for _, next := range DeclaredTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsReactivation reports whether s → target reopens a cancelled order
func (s OrderStatus) IsReactivation(target OrderStatus) bool {
	return s == OrderStatusCancelled && target == OrderStatusPaid
}

// Origin is the channel an order was created through
type Origin string

const (
	OriginEcommerce Origin = "ecommerce"
	OriginPOS       Origin = "pos"
	OriginManual    Origin = "manual"
)

// IsValid checks if the origin is known. The empty origin is legacy data
// and treated as ecommerce by Normalized.
func (o Origin) IsValid() bool {
	switch o {
	case OriginEcommerce, OriginPOS, OriginManual:
		return true
	}
	return false
}

// Normalized maps the unset origin to ecommerce
func (o Origin) Normalized() Origin {
	if o == "" {
		return OriginEcommerce
	}
	return o
}

// String returns the string representation of Origin
func (o Origin) String() string {
	return string(o)
}

// OrderNumberPrefix returns the order-number prefix for the origin
func (o Origin) OrderNumberPrefix() string {
	switch o {
	case OriginPOS:
		return "POS"
	case OriginManual:
		return "MAN"
	default:
		return "LB"
	}
}

// InitialStatus returns the status a new order starts in. In-person sales
// are paid on the spot; web orders wait for payment confirmation.
func InitialStatus(origin Origin) OrderStatus {
	switch origin {
	case OriginPOS, OriginManual:
		return OrderStatusPaid
	default:
		return OrderStatusPending
	}
}
