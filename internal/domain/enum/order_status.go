package enum

import "fmt"

// OrderStatus tracks an order through the wash cycle
type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusWashing    OrderStatus = "washing"
	OrderStatusDrying     OrderStatus = "drying"
	OrderStatusFolding    OrderStatus = "folding"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions lists the statuses each status may move to.
// Completed and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusReceived:   {OrderStatusProcessing, OrderStatusWashing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusWashing, OrderStatusCancelled},
	OrderStatusWashing:    {OrderStatusDrying, OrderStatusCancelled},
	OrderStatusDrying:     {OrderStatusFolding, OrderStatusReady, OrderStatusCancelled},
	OrderStatusFolding:    {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// OrderStatuses returns every status in workflow order
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusReceived,
		OrderStatusProcessing,
		OrderStatusWashing,
		OrderStatusDrying,
		OrderStatusFolding,
		OrderStatusReady,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known status
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsPending reports whether the order is still waiting to be worked on
func (s OrderStatus) IsPending() bool {
	return s == OrderStatusReceived || s == OrderStatusProcessing
}

// CanTransitionTo reports whether an order in status s may move to next.
// Re-applying the current status is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error describing why current cannot become next
func (s OrderStatus) ValidateTransition(next OrderStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("unknown order status %q", next)
	}
	if !s.CanTransitionTo(next) {
		return fmt.Errorf("cannot move order from %s to %s", s, next)
	}
	return nil
}
