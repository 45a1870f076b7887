package enum

import "fmt"

// PaymentStatus represents how much of an order has been paid
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusPaid, PaymentStatusPartial, PaymentStatusCancelled},
	PaymentStatusPartial:   {PaymentStatusPaid, PaymentStatusCancelled},
	PaymentStatusPaid:      {},
	PaymentStatusCancelled: {},
}

func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

// CanTransitionTo reports whether the payment status may move to next
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error if s cannot become next
func (s PaymentStatus) ValidateTransition(next PaymentStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("unknown payment status %q", next)
	}
	if !s.CanTransitionTo(next) {
		return fmt.Errorf("cannot move payment from %s to %s", s, next)
	}
	return nil
}
