// Package notify tells customers that their laundry is ready for pickup.
package notify

import (
	"context"
	"errors"
)

// OrderReady is the content of a pickup notification
type OrderReady struct {
	OrderID      string
	CustomerName string
	Phone        string
	Email        string
	ServiceType  string
	Total        string
	StoreName    string
	StorePhone   string
}

// Notifier delivers pickup notifications over one channel
type Notifier interface {
	NotifyOrderReady(ctx context.Context, n OrderReady) error
}

// ErrNoRecipient means the customer has no contact detail for the channel
var ErrNoRecipient = errors.New("notify: customer has no contact for this channel")

// Multi fans a notification out to several channels and joins their errors.
// A channel without a recipient is skipped silently.
type Multi []Notifier

func (m Multi) NotifyOrderReady(ctx context.Context, n OrderReady) error {
	var errs []error
	for _, ch := range m {
		if err := ch.NotifyOrderReady(ctx, n); err != nil && !errors.Is(err, ErrNoRecipient) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards notifications
type Nop struct{}

func (Nop) NotifyOrderReady(context.Context, OrderReady) error { return nil }
