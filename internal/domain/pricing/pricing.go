// Package pricing turns a catalog service and the intake measurements into a price.
//
// Prices are additive: the base price is always charged, the per-item price is
// added when the service is priced by item count and the per-kg price is added
// when it is priced by weight. Totals never drop below zero.
package pricing

import (
	"errors"

	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeWeight   = errors.New("weight cannot be negative")
	ErrNegativeItems    = errors.New("items cannot be negative")
	ErrNegativeDiscount = errors.New("discount cannot be negative")
	ErrNegativeSubtotal = errors.New("subtotal cannot be negative")
	ErrWeightRequired   = errors.New("weight is required for this service")
	ErrItemsRequired    = errors.New("item count is required for this service")
	ErrNoService        = errors.New("service is required")
)

// Input carries the measurements taken at the counter
type Input struct {
	Weight   decimal.Decimal
	Items    int
	Discount decimal.Decimal
}

// Quote is the outcome of pricing an order
type Quote struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount_amount"`
	Total     decimal.Decimal `json:"total_amount"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Calculate prices an order against svc
func Calculate(svc *entity.Service, in Input) (Quote, error) {
	if svc == nil {
		return Quote{}, ErrNoService
	}
	if in.Weight.IsNegative() {
		return Quote{}, ErrNegativeWeight
	}
	if in.Items < 0 {
		return Quote{}, ErrNegativeItems
	}
	if in.Discount.IsNegative() {
		return Quote{}, ErrNegativeDiscount
	}
	if svc.RequiresWeight && in.Weight.IsZero() {
		return Quote{}, ErrWeightRequired
	}
	if svc.RequiresItems && in.Items == 0 {
		return Quote{}, ErrItemsRequired
	}

	subtotal := svc.BasePrice
	if svc.RequiresItems && svc.PricePerItem.Valid {
		subtotal = subtotal.Add(svc.PricePerItem.Decimal.Mul(decimal.NewFromInt(int64(in.Items))))
	}
	if svc.RequiresWeight && svc.PricePerKg.Valid {
		subtotal = subtotal.Add(svc.PricePerKg.Decimal.Mul(in.Weight))
	}

	return finish(subtotal, in.Discount, in.Items), nil
}

// Manual prices an order whose subtotal was entered by hand,
// as happens for free-text services that are not in the catalog.
func Manual(subtotal decimal.Decimal, in Input) (Quote, error) {
	if subtotal.IsNegative() {
		return Quote{}, ErrNegativeSubtotal
	}
	if in.Weight.IsNegative() {
		return Quote{}, ErrNegativeWeight
	}
	if in.Items < 0 {
		return Quote{}, ErrNegativeItems
	}
	if in.Discount.IsNegative() {
		return Quote{}, ErrNegativeDiscount
	}
	return finish(subtotal, in.Discount, in.Items), nil
}

// Total applies a discount to a subtotal, flooring at zero
func Total(subtotal, discount decimal.Decimal) decimal.Decimal {
	return entity.ClampZero(subtotal.Sub(discount))
}

func finish(subtotal, discount decimal.Decimal, items int) Quote {
	subtotal = subtotal.Round(2)
	unit := subtotal
	if items > 0 {
		unit = subtotal.Div(decimal.NewFromInt(int64(items))).Round(2)
	}
	return Quote{
		Subtotal:  subtotal,
		Discount:  discount.Round(2),
		Total:     Total(subtotal, discount).Round(2),
		UnitPrice: unit,
	}
}
