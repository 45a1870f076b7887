package request

import "github.com/shopspring/decimal"

// ServiceRequest represents a catalog service create or update request
type ServiceRequest struct {
	DisplayName    string              `json:"display_name" binding:"required,min=2,max=255"`
	Description    *string             `json:"description"`
	BasePrice      decimal.Decimal     `json:"base_price"`
	PricePerItem   decimal.NullDecimal `json:"price_per_item"`
	PricePerKg     decimal.NullDecimal `json:"price_per_kg"`
	RequiresWeight bool                `json:"requires_weight"`
	RequiresItems  bool                `json:"requires_items"`
	IsActive       *bool               `json:"is_active"`
}
