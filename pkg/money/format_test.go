package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatKES(t *testing.T) {
	assert.Equal(t, "KES 1,250.00", FormatKES(decimal.NewFromInt(1250)))
	assert.Equal(t, "KES 0.00", FormatKES(decimal.Zero))
	assert.Equal(t, "KES 99.50", FormatKES(decimal.RequireFromString("99.5")))
	assert.Equal(t, "1,000,000.25", Format(decimal.RequireFromString("1000000.25")))
}
