// Package primitives - Centralized pricing math
// The engine declares which formula runs; the arithmetic it shares lives here.
package primitives

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PricingTier represents a tiered pricing level
type PricingTier struct {
	UpTo decimal.Decimal // Cumulative upper limit (zero = unlimited)
	Rate decimal.Decimal // Percentage rate charged in this tier
}

// Unlimited reports whether the tier has no upper limit
func (t PricingTier) Unlimited() bool {
	return t.UpTo.IsZero()
}

// TierCharge is the portion of a quantity that fell into one tier
type TierCharge struct {
	Tier     PricingTier
	From     decimal.Decimal
	Quantity decimal.Decimal
	Amount   decimal.Decimal
}

// PercentOf returns amount * pct / 100 without rounding
func PercentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Shift(-2)
}

// Discounted returns value * (1 - pct/100)
func Discounted(value, pct decimal.Decimal) decimal.Decimal {
	return value.Mul(decimal.NewFromInt(1).Sub(pct.Shift(-2)))
}
