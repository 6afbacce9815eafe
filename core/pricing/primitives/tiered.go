// Package primitives - Tiered pricing primitives
// Handles progressive volume bands charged at discounted percentage rates.
package primitives

import "github.com/shopspring/decimal"

// Progressive band limits and rate multipliers
var (
	BandOneLimit = decimal.NewFromInt(100000)
	BandTwoLimit = decimal.NewFromInt(500000)

	BandOneMultiplier   = decimal.NewFromInt(1)
	BandTwoMultiplier   = decimal.RequireFromString("0.8")
	BandThreeMultiplier = decimal.RequireFromString("0.6")
)

// ProgressiveBands returns the three volume bands for a base percentage rate:
// the first 100k at the base rate, the next 400k 20% cheaper, the rest 40% cheaper.
func ProgressiveBands(baseRate decimal.Decimal) []PricingTier {
	return []PricingTier{
		{UpTo: BandOneLimit, Rate: baseRate.Mul(BandOneMultiplier)},
		{UpTo: BandTwoLimit, Rate: baseRate.Mul(BandTwoMultiplier)},
		{UpTo: decimal.Zero, Rate: baseRate.Mul(BandThreeMultiplier)},
	}
}

// CalculateTieredCost splits quantity across tiers and charges each slice at
// its tier's percentage rate. The first tier always receives
// min(quantity, limit), even when quantity is zero or negative; later tiers
// only receive what remains above zero.
func CalculateTieredCost(quantity decimal.Decimal, tiers []PricingTier) (decimal.Decimal, []TierCharge) {
	if len(tiers) == 0 {
		return decimal.Zero, nil
	}

	total := decimal.Zero
	charges := make([]TierCharge, 0, len(tiers))
	remaining := quantity
	previousLimit := decimal.Zero

	for i, tier := range tiers {
		if i > 0 && !remaining.IsPositive() {
			break
		}

		usageInTier := remaining
		if !tier.Unlimited() {
			tierSize := tier.UpTo.Sub(previousLimit)
			usageInTier = decimal.Min(remaining, tierSize)
		}

		amount := PercentOf(usageInTier, tier.Rate)
		charges = append(charges, TierCharge{
			Tier:     tier,
			From:     previousLimit,
			Quantity: usageInTier,
			Amount:   amount,
		})
		total = total.Add(amount)
		remaining = remaining.Sub(usageInTier)

		if tier.Unlimited() {
			break
		}
		previousLimit = tier.UpTo
	}

	return total, charges
}
