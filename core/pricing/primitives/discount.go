package primitives

import (
	"github.com/shopspring/decimal"

	"pricing-calculator/core/types"
)

// ApplyVolumeDiscounts walks discounts in declaration order and compounds
// every discount whose threshold is <= count onto fee.
func ApplyVolumeDiscounts(fee decimal.Decimal, count int64, discounts []types.VolumeDiscount) (decimal.Decimal, []types.AppliedDiscount) {
	var applied []types.AppliedDiscount
	for _, d := range discounts {
		if d.Threshold > count {
			continue
		}
		fee = Discounted(fee, d.DiscountPercentage)
		applied = append(applied, types.AppliedDiscount{
			Threshold:          d.Threshold,
			DiscountPercentage: d.DiscountPercentage,
			FeeAfter:           fee,
		})
	}
	return fee, applied
}
