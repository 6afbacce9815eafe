// Package pricing is the pricing engine: it maps a declarative pricing
// model plus usage inputs to a deterministic revenue breakdown.
//
// Calculate is pure. It performs no I/O, keeps no state and never fails:
// missing parameters contribute zero and a zero transaction count yields a
// zero per-transaction cost. Inputs are not validated; negative or otherwise
// odd values flow through the arithmetic unchanged.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pricing-calculator/core/pricing/primitives"
	"pricing-calculator/core/types"
)

// Calculate computes the monthly revenue breakdown for model under inputs.
// A nil model yields all-zero results.
func Calculate(model *types.PricingModel, inputs types.CalculationInputs) *types.CalculationResults {
	in := inputs.Resolved()
	c := &calculation{
		in:      in,
		results: &types.CalculationResults{},
	}
	if model == nil {
		return c.finish()
	}
	c.params = model.Parameters

	switch model.BaseStructure {
	case types.StructurePerTransaction:
		c.perTransaction(model.VolumeDiscounts)
	case types.StructurePercentage:
		c.percentage()
	case types.StructureFixedMonthly:
		c.fixedMonthly()
	case types.StructureHybrid:
		c.hybrid()
	case types.StructureTiered:
		c.tiered()
	}

	c.clamp()
	return c.finish()
}

// calculation accumulates buckets and line items for one Calculate call
type calculation struct {
	in      types.ResolvedInputs
	params  types.Parameters
	results *types.CalculationResults
}

func (c *calculation) book(bucket types.Bucket, kind types.FeeKind, amount decimal.Decimal, formula string) {
	b := &c.results.Breakdown
	switch bucket {
	case types.BucketFixed:
		b.FixedFees = b.FixedFees.Add(amount)
	case types.BucketVariable:
		b.VariableFees = b.VariableFees.Add(amount)
	case types.BucketVolume:
		b.VolumeFees = b.VolumeFees.Add(amount)
	case types.BucketAdditional:
		b.AdditionalFees = b.AdditionalFees.Add(amount)
	}
	c.results.Components = append(c.results.Components, types.Component{
		Kind:    kind,
		Bucket:  bucket,
		Amount:  amount,
		Formula: formula,
	})
}

func (c *calculation) transactions() decimal.Decimal {
	return decimal.NewFromInt(c.in.TransactionCount)
}

func (c *calculation) perTransaction(discounts []types.VolumeDiscount) {
	base, set := c.params.Get(types.FeePerTransaction)
	fee, applied := primitives.ApplyVolumeDiscounts(base, c.in.TransactionCount, discounts)
	c.results.Discounts = applied
	c.results.EffectivePerTransactionFee = &fee

	if !set {
		return
	}
	c.book(types.BucketVariable, types.FeePerTransaction, c.transactions().Mul(fee),
		fmt.Sprintf("%d transactions * %s per transaction", c.in.TransactionCount, fee))
}

func (c *calculation) percentage() {
	rate, set := c.params.Get(types.FeePercentage)
	if !set {
		return
	}
	c.book(types.BucketVolume, types.FeePercentage, primitives.PercentOf(c.in.MonthlyVolume, rate),
		fmt.Sprintf("%s volume * %s%%", c.in.MonthlyVolume, rate))
}

func (c *calculation) fixedMonthly() {
	fee, set := c.params.Get(types.FeeMonthly)
	if !set {
		return
	}
	c.book(types.BucketFixed, types.FeeMonthly, fee, "flat monthly fee")
}

// hybrid accumulates every set parameter into its own bucket. A parameter
// set to zero is booked with a zero amount rather than skipped.
func (c *calculation) hybrid() {
	if fee, ok := c.params.Get(types.FeeMonthly); ok {
		c.book(types.BucketFixed, types.FeeMonthly, fee, "flat monthly fee")
	}
	if fee, ok := c.params.Get(types.FeePerTransaction); ok {
		c.book(types.BucketVariable, types.FeePerTransaction, c.transactions().Mul(fee),
			fmt.Sprintf("%d transactions * %s per transaction", c.in.TransactionCount, fee))
	}
	if rate, ok := c.params.Get(types.FeePercentage); ok {
		c.book(types.BucketVolume, types.FeePercentage, primitives.PercentOf(c.in.MonthlyVolume, rate),
			fmt.Sprintf("%s volume * %s%%", c.in.MonthlyVolume, rate))
	}
	if fee, ok := c.params.Get(types.FeeCorridor); ok {
		c.book(types.BucketAdditional, types.FeeCorridor, decimal.NewFromInt(c.in.CorridorCount).Mul(fee),
			fmt.Sprintf("%d corridors * %s per corridor", c.in.CorridorCount, fee))
	}
	if fee, ok := c.params.Get(types.FeeRetainer); ok {
		c.book(types.BucketFixed, types.FeeRetainer, fee, "monthly retainer")
	}
}

func (c *calculation) tiered() {
	if fee, ok := c.params.Get(types.FeePerTransaction); ok {
		c.book(types.BucketVariable, types.FeePerTransaction, c.transactions().Mul(fee),
			fmt.Sprintf("%d transactions * %s per transaction", c.in.TransactionCount, fee))
	}

	rate, set := c.params.Get(types.FeePercentage)
	_, charges := primitives.CalculateTieredCost(c.in.MonthlyVolume, primitives.ProgressiveBands(rate))
	for i, ch := range charges {
		band := types.BandCharge{
			From:   ch.From,
			Volume: ch.Quantity,
			Rate:   ch.Tier.Rate,
			Amount: ch.Amount,
		}
		if !ch.Tier.Unlimited() {
			upTo := ch.Tier.UpTo
			band.UpTo = &upTo
		}
		c.results.Bands = append(c.results.Bands, band)

		if set {
			c.book(types.BucketVolume, types.FeePercentage, ch.Amount,
				fmt.Sprintf("band %d: %s volume * %s%%", i+1, ch.Quantity, ch.Tier.Rate))
		}
	}
}

// clamp applies the minimum floor and the maximum cap. Both compare against
// variable + volume fees as they stood before either adjustment. The floor
// tops up additional fees; the cap only ever reduces variable fees and never
// below zero. A bound set to zero is no bound: it is shown but not applied.
func (c *calculation) clamp() {
	b := &c.results.Breakdown
	total := b.VariableFees.Add(b.VolumeFees)

	if minimum, ok := c.params.Get(types.FeeMinimum); ok && !minimum.IsZero() && total.LessThan(minimum) {
		shortfall := minimum.Sub(total)
		c.book(types.BucketAdditional, types.FeeMinimum, shortfall,
			fmt.Sprintf("minimum %s - variable and volume %s", minimum, total))
	}

	if maximum, ok := c.params.Get(types.FeeMaximum); ok && !maximum.IsZero() && total.GreaterThan(maximum) {
		excess := total.Sub(maximum)
		capped := decimal.Max(decimal.Zero, b.VariableFees.Sub(excess))
		c.book(types.BucketVariable, types.FeeMaximum, capped.Sub(b.VariableFees),
			fmt.Sprintf("cap at maximum %s (excess %s)", maximum, excess))
	}
}

func (c *calculation) finish() *types.CalculationResults {
	r := c.results
	r.MonthlyRevenue = r.Breakdown.Total()
	r.TotalFees = r.MonthlyRevenue
	if c.in.TransactionCount > 0 {
		r.PerTransactionCost = r.MonthlyRevenue.Div(c.transactions())
	}
	return r
}
