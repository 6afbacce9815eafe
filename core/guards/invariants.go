// Package guards - Result invariant checks
// Checks that hold for every calculation regardless of model or inputs.
package guards

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"pricing-calculator/core/types"
)

// Violation is a broken result invariant
type Violation struct {
	Invariant string
	Detail    string
}

// Error implements the error interface
func (v Violation) Error() string {
	return fmt.Sprintf("INVARIANT VIOLATED: %s: %s", v.Invariant, v.Detail)
}

// CheckResults verifies res against the model and inputs it was computed from
func CheckResults(model *types.PricingModel, in types.CalculationInputs, res *types.CalculationResults) []Violation {
	if res == nil {
		return []Violation{{Invariant: "results", Detail: "results are nil"}}
	}

	var out []Violation
	add := func(invariant, format string, args ...interface{}) {
		out = append(out, Violation{Invariant: invariant, Detail: fmt.Sprintf(format, args...)})
	}

	if !res.TotalFees.Equal(res.MonthlyRevenue) {
		add("total_fees", "total fees %s differ from monthly revenue %s", res.TotalFees, res.MonthlyRevenue)
	}
	if total := res.Breakdown.Total(); !total.Equal(res.MonthlyRevenue) {
		add("breakdown_sum", "buckets sum to %s, monthly revenue is %s", total, res.MonthlyRevenue)
	}

	for _, bucket := range []types.Bucket{types.BucketFixed, types.BucketVariable, types.BucketVolume, types.BucketAdditional} {
		sum := decimal.Zero
		for _, c := range res.ComponentsIn(bucket) {
			sum = sum.Add(c.Amount)
		}
		if !sum.Equal(res.Breakdown.Get(bucket)) {
			add("components_sum", "%s components sum to %s, bucket holds %s", bucket, sum, res.Breakdown.Get(bucket))
		}
	}

	if in.TransactionCount > 0 {
		want := res.MonthlyRevenue.Div(decimal.NewFromInt(in.TransactionCount))
		if !res.PerTransactionCost.Equal(want) {
			add("per_transaction_cost", "got %s, want %s", res.PerTransactionCost, want)
		}
	} else if !res.PerTransactionCost.IsZero() {
		add("per_transaction_cost", "got %s with no transactions", res.PerTransactionCost)
	}

	if model != nil && model.BaseStructure == types.StructureFixedMonthly {
		if !res.Breakdown.VariableFees.IsZero() || !res.Breakdown.VolumeFees.IsZero() {
			add("fixed_monthly", "variable %s and volume %s must be zero", res.Breakdown.VariableFees, res.Breakdown.VolumeFees)
		}
	}

	return out
}

// Assert panics if any invariant is violated
func Assert(model *types.PricingModel, in types.CalculationInputs, res *types.CalculationResults) {
	violations := CheckResults(model, in, res)
	if len(violations) == 0 {
		return
	}
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.Error()
	}
	panic(strings.Join(msgs, "; "))
}
