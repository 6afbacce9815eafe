package types

import "github.com/shopspring/decimal"

// MonthsPerYear is used for the annual revenue projection
const MonthsPerYear = 12

// Bucket is one of the four breakdown buckets a contribution is classified into
type Bucket string

const (
	BucketFixed      Bucket = "fixed"
	BucketVariable   Bucket = "variable"
	BucketVolume     Bucket = "volume"
	BucketAdditional Bucket = "additional"
)

// Breakdown holds the four named fee buckets
type Breakdown struct {
	FixedFees      decimal.Decimal `json:"fixed_fees"`
	VariableFees   decimal.Decimal `json:"variable_fees"`
	VolumeFees     decimal.Decimal `json:"volume_fees"`
	AdditionalFees decimal.Decimal `json:"additional_fees"`
}

// Total sums the four buckets
func (b Breakdown) Total() decimal.Decimal {
	return b.FixedFees.Add(b.VariableFees).Add(b.VolumeFees).Add(b.AdditionalFees)
}

// Get returns the amount held in bucket
func (b Breakdown) Get(bucket Bucket) decimal.Decimal {
	switch bucket {
	case BucketFixed:
		return b.FixedFees
	case BucketVariable:
		return b.VariableFees
	case BucketVolume:
		return b.VolumeFees
	case BucketAdditional:
		return b.AdditionalFees
	default:
		return decimal.Zero
	}
}

// Component is a single line item explaining one contribution to a bucket
type Component struct {
	// Kind is the fee kind that produced the amount
	Kind FeeKind `json:"kind"`

	// Bucket is where the amount was booked
	Bucket Bucket `json:"bucket"`

	// Amount is the contribution; negative for the maximum-fee cap
	Amount decimal.Decimal `json:"amount"`

	// Formula describes how the amount was calculated
	Formula string `json:"formula"`
}

// BandCharge is the volume fee of one tiered band
type BandCharge struct {
	From   decimal.Decimal  `json:"from"`
	UpTo   *decimal.Decimal `json:"up_to,omitempty"`
	Volume decimal.Decimal  `json:"volume"`
	Rate   decimal.Decimal  `json:"rate"`
	Amount decimal.Decimal  `json:"amount"`
}

// AppliedDiscount records a volume discount whose threshold was met
type AppliedDiscount struct {
	Threshold          int64           `json:"threshold"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	FeeAfter           decimal.Decimal `json:"fee_after"`
}

// CalculationResults is the output of one calculation
type CalculationResults struct {
	MonthlyRevenue     decimal.Decimal `json:"monthly_revenue"`
	PerTransactionCost decimal.Decimal `json:"per_transaction_cost"`

	// TotalFees always equals MonthlyRevenue
	TotalFees decimal.Decimal `json:"total_fees"`

	Breakdown Breakdown `json:"breakdown"`

	// Components lists every contribution in the order it was booked
	Components []Component `json:"components,omitempty"`

	// Bands is populated for the tiered structure
	Bands []BandCharge `json:"bands,omitempty"`

	// Discounts is populated for the per-transaction structure
	Discounts []AppliedDiscount `json:"discounts,omitempty"`

	// EffectivePerTransactionFee is the discounted fee for per-transaction models
	EffectivePerTransactionFee *decimal.Decimal `json:"effective_per_transaction_fee,omitempty"`
}

// AnnualRevenue projects MonthlyRevenue over a year
func (r *CalculationResults) AnnualRevenue() decimal.Decimal {
	return r.MonthlyRevenue.Mul(decimal.NewFromInt(MonthsPerYear))
}

// ComponentsIn returns the components booked into bucket
func (r *CalculationResults) ComponentsIn(bucket Bucket) []Component {
	var out []Component
	for _, c := range r.Components {
		if c.Bucket == bucket {
			out = append(out, c)
		}
	}
	return out
}
