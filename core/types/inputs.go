package types

import "github.com/shopspring/decimal"

// Defaults substituted for optional inputs at the engine boundary
const (
	DefaultCorridorCount int64 = 1
	DefaultUserCount     int64 = 1000
	DefaultAPICalls      int64 = 0
)

// CalculationInputs is the usage snapshot for one calculation.
// Optional fields are nil when the caller did not supply them.
type CalculationInputs struct {
	MonthlyVolume           decimal.Decimal `json:"monthly_volume"`
	TransactionCount        int64           `json:"transaction_count"`
	AverageTransactionValue decimal.Decimal `json:"average_transaction_value"`
	CorridorCount           *int64          `json:"corridor_count,omitempty"`
	UserCount               *int64          `json:"user_count,omitempty"`
	APICalls                *int64          `json:"api_calls,omitempty"`
}

// ResolvedInputs are CalculationInputs with every optional field filled in
type ResolvedInputs struct {
	MonthlyVolume           decimal.Decimal
	TransactionCount        int64
	AverageTransactionValue decimal.Decimal
	CorridorCount           int64
	UserCount               int64
	APICalls                int64
}

// Resolved applies the boundary defaults: 1 corridor, 1000 users, 0 API calls
func (in CalculationInputs) Resolved() ResolvedInputs {
	return ResolvedInputs{
		MonthlyVolume:           in.MonthlyVolume,
		TransactionCount:        in.TransactionCount,
		AverageTransactionValue: in.AverageTransactionValue,
		CorridorCount:           valueOr(in.CorridorCount, DefaultCorridorCount),
		UserCount:               valueOr(in.UserCount, DefaultUserCount),
		APICalls:                valueOr(in.APICalls, DefaultAPICalls),
	}
}

// Int64 returns a pointer to v, for populating optional inputs
func Int64(v int64) *int64 {
	return &v
}

func valueOr(p *int64, def int64) int64 {
	if p == nil {
		return def
	}
	return *p
}
