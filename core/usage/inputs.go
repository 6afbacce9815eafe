// Package usage - Calculation input presets and range checks
// The ranges are presentation affordances. The engine accepts any value;
// callers decide whether an out-of-range input is a warning or an error.
package usage

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pricing-calculator/core/types"
	"pricing-calculator/internal/errors"
)

// Field names one adjustable calculation input
type Field string

const (
	FieldMonthlyVolume           Field = "monthly_volume"
	FieldTransactionCount        Field = "transaction_count"
	FieldAverageTransactionValue Field = "average_transaction_value"
	FieldCorridorCount           Field = "corridor_count"
	FieldUserCount               Field = "user_count"
	FieldAPICalls                Field = "api_calls"
)

// AllFields returns every input field in form order
func AllFields() []Field {
	return []Field{
		FieldMonthlyVolume,
		FieldTransactionCount,
		FieldAverageTransactionValue,
		FieldCorridorCount,
		FieldUserCount,
		FieldAPICalls,
	}
}

// ParseField parses a field name
func ParseField(s string) (Field, error) {
	for _, f := range AllFields() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.Inputf("unknown input field %q", s)
}

// Defaults returns the initial calculator inputs
func Defaults() types.CalculationInputs {
	return types.CalculationInputs{
		MonthlyVolume:           decimal.NewFromInt(1000000),
		TransactionCount:        5000,
		AverageTransactionValue: decimal.NewFromInt(200),
		CorridorCount:           types.Int64(1),
		UserCount:               types.Int64(1000),
		APICalls:                types.Int64(10000),
	}
}

// Set returns a copy of in with field set to value. Count fields must be whole numbers.
func Set(in types.CalculationInputs, field Field, value decimal.Decimal) (types.CalculationInputs, error) {
	switch field {
	case FieldMonthlyVolume:
		in.MonthlyVolume = value
		return in, nil
	case FieldAverageTransactionValue:
		in.AverageTransactionValue = value
		return in, nil
	}

	if !value.Equal(value.Truncate(0)) {
		return in, errors.Inputf("%s must be a whole number, got %s", field, value)
	}
	n := value.IntPart()
	switch field {
	case FieldTransactionCount:
		in.TransactionCount = n
	case FieldCorridorCount:
		in.CorridorCount = types.Int64(n)
	case FieldUserCount:
		in.UserCount = types.Int64(n)
	case FieldAPICalls:
		in.APICalls = types.Int64(n)
	default:
		return in, errors.Inputf("unknown input field %q", field)
	}
	return in, nil
}

// Range is an inclusive [Min, Max] interval
type Range struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Contains reports whether v lies inside the range
func (r Range) Contains(v decimal.Decimal) bool {
	return !v.LessThan(r.Min) && !v.GreaterThan(r.Max)
}

// Bounds maps input fields to their allowed ranges. Fields without a range are unchecked.
type Bounds map[Field]Range

// DefaultBounds returns the calculator form ranges
func DefaultBounds() Bounds {
	return Bounds{
		FieldMonthlyVolume:           rangeOf(10000, 10000000),
		FieldTransactionCount:        rangeOf(100, 100000),
		FieldAverageTransactionValue: rangeOf(10, 5000),
		FieldCorridorCount:           rangeOf(1, 20),
		FieldUserCount:               rangeOf(100, 50000),
	}
}

func rangeOf(min, max int64) Range {
	return Range{Min: decimal.NewFromInt(min), Max: decimal.NewFromInt(max)}
}

// Violation describes an input outside its range
type Violation struct {
	Field Field           `json:"field"`
	Value decimal.Decimal `json:"value"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
}

// String returns a human-readable description
func (v Violation) String() string {
	return fmt.Sprintf("%s %s outside [%s, %s]", v.Field, v.Value, v.Min, v.Max)
}

// Check returns every range violation in form order. Optional inputs that
// were not supplied are not checked.
func Check(in types.CalculationInputs, bounds Bounds) []Violation {
	var violations []Violation
	for _, field := range AllFields() {
		r, ok := bounds[field]
		if !ok {
			continue
		}
		v, present := value(in, field)
		if !present || r.Contains(v) {
			continue
		}
		violations = append(violations, Violation{Field: field, Value: v, Min: r.Min, Max: r.Max})
	}
	return violations
}

// Enforce converts violations into a single input error
func Enforce(in types.CalculationInputs, bounds Bounds) error {
	violations := Check(in, bounds)
	if len(violations) == 0 {
		return nil
	}
	err := errors.Inputf("%d input(s) out of range, first: %s", len(violations), violations[0])
	for _, v := range violations {
		err.WithContext(string(v.Field), v.Value.String())
	}
	return err
}

func value(in types.CalculationInputs, field Field) (decimal.Decimal, bool) {
	switch field {
	case FieldMonthlyVolume:
		return in.MonthlyVolume, true
	case FieldTransactionCount:
		return decimal.NewFromInt(in.TransactionCount), true
	case FieldAverageTransactionValue:
		return in.AverageTransactionValue, true
	case FieldCorridorCount:
		return optional(in.CorridorCount)
	case FieldUserCount:
		return optional(in.UserCount)
	case FieldAPICalls:
		return optional(in.APICalls)
	default:
		return decimal.Zero, false
	}
}

func optional(p *int64) (decimal.Decimal, bool) {
	if p == nil {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(*p), true
}
