package usage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricing-calculator/core/types"
	"pricing-calculator/internal/errors"
)

func TestDefaultsAreInBounds(t *testing.T) {
	assert.Empty(t, Check(Defaults(), DefaultBounds()))
	assert.NoError(t, Enforce(Defaults(), DefaultBounds()))
}

func TestCheckReportsViolationsInFormOrder(t *testing.T) {
	in := Defaults()
	in.MonthlyVolume = decimal.NewFromInt(5000)
	in.UserCount = types.Int64(60000)
	in.TransactionCount = 100000

	violations := Check(in, DefaultBounds())
	require.Len(t, violations, 2)
	assert.Equal(t, FieldMonthlyVolume, violations[0].Field)
	assert.Equal(t, FieldUserCount, violations[1].Field)
	assert.Equal(t, "user_count 60000 outside [100, 50000]", violations[1].String())
}

func TestCheckSkipsAbsentOptionals(t *testing.T) {
	in := types.CalculationInputs{
		MonthlyVolume:           decimal.NewFromInt(20000),
		TransactionCount:        500,
		AverageTransactionValue: decimal.NewFromInt(40),
	}
	assert.Empty(t, Check(in, DefaultBounds()))
}

func TestEnforce(t *testing.T) {
	in := Defaults()
	in.CorridorCount = types.Int64(0)

	err := Enforce(in, DefaultBounds())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
	assert.Contains(t, err.Error(), "corridor_count 0 outside [1, 20]")
}

func TestSet(t *testing.T) {
	tests := []struct {
		field   Field
		value   string
		check   func(t *testing.T, in types.CalculationInputs)
		wantErr bool
	}{
		{field: FieldMonthlyVolume, value: "250000.50", check: func(t *testing.T, in types.CalculationInputs) {
			assert.Equal(t, "250000.5", in.MonthlyVolume.String())
		}},
		{field: FieldTransactionCount, value: "1200", check: func(t *testing.T, in types.CalculationInputs) {
			assert.Equal(t, int64(1200), in.TransactionCount)
		}},
		{field: FieldCorridorCount, value: "4", check: func(t *testing.T, in types.CalculationInputs) {
			require.NotNil(t, in.CorridorCount)
			assert.Equal(t, int64(4), *in.CorridorCount)
		}},
		{field: FieldAPICalls, value: "0", check: func(t *testing.T, in types.CalculationInputs) {
			require.NotNil(t, in.APICalls)
			assert.Equal(t, int64(0), *in.APICalls)
		}},
		{field: FieldUserCount, value: "10.5", wantErr: true},
		{field: Field("latency"), value: "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"="+tt.value, func(t *testing.T) {
			out, err := Set(Defaults(), tt.field, decimal.RequireFromString(tt.value))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField("average_transaction_value")
	require.NoError(t, err)
	assert.Equal(t, FieldAverageTransactionValue, f)

	_, err = ParseField("volume")
	assert.Error(t, err)
}
