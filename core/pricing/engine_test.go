package pricing

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"

	"pricing-calculator/core/guards"
	"pricing-calculator/core/types"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func inputs(volume string, transactions int64) types.CalculationInputs {
	return types.CalculationInputs{
		MonthlyVolume:           d(volume),
		TransactionCount:        transactions,
		AverageTransactionValue: d("200"),
	}
}

func model(structure types.BaseStructure, params map[types.FeeKind]string, discounts ...types.VolumeDiscount) *types.PricingModel {
	p := types.Parameters{}
	for k, v := range params {
		p.Set(k, d(v))
	}
	return &types.PricingModel{
		ID:              "test",
		BaseStructure:   structure,
		Parameters:      p,
		VolumeDiscounts: discounts,
	}
}

type expectation struct {
	fixed, variable, volume, additional string
	revenue                             string
}

func assertBreakdown(t *testing.T, r *types.CalculationResults, want expectation) {
	t.Helper()
	checks := []struct {
		field string
		got   decimal.Decimal
		want  string
	}{
		{"fixed_fees", r.Breakdown.FixedFees, want.fixed},
		{"variable_fees", r.Breakdown.VariableFees, want.variable},
		{"volume_fees", r.Breakdown.VolumeFees, want.volume},
		{"additional_fees", r.Breakdown.AdditionalFees, want.additional},
		{"monthly_revenue", r.MonthlyRevenue, want.revenue},
	}
	for _, c := range checks {
		if !c.got.Equal(d(c.want)) {
			t.Errorf("%s: expected %s, got %s", c.field, c.want, c.got)
		}
	}
	if !r.TotalFees.Equal(r.MonthlyRevenue) {
		t.Errorf("total_fees %s must equal monthly_revenue %s", r.TotalFees, r.MonthlyRevenue)
	}
}

// TestCalculateStructures covers every formula branch and the clamp rules
func TestCalculateStructures(t *testing.T) {
	tests := []struct {
		name   string
		model  *types.PricingModel
		inputs types.CalculationInputs
		want   expectation
	}{
		{
			name:   "percentage of monthly volume",
			model:  model(types.StructurePercentage, map[types.FeeKind]string{types.FeePercentage: "0.15"}),
			inputs: inputs("1000000", 5000),
			want:   expectation{fixed: "0", variable: "0", volume: "1500", additional: "0", revenue: "1500"},
		},
		{
			name: "per transaction with one met discount",
			model: model(types.StructurePerTransaction,
				map[types.FeeKind]string{types.FeePerTransaction: "0.25"},
				types.VolumeDiscount{Threshold: 10000, DiscountPercentage: d("5")}),
			inputs: inputs("1000000", 12000),
			want:   expectation{fixed: "0", variable: "2850", volume: "0", additional: "0", revenue: "2850"},
		},
		{
			name:   "per transaction without fee is zero",
			model:  model(types.StructurePerTransaction, nil),
			inputs: inputs("1000000", 12000),
			want:   expectation{fixed: "0", variable: "0", volume: "0", additional: "0", revenue: "0"},
		},
		{
			name:   "fixed monthly ignores usage",
			model:  model(types.StructureFixedMonthly, map[types.FeeKind]string{types.FeeMonthly: "3500", types.FeePerTransaction: "9", types.FeePercentage: "1"}),
			inputs: inputs("9000000", 90000),
			want:   expectation{fixed: "3500", variable: "0", volume: "0", additional: "0", revenue: "3500"},
		},
		{
			name: "hybrid books every parameter into its bucket",
			model: model(types.StructureHybrid, map[types.FeeKind]string{
				types.FeeMonthly:        "500",
				types.FeePerTransaction: "0.25",
				types.FeePercentage:     "0.1",
				types.FeeCorridor:       "250",
				types.FeeRetainer:       "3000",
			}),
			inputs: types.CalculationInputs{
				MonthlyVolume:    d("1000000"),
				TransactionCount: 5000,
				CorridorCount:    types.Int64(3),
			},
			want: expectation{fixed: "3500", variable: "1250", volume: "1000", additional: "750", revenue: "6500"},
		},
		{
			name:   "hybrid corridor count defaults to one",
			model:  model(types.StructureHybrid, map[types.FeeKind]string{types.FeeCorridor: "250", types.FeePercentage: "0.1"}),
			inputs: inputs("1000000", 5000),
			want:   expectation{fixed: "0", variable: "0", volume: "1000", additional: "250", revenue: "1250"},
		},
		{
			name:   "tiered bands",
			model:  model(types.StructureTiered, map[types.FeeKind]string{types.FeePercentage: "0.15"}),
			inputs: inputs("600000", 1000),
			want:   expectation{fixed: "0", variable: "0", volume: "720", additional: "0", revenue: "720"},
		},
		{
			name:   "tiered with per transaction fee",
			model:  model(types.StructureTiered, map[types.FeeKind]string{types.FeePercentage: "0.15", types.FeePerTransaction: "2"}),
			inputs: inputs("50000", 10),
			want:   expectation{fixed: "0", variable: "20", volume: "75", additional: "0", revenue: "95"},
		},
		{
			name:   "minimum tops up additional fees",
			model:  model(types.StructureFixedMonthly, map[types.FeeKind]string{types.FeeMonthly: "3500", types.FeeMinimum: "2000", types.FeeMaximum: "5000"}),
			inputs: inputs("1000000", 5000),
			want:   expectation{fixed: "3500", variable: "0", volume: "0", additional: "2000", revenue: "5500"},
		},
		{
			name:   "minimum with no other fees",
			model:  model(types.StructurePercentage, map[types.FeeKind]string{types.FeeMinimum: "2000"}),
			inputs: inputs("1000000", 5000),
			want:   expectation{fixed: "0", variable: "0", volume: "0", additional: "2000", revenue: "2000"},
		},
		{
			name:   "maximum reduces variable fees only",
			model:  model(types.StructureHybrid, map[types.FeeKind]string{types.FeePerTransaction: "1", types.FeePercentage: "0.1", types.FeeMaximum: "120"}),
			inputs: inputs("50000", 100),
			want:   expectation{fixed: "0", variable: "70", volume: "50", additional: "0", revenue: "120"},
		},
		{
			name:   "maximum floors variable fees at zero",
			model:  model(types.StructureHybrid, map[types.FeeKind]string{types.FeePerTransaction: "1", types.FeePercentage: "0.1", types.FeeMaximum: "100"}),
			inputs: inputs("200000", 10),
			want:   expectation{fixed: "0", variable: "0", volume: "200", additional: "0", revenue: "200"},
		},
		{
			name:   "maximum compares against the pre-adjustment total",
			model:  model(types.StructurePerTransaction, map[types.FeeKind]string{types.FeePerTransaction: "1", types.FeeMinimum: "500", types.FeeMaximum: "300"}),
			inputs: inputs("0", 400),
			want:   expectation{fixed: "0", variable: "300", volume: "0", additional: "100", revenue: "400"},
		},
		{
			name:   "zero maximum is no cap",
			model:  model(types.StructurePerTransaction, map[types.FeeKind]string{types.FeePerTransaction: "0.25", types.FeeMaximum: "0"}),
			inputs: inputs("1000000", 5000),
			want:   expectation{fixed: "0", variable: "1250", volume: "0", additional: "0", revenue: "1250"},
		},
		{
			name:   "zero minimum is no floor under a negative total",
			model:  model(types.StructurePercentage, map[types.FeeKind]string{types.FeePercentage: "1", types.FeeMinimum: "0"}),
			inputs: inputs("-1000", 5000),
			want:   expectation{fixed: "0", variable: "0", volume: "-10", additional: "0", revenue: "-10"},
		},
		{
			name:   "unknown structure still clamps",
			model:  model(types.BaseStructure("subscription"), map[types.FeeKind]string{types.FeeMonthly: "100", types.FeeMinimum: "40"}),
			inputs: inputs("1000", 10),
			want:   expectation{fixed: "0", variable: "0", volume: "0", additional: "40", revenue: "40"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertBreakdown(t, Calculate(tt.model, tt.inputs), tt.want)
		})
	}
}

// TestCalculateCatalogShapes runs models shaped like the built-in client types
func TestCalculateCatalogShapes(t *testing.T) {
	psp := model(types.StructurePerTransaction,
		map[types.FeeKind]string{types.FeePerTransaction: "0.25", types.FeeMinimum: "0.20", types.FeeMaximum: "0.30"},
		types.VolumeDiscount{Threshold: 10000, DiscountPercentage: d("5")},
		types.VolumeDiscount{Threshold: 50000, DiscountPercentage: d("10")},
		types.VolumeDiscount{Threshold: 100000, DiscountPercentage: d("15")},
	)
	r := Calculate(psp, inputs("1000000", 12000))
	assertBreakdown(t, r, expectation{fixed: "0", variable: "0.3", volume: "0", additional: "0", revenue: "0.3"})
	if r.EffectivePerTransactionFee == nil || !r.EffectivePerTransactionFee.Equal(d("0.2375")) {
		t.Errorf("expected effective fee 0.2375, got %v", r.EffectivePerTransactionFee)
	}
	if len(r.Discounts) != 1 {
		t.Errorf("expected 1 applied discount, got %d", len(r.Discounts))
	}

	realEstate := model(types.StructureTiered, map[types.FeeKind]string{
		types.FeePerTransaction: "30",
		types.FeeMinimum:        "10",
		types.FeeMaximum:        "50",
		types.FeePercentage:     "0.15",
	})
	r = Calculate(realEstate, inputs("1000000", 5000))
	assertBreakdown(t, r, expectation{fixed: "0", variable: "0", volume: "1080", additional: "0", revenue: "1080"})
	if len(r.Bands) != 3 {
		t.Fatalf("expected 3 bands, got %d", len(r.Bands))
	}
	if r.Bands[2].UpTo != nil {
		t.Error("last band must be unbounded")
	}
}

// TestZeroTransactionSafety proves every structure tolerates zero transactions
func TestZeroTransactionSafety(t *testing.T) {
	params := map[types.FeeKind]string{
		types.FeeMonthly:        "1000",
		types.FeePerTransaction: "0.5",
		types.FeePercentage:     "0.2",
		types.FeeCorridor:       "100",
		types.FeeRetainer:       "50",
		types.FeeMinimum:        "10",
		types.FeeMaximum:        "5000",
	}
	for _, structure := range types.AllStructures() {
		t.Run(string(structure), func(t *testing.T) {
			r := Calculate(model(structure, params), inputs("250000", 0))
			if !r.PerTransactionCost.IsZero() {
				t.Errorf("expected zero per-transaction cost, got %s", r.PerTransactionCost)
			}
		})
	}
}

// TestFixedMonthlyIsolation proves usage never moves fixed-monthly revenue
func TestFixedMonthlyIsolation(t *testing.T) {
	m := model(types.StructureFixedMonthly, map[types.FeeKind]string{types.FeeMonthly: "3500", types.FeePercentage: "0.5"})
	for _, in := range []types.CalculationInputs{
		inputs("10000", 100),
		inputs("10000000", 100000),
		inputs("0", 0),
	} {
		r := Calculate(m, in)
		if !r.MonthlyRevenue.Equal(d("3500")) {
			t.Errorf("volume %s / %d tx: expected 3500, got %s", in.MonthlyVolume, in.TransactionCount, r.MonthlyRevenue)
		}
	}

	if r := Calculate(model(types.StructureFixedMonthly, nil), inputs("10000", 100)); !r.MonthlyRevenue.IsZero() {
		t.Errorf("expected zero revenue without monthly fee, got %s", r.MonthlyRevenue)
	}
}

func TestPerTransactionCost(t *testing.T) {
	m := model(types.StructureHybrid, map[types.FeeKind]string{types.FeeMonthly: "1000"})
	r := Calculate(m, inputs("1000", 3))
	want := d("1000").Div(d("3"))
	if !r.PerTransactionCost.Equal(want) {
		t.Errorf("expected %s, got %s", want, r.PerTransactionCost)
	}
	if !r.AnnualRevenue().Equal(d("12000")) {
		t.Errorf("expected annual revenue 12000, got %s", r.AnnualRevenue())
	}
}

// TestHybridZeroParameterIsBooked proves a parameter set to zero is kept as a line item
func TestHybridZeroParameterIsBooked(t *testing.T) {
	m := model(types.StructureHybrid, map[types.FeeKind]string{types.FeeMonthly: "0", types.FeePercentage: "0.1"})
	r := Calculate(m, inputs("100000", 10))

	assertBreakdown(t, r, expectation{fixed: "0", variable: "0", volume: "100", additional: "0", revenue: "100"})
	fixed := r.ComponentsIn(types.BucketFixed)
	if len(fixed) != 1 || fixed[0].Kind != types.FeeMonthly || !fixed[0].Amount.IsZero() {
		t.Errorf("expected one zero monthly_fee component, got %+v", fixed)
	}
}

// TestResultInvariants proves bucket, component and per-transaction invariants
// across every structure and a grid of inputs, with and without clamps
func TestResultInvariants(t *testing.T) {
	params := []map[types.FeeKind]string{
		{
			types.FeePerTransaction: "0.5",
			types.FeePercentage:     "0.2",
			types.FeeMonthly:        "300",
			types.FeeCorridor:       "50",
			types.FeeRetainer:       "1000",
		},
		{
			types.FeePerTransaction: "0.5",
			types.FeePercentage:     "0.2",
			types.FeeMinimum:        "100",
			types.FeeMaximum:        "900",
		},
		{
			types.FeeMonthly: "0",
			types.FeeMinimum: "2500",
		},
	}
	volumes := []string{"0", "50000", "750000", "2000000"}
	counts := []int64{0, 1200, 60000}
	discount := types.VolumeDiscount{Threshold: 1000, DiscountPercentage: d("12.5")}

	for _, structure := range types.AllStructures() {
		for i, p := range params {
			m := model(structure, p, discount)
			for _, v := range volumes {
				for _, n := range counts {
					in := inputs(v, n)
					for _, violation := range guards.CheckResults(m, in, Calculate(m, in)) {
						t.Errorf("%s params#%d volume=%s tx=%d: %v", structure, i, v, n, violation)
					}
				}
			}
		}
	}
}

// TestZeroBoundsMatchAbsentBounds proves a minimum or maximum of zero prices
// exactly like no minimum or maximum
func TestZeroBoundsMatchAbsentBounds(t *testing.T) {
	base := map[types.FeeKind]string{
		types.FeePerTransaction: "0.25",
		types.FeePercentage:     "0.1",
		types.FeeMonthly:        "300",
	}
	tests := []struct {
		name   string
		inputs types.CalculationInputs
	}{
		{"positive total", inputs("1000000", 5000)},
		{"negative total", inputs("-50000", 10)},
		{"zero total", inputs("0", 0)},
	}

	for _, structure := range types.AllStructures() {
		for _, tt := range tests {
			t.Run(string(structure)+"/"+tt.name, func(t *testing.T) {
				absent := Calculate(model(structure, base), tt.inputs)

				withZeros := map[types.FeeKind]string{types.FeeMinimum: "0", types.FeeMaximum: "0"}
				for k, v := range base {
					withZeros[k] = v
				}
				zero := Calculate(model(structure, withZeros), tt.inputs)

				assertBreakdown(t, zero, expectation{
					fixed:      absent.Breakdown.FixedFees.String(),
					variable:   absent.Breakdown.VariableFees.String(),
					volume:     absent.Breakdown.VolumeFees.String(),
					additional: absent.Breakdown.AdditionalFees.String(),
					revenue:    absent.MonthlyRevenue.String(),
				})
				if len(zero.Components) != len(absent.Components) {
					t.Errorf("zero bounds booked %d components, want %d", len(zero.Components), len(absent.Components))
				}
			})
		}
	}
}

func TestCalculateNilModel(t *testing.T) {
	r := Calculate(nil, inputs("1000", 10))
	if !r.MonthlyRevenue.IsZero() || !r.PerTransactionCost.IsZero() {
		t.Errorf("expected zero results for nil model, got %s / %s", r.MonthlyRevenue, r.PerTransactionCost)
	}
}

// TestCalculateDeterministic proves repeated calls produce identical results
func TestCalculateDeterministic(t *testing.T) {
	m := model(types.StructurePerTransaction,
		map[types.FeeKind]string{types.FeePerTransaction: "0.25", types.FeeMinimum: "0.2"},
		types.VolumeDiscount{Threshold: 50000, DiscountPercentage: d("10")},
		types.VolumeDiscount{Threshold: 10000, DiscountPercentage: d("5")},
	)
	in := inputs("1000000", 75000)

	first, err := sonic.ConfigStd.Marshal(Calculate(m, in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, err := sonic.ConfigStd.Marshal(Calculate(m, in))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(next) != string(first) {
			t.Fatalf("run %d differs:\n%s\n%s", i, first, next)
		}
	}
}

// TestCalculateDoesNotMutateModel proves the engine only reads its arguments
func TestCalculateDoesNotMutateModel(t *testing.T) {
	m := model(types.StructureHybrid, map[types.FeeKind]string{types.FeePerTransaction: "1", types.FeeMaximum: "5"})
	before := m.Clone()
	Calculate(m, inputs("0", 100))

	if len(m.Parameters) != len(before.Parameters) {
		t.Fatalf("parameters changed: %v", m.Parameters)
	}
	for k, v := range before.Parameters {
		if !m.Parameters.Value(k).Equal(v) {
			t.Errorf("%s changed from %s to %s", k, v, m.Parameters.Value(k))
		}
	}
}
