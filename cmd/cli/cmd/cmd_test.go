package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricing-calculator/core/types"
	"pricing-calculator/internal/errors"
)

// execute runs the root command with fresh flag state and a throwaway config path
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, c := range []*cobra.Command{rootCmd, calculateCmd, clientsCmd} {
		resetFlags(c.Flags())
	}
	resetFlags(rootCmd.PersistentFlags())
	paramFlags, unsetFlags, discountFlag = nil, nil, nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.json")))

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Value.Type() != "stringArray" {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

func decodeReport(t *testing.T, out string) map[string]interface{} {
	t.Helper()
	var report map[string]interface{}
	require.NoError(t, sonic.UnmarshalString(out, &report))
	return report
}

func monthlyRevenue(t *testing.T, report map[string]interface{}) interface{} {
	t.Helper()
	results, ok := report["results"].(map[string]interface{})
	require.True(t, ok)
	return results["monthly_revenue"]
}

// TestParseParam proves --param accepts snake_case and camelCase kinds
func TestParseParam(t *testing.T) {
	tests := []struct {
		raw     string
		kind    types.FeeKind
		value   string
		wantErr bool
	}{
		{raw: "percentage_fee=1.5", kind: types.FeePercentage, value: "1.5"},
		{raw: "perTransactionFee = 0.3", kind: types.FeePerTransaction, value: "0.3"},
		{raw: "minimum_fee=0", kind: types.FeeMinimum, value: "0"},
		{raw: "minimum_fee", wantErr: true},
		{raw: "surcharge=1", wantErr: true},
		{raw: "monthly_fee=lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			kind, value, err := parseParam(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.value, value.String())
		})
	}
}

// TestParseDiscount proves --discount takes a whole threshold and a percentage
func TestParseDiscount(t *testing.T) {
	d, err := parseDiscount("10000:5")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), d.Threshold)
	assert.Equal(t, "5", d.DiscountPercentage.String())

	for _, raw := range []string{"10000", "10.5:5", "x:5", "100:y"} {
		_, err := parseDiscount(raw)
		assert.Error(t, err, raw)
	}
}

// TestCalculateClient proves a catalog client prices with the default inputs
func TestCalculateClient(t *testing.T) {
	out, err := execute(t, "calculate", "b2b_no_minimum", "--format", "json")
	require.NoError(t, err)

	report := decodeReport(t, out)
	assert.Equal(t, "1500", monthlyRevenue(t, report))
	assert.Equal(t, "18000", report["annual_revenue"])
}

// TestCalculateInputFlags proves input flags replace the defaults
func TestCalculateInputFlags(t *testing.T) {
	out, err := execute(t, "calculate", "b2b_no_minimum", "--volume", "2000000", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "3000", monthlyRevenue(t, decodeReport(t, out)))
}

// TestCalculateCustomModel proves a model can be built entirely from flags
func TestCalculateCustomModel(t *testing.T) {
	out, err := execute(t, "calculate",
		"--structure", "per_transaction",
		"--param", "per_transaction_fee=0.3",
		"--discount", "5000:10",
		"--format", "json")
	require.NoError(t, err)

	// 5000 tx at 0.3 less 10%
	assert.Equal(t, "1350", monthlyRevenue(t, decodeReport(t, out)))
}

// TestCalculateCLITable proves the default format is the boxed table
func TestCalculateCLITable(t *testing.T) {
	out, err := execute(t, "calculate", "b2b_no_minimum")
	require.NoError(t, err)
	assert.Contains(t, out, "TOTAL MONTHLY REVENUE")
	assert.Contains(t, out, "1,500.00")
}

// TestCalculateErrors proves bad invocations fail with typed errors
func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		errType errors.Type
	}{
		{"no client or structure", []string{"calculate"}, errors.TypeInput},
		{"unknown client", []string{"calculate", "nobody"}, errors.TypeNotFound},
		{"unknown structure", []string{"calculate", "--structure", "weekly"}, errors.TypeInput},
		{"strict range check", []string{"calculate", "b2b_no_minimum", "--users", "60000", "--strict"}, errors.TypeInput},
		{"fractional count", []string{"calculate", "b2b_no_minimum", "--transactions", "10.5"}, errors.TypeInput},
		{"unknown format", []string{"calculate", "b2b_no_minimum", "--format", "xml"}, errors.TypeNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.errType), "got %v", err)
		})
	}
}

// TestClients proves the catalog listing and category filter
func TestClients(t *testing.T) {
	out, err := execute(t, "clients")
	require.NoError(t, err)
	assert.Contains(t, out, "psp_merchants")
	assert.Contains(t, out, "10 client types")

	out, err = execute(t, "clients", "--category", "crypto")
	require.NoError(t, err)
	assert.Contains(t, out, "crypto_platform")
	assert.NotContains(t, out, "psp_merchants")

	_, err = execute(t, "clients", "--category", "casino")
	assert.Error(t, err)
}

// TestShow proves a client's model is printed with its parameters
func TestShow(t *testing.T) {
	out, err := execute(t, "show", "b2b_no_minimum")
	require.NoError(t, err)
	assert.Contains(t, out, "Financial Institution (B2B Only)")
	assert.Contains(t, out, "Parameters:")
	assert.Contains(t, out, "0.15%")
}

// TestValidate proves the built-in catalog validates and a bad file does not
func TestValidate(t *testing.T) {
	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "10 client types valid")

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.hcl")
	bad := []byte(`client "a" {
  name = "A"
  pricing_model "m" {
    name           = "M"
    base_structure = "hybrid"
    parameters {
      minimum_fee = 100
      maximum_fee = 50
    }
  }
}`)
	require.NoError(t, writeFile(path, bad))

	out, err = execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "minimum_fee 100 exceeds maximum_fee 50")
}

// TestVersion proves the version command prints Version
func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
