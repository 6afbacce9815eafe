// Package cmd - calculate command
package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricing-calculator/core/output"
	"pricing-calculator/core/session"
	"pricing-calculator/core/types"
	"pricing-calculator/core/usage"
	"pricing-calculator/internal/config"
	"pricing-calculator/internal/errors"
	"pricing-calculator/internal/logging"
)

var (
	outputFormat string
	showDetails  bool
	strictInputs bool
	structure    string
	paramFlags   []string
	unsetFlags   []string
	discountFlag []string
)

// inputFlags maps calculate flags to the input they set
var inputFlags = []struct {
	flag  string
	field usage.Field
	usage string
}{
	{"volume", usage.FieldMonthlyVolume, "monthly volume"},
	{"transactions", usage.FieldTransactionCount, "monthly transaction count"},
	{"avg-value", usage.FieldAverageTransactionValue, "average transaction value"},
	{"corridors", usage.FieldCorridorCount, "number of payment corridors"},
	{"users", usage.FieldUserCount, "number of users"},
	{"api-calls", usage.FieldAPICalls, "monthly API calls"},
}

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate [client-id]",
	Short: "Calculate monthly revenue for a client type or a custom model",
	Long: `Calculate monthly revenue, the fee breakdown and the annual projection.

Start from a catalog client type, or from an empty model with --structure.
Inputs default to 1,000,000 volume, 5,000 transactions at 200 average,
1 corridor, 1,000 users and 10,000 API calls.

Examples:
  pricing-calculator calculate psp_merchants
  pricing-calculator calculate psp_merchants --transactions 60000
  pricing-calculator calculate b2b_no_minimum --param maximum_fee=1000
  pricing-calculator calculate gambling_affiliate --unset minimum_fee
  pricing-calculator calculate --structure per_transaction --param per_transaction_fee=0.3 --discount 10000:5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalculate,
}

func init() {
	defaults := usage.Defaults()
	for _, f := range inputFlags {
		calculateCmd.Flags().String(f.flag, inputValue(defaults, f.field), f.usage)
	}
	calculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	calculateCmd.Flags().BoolVarP(&showDetails, "details", "d", true, "show line items, bands and discounts")
	calculateCmd.Flags().BoolVar(&strictInputs, "strict", false, "fail when an input is outside its usual range")
	calculateCmd.Flags().StringVarP(&structure, "structure", "s", "", "base structure (per_transaction, percentage, fixed_monthly, hybrid, tiered)")
	calculateCmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "set a fee parameter, kind=value (repeatable)")
	calculateCmd.Flags().StringArrayVar(&unsetFlags, "unset", nil, "remove a fee parameter (repeatable)")
	calculateCmd.Flags().StringArrayVar(&discountFlag, "discount", nil, "append a volume discount, threshold:percent (repeatable)")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	sess := session.New(cat)
	switch {
	case len(args) > 0:
		if err := sess.SelectClient(args[0]); err != nil {
			return err
		}
	case structure != "":
		sess.UseModel(&types.PricingModel{
			ID:         "custom",
			Name:       "Custom Model",
			Parameters: types.Parameters{},
		})
	default:
		return errors.Input("a client id or --structure is required")
	}

	if err := applyEdits(cmd, sess); err != nil {
		return err
	}

	violations := usage.Check(sess.Inputs(), usage.DefaultBounds())
	if strictInputs || cfg.Inputs.Strict {
		if err := usage.Enforce(sess.Inputs(), usage.DefaultBounds()); err != nil {
			return err
		}
	}
	for _, v := range violations {
		logging.Warn("input outside usual range", zap.String("violation", v.String()))
	}

	money, err := output.NewMoney(cfg.Output.Currency, cfg.Output.Locale)
	if err != nil {
		return err
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.DefaultRegistry(output.Options{
		ShowDetails: showDetails && cfg.Output.ShowDetails,
		Money:       money,
	}).Get(output.Format(format))
	if err != nil {
		return err
	}

	report := output.NewReport(sess.Client(), sess.Model(), sess.Inputs(), sess.Results(), Version, money.Code())
	report.AddViolations(violations)

	logging.Debug("calculation complete",
		zap.String("run_id", report.Metadata.RunID),
		zap.String("model", sess.Model().ID),
		zap.String("monthly_revenue", sess.Results().MonthlyRevenue.String()))

	return formatter.Render(cmd.OutOrStdout(), report)
}

// applyEdits replays the command-line edits on the session: structure,
// inputs, parameters, unset parameters and discounts, in that order.
func applyEdits(cmd *cobra.Command, sess *session.Session) error {
	if structure != "" {
		s, err := types.ParseBaseStructure(structure)
		if err != nil {
			return err
		}
		if err := sess.SetStructure(s); err != nil {
			return err
		}
	}

	for _, f := range inputFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		raw, _ := cmd.Flags().GetString(f.flag)
		value, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return errors.Inputf("--%s: %q is not a number", f.flag, raw)
		}
		if err := sess.SetInput(f.field, value); err != nil {
			return err
		}
	}

	for _, raw := range paramFlags {
		kind, value, err := parseParam(raw)
		if err != nil {
			return err
		}
		if err := sess.SetParameter(kind, value); err != nil {
			return err
		}
	}

	for _, raw := range unsetFlags {
		kind, err := types.ParseFeeKind(raw)
		if err != nil {
			return err
		}
		if err := sess.UnsetParameter(kind); err != nil {
			return err
		}
	}

	for _, raw := range discountFlag {
		d, err := parseDiscount(raw)
		if err != nil {
			return err
		}
		if err := sess.AddDiscount(d); err != nil {
			return err
		}
	}
	return nil
}

// parseParam parses kind=value
func parseParam(raw string) (types.FeeKind, decimal.Decimal, error) {
	name, val, ok := strings.Cut(raw, "=")
	if !ok {
		return "", decimal.Zero, errors.Inputf("--param %q: expected kind=value", raw)
	}
	kind, err := types.ParseFeeKind(strings.TrimSpace(name))
	if err != nil {
		return "", decimal.Zero, err
	}
	value, err := decimal.NewFromString(strings.TrimSpace(val))
	if err != nil {
		return "", decimal.Zero, errors.Inputf("--param %q: %q is not a number", raw, val)
	}
	return kind, value, nil
}

// parseDiscount parses threshold:percent
func parseDiscount(raw string) (types.VolumeDiscount, error) {
	var d types.VolumeDiscount
	thr, pct, ok := strings.Cut(raw, ":")
	if !ok {
		return d, errors.Inputf("--discount %q: expected threshold:percent", raw)
	}
	threshold, err := decimal.NewFromString(strings.TrimSpace(thr))
	if err != nil || !threshold.IsInteger() {
		return d, errors.Inputf("--discount %q: threshold must be a whole number", raw)
	}
	percent, err := decimal.NewFromString(strings.TrimSpace(pct))
	if err != nil {
		return d, errors.Inputf("--discount %q: %q is not a number", raw, pct)
	}
	d.Threshold = threshold.IntPart()
	d.DiscountPercentage = percent
	return d, nil
}

// inputValue renders the resolved value of field for flag defaults
func inputValue(in types.CalculationInputs, field usage.Field) string {
	r := in.Resolved()
	switch field {
	case usage.FieldMonthlyVolume:
		return r.MonthlyVolume.String()
	case usage.FieldTransactionCount:
		return fmt.Sprint(r.TransactionCount)
	case usage.FieldAverageTransactionValue:
		return r.AverageTransactionValue.String()
	case usage.FieldCorridorCount:
		return fmt.Sprint(r.CorridorCount)
	case usage.FieldUserCount:
		return fmt.Sprint(r.UserCount)
	case usage.FieldAPICalls:
		return fmt.Sprint(r.APICalls)
	default:
		return ""
	}
}
