package output

import (
	"fmt"
	"io"
	"strings"

	"pricing-calculator/core/types"
)

const boxWidth = 73

var bucketLabels = []struct {
	bucket types.Bucket
	label  string
}{
	{types.BucketFixed, "Fixed Fees"},
	{types.BucketVariable, "Variable Fees"},
	{types.BucketVolume, "Volume Fees"},
	{types.BucketAdditional, "Additional Fees"},
}

// CLIFormatter renders a boxed summary table
type CLIFormatter struct {
	opts Options
}

// NewCLIFormatter creates a CLI table formatter
func NewCLIFormatter(opts Options) *CLIFormatter {
	if opts.Money == nil {
		opts.Money = DefaultMoney()
	}
	return &CLIFormatter{opts: opts}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the table to w
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	b := &boxWriter{w: w}
	m := f.opts.Money

	b.rule("┌", "┐")
	b.title("PRICING CALCULATION")
	b.rule("├", "┤")

	if report.Client != nil {
		b.row("Client", fmt.Sprintf("%s (%s)", report.Client.Name, report.Client.ID))
	}
	if report.Model != nil {
		b.row("Model", report.Model.Name)
		b.row("Structure", string(report.Model.BaseStructure))
	}
	in := report.Inputs.Resolved()
	b.row("Monthly volume", m.Format(in.MonthlyVolume))
	b.row("Transactions", m.Count(in.TransactionCount))

	res := report.Results
	if res == nil {
		b.rule("└", "┘")
		return b.err
	}

	b.rule("├", "┤")
	for _, bl := range bucketLabels {
		b.row(bl.label, m.Format(res.Breakdown.Get(bl.bucket)))
		if !f.opts.ShowDetails {
			continue
		}
		for _, c := range res.ComponentsIn(bl.bucket) {
			b.item(c.Kind.Label(), m.Format(c.Amount))
		}
	}

	if f.opts.ShowDetails && len(res.Bands) > 0 {
		b.rule("├", "┤")
		for _, band := range res.Bands {
			b.row(bandLabel(m, band), m.Format(band.Amount))
		}
	}

	if f.opts.ShowDetails && len(res.Discounts) > 0 {
		b.rule("├", "┤")
		for _, d := range res.Discounts {
			label := fmt.Sprintf("%s%% off from %s transactions", d.DiscountPercentage, m.Count(d.Threshold))
			b.row(label, m.Number(d.FeeAfter, 4))
		}
	}

	b.rule("├", "┤")
	b.row("TOTAL MONTHLY REVENUE", m.Format(res.MonthlyRevenue))
	b.row("PER TRANSACTION COST", m.Format(res.PerTransactionCost))
	b.row("ANNUAL REVENUE PROJECTION", m.Format(report.AnnualRevenue))
	b.rule("└", "┘")

	for _, warn := range report.Warnings {
		b.printf("Warning: %s\n", warn)
	}
	return b.err
}

func bandLabel(m *Money, band types.BandCharge) string {
	if band.UpTo == nil {
		return fmt.Sprintf("Band %s+ at %s%%", m.Count(band.From.IntPart()), band.Rate)
	}
	return fmt.Sprintf("Band %s-%s at %s%%", m.Count(band.From.IntPart()), m.Count(band.UpTo.IntPart()), band.Rate)
}

// boxWriter keeps the first write error so Render can report it once
type boxWriter struct {
	w   io.Writer
	err error
}

func (b *boxWriter) printf(format string, args ...interface{}) {
	if b.err != nil {
		return
	}
	_, b.err = fmt.Fprintf(b.w, format, args...)
}

func (b *boxWriter) rule(left, right string) {
	b.printf("%s%s%s\n", left, strings.Repeat("─", boxWidth), right)
}

func (b *boxWriter) title(s string) {
	pad := boxWidth - len(s)
	b.printf("│%s%s%s│\n", strings.Repeat(" ", pad/2), s, strings.Repeat(" ", pad-pad/2))
}

func (b *boxWriter) row(label, value string) {
	b.printf("│ %-50s %20s │\n", truncate(label, 50), value)
}

func (b *boxWriter) item(label, value string) {
	b.printf("│   └─ %-46s %20s │\n", truncate(label, 46), value)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

