package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders a report suitable for pull requests and docs
type MarkdownFormatter struct {
	opts Options
}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter(opts Options) *MarkdownFormatter {
	if opts.Money == nil {
		opts.Money = DefaultMoney()
	}
	return &MarkdownFormatter{opts: opts}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes markdown to w
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	var sb strings.Builder
	m := f.opts.Money

	sb.WriteString("# Pricing Calculation\n\n")
	if report.Client != nil {
		fmt.Fprintf(&sb, "**Client:** %s (`%s`)  \n", report.Client.Name, report.Client.ID)
	}
	if report.Model != nil {
		fmt.Fprintf(&sb, "**Model:** %s  \n", report.Model.Name)
		fmt.Fprintf(&sb, "**Structure:** `%s`\n\n", report.Model.BaseStructure)
	}

	res := report.Results
	if res != nil {
		sb.WriteString("| Bucket | Amount |\n")
		sb.WriteString("|--------|-------:|\n")
		for _, bl := range bucketLabels {
			fmt.Fprintf(&sb, "| %s | %s |\n", bl.label, m.Format(res.Breakdown.Get(bl.bucket)))
		}
		fmt.Fprintf(&sb, "| **Total monthly revenue** | **%s** |\n\n", m.Format(res.MonthlyRevenue))

		fmt.Fprintf(&sb, "- Per transaction cost: %s\n", m.Format(res.PerTransactionCost))
		fmt.Fprintf(&sb, "- Annual revenue projection: %s\n", m.Format(report.AnnualRevenue))

		if f.opts.ShowDetails && len(res.Components) > 0 {
			sb.WriteString("\n## Line items\n\n")
			sb.WriteString("| Fee | Bucket | Formula | Amount |\n")
			sb.WriteString("|-----|--------|---------|-------:|\n")
			for _, c := range res.Components {
				fmt.Fprintf(&sb, "| %s | %s | `%s` | %s |\n", c.Kind.Label(), c.Bucket, c.Formula, m.Format(c.Amount))
			}
		}
	}

	if len(report.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, warn := range report.Warnings {
			fmt.Fprintf(&sb, "- %s\n", warn)
		}
	}

	fmt.Fprintf(&sb, "\n_Run %s at %s, fingerprint `%s`_\n",
		report.Metadata.RunID, report.Metadata.Timestamp, shortHash(report.Metadata.Fingerprint))

	_, err := io.WriteString(w, sb.String())
	return err
}

func shortHash(h string) string {
	if len(h) > 16 {
		return h[:16]
	}
	return h
}
