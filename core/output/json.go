package output

import (
	"io"

	"github.com/bytedance/sonic"

	"pricing-calculator/internal/errors"
)

// JSONFormatter renders the full report as indented JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the report to w. Amounts are encoded as decimal strings.
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	data, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Internal("failed to encode report", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Internal("failed to write report", err)
	}
	return nil
}
