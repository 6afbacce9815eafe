// Package output provides report formatting.
// This package produces human and machine-readable views of a calculation.
package output

import (
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pricing-calculator/core/determinism"
	"pricing-calculator/core/types"
	"pricing-calculator/core/usage"
	"pricing-calculator/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report contains everything a formatter renders for one calculation
type Report struct {
	// Client is the catalog client type the model came from, if any
	Client *types.ClientType `json:"client,omitempty"`

	// Model is the pricing model that was calculated
	Model *types.PricingModel `json:"model"`

	// Inputs are the inputs as supplied
	Inputs types.CalculationInputs `json:"inputs"`

	// Results is the engine output
	Results *types.CalculationResults `json:"results"`

	// AnnualRevenue is MonthlyRevenue projected over twelve months
	AnnualRevenue decimal.Decimal `json:"annual_revenue"`

	// Warnings lists out-of-range inputs and other advisories
	Warnings []string `json:"warnings,omitempty"`

	// Metadata contains execution context
	Metadata Metadata `json:"metadata"`
}

// Metadata contains execution context
type Metadata struct {
	// RunID uniquely identifies this calculation run
	RunID string `json:"run_id"`

	// Timestamp is when the calculation was performed
	Timestamp string `json:"timestamp"`

	// Version is the tool version
	Version string `json:"version"`

	// Currency is the display currency
	Currency string `json:"currency"`

	// Fingerprint hashes the model and inputs the results were computed from
	Fingerprint string `json:"fingerprint"`
}

// NewReport assembles a report and stamps it with a fresh run id
func NewReport(client *types.ClientType, model *types.PricingModel, inputs types.CalculationInputs, results *types.CalculationResults, version, currency string) *Report {
	r := &Report{
		Client:  client,
		Model:   model,
		Inputs:  inputs,
		Results: results,
		Metadata: Metadata{
			RunID:     uuid.New().String(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   version,
			Currency:  currency,
		},
	}
	if results != nil {
		r.AnnualRevenue = results.AnnualRevenue()
	}
	if h, err := determinism.Fingerprint(model, inputs); err == nil {
		r.Metadata.Fingerprint = h.Hex()
	}
	return r
}

// AddViolations records out-of-range inputs as warnings
func (r *Report) AddViolations(violations []usage.Violation) {
	for _, v := range violations {
		r.Warnings = append(r.Warnings, v.String())
	}
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry with the cli, json and markdown formatters
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	_ = r.Register(NewCLIFormatter(opts))
	_ = r.Register(NewJSONFormatter())
	_ = r.Register(NewMarkdownFormatter(opts))
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) error {
	if _, exists := r.formatters[formatter.Format()]; exists {
		return errors.Newf(errors.TypeInternal, "formatter already registered: %s", formatter.Format())
	}
	r.formatters[formatter.Format()] = formatter
	return nil
}

// Get returns a formatter for a format type
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotSupported("output format " + string(format))
	}
	return f, nil
}

// Formats returns the registered formats, sorted
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Options control human-readable formatters
type Options struct {
	// ShowDetails includes line items, bands and discounts
	ShowDetails bool

	// Money formats currency amounts
	Money *Money
}
