package output

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pricing-calculator/internal/errors"
)

// Money formats amounts in one currency with locale-aware digit grouping
type Money struct {
	unit    currency.Unit
	printer *message.Printer
	symbol  string
	point   string
}

// NewMoney creates a formatter for an ISO 4217 code and a BCP 47 locale
func NewMoney(code, locale string) (*Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, errors.Config("invalid currency "+code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, errors.Config("invalid locale "+locale, err)
	}
	p := message.NewPrinter(tag)
	return &Money{
		unit:    unit,
		printer: p,
		symbol:  p.Sprint(currency.NarrowSymbol(unit)),
		point:   decimalPoint(p),
	}, nil
}

// DefaultMoney formats euros in en-US
func DefaultMoney() *Money {
	m, err := NewMoney("EUR", "en-US")
	if err != nil {
		panic(err)
	}
	return m
}

// Code returns the ISO currency code
func (m *Money) Code() string {
	return m.unit.String()
}

// Format renders an amount with two fraction digits, e.g. €1,500.00
func (m *Money) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + m.symbol + m.Number(amount, 2)
}

// Number renders a plain grouped number with fixed fraction digits. The
// digits come from the decimal itself; only separators come from the locale.
func (m *Money) Number(v decimal.Decimal, places int32) string {
	digits := v.StringFixed(places)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	whole, frac := digits, ""
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		whole, frac = digits[:i], digits[i+1:]
	}
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = m.printer.Sprintf("%d", n)
	}
	if frac == "" {
		return sign + whole
	}
	return sign + whole + m.point + frac
}

// Count renders a grouped integer, e.g. 5,000
func (m *Money) Count(n int64) string {
	return m.printer.Sprintf("%d", n)
}

// decimalPoint extracts the locale's fraction separator from a formatted 1.5
func decimalPoint(p *message.Printer) string {
	s := p.Sprintf("%.1f", 1.5)
	return strings.TrimSuffix(strings.TrimPrefix(s, "1"), "5")
}
