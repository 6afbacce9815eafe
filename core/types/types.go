// Package types defines the pricing domain types shared across all layers.
// This package contains NO pricing formulas - only type definitions and
// the small helpers needed to construct and copy them.
package types

import (
	"strings"
	"unicode"

	"pricing-calculator/internal/errors"
)

// BaseStructure selects the formula family a pricing model uses
type BaseStructure string

const (
	StructurePerTransaction BaseStructure = "per_transaction"
	StructurePercentage     BaseStructure = "percentage"
	StructureFixedMonthly   BaseStructure = "fixed_monthly"
	StructureHybrid         BaseStructure = "hybrid"
	StructureTiered         BaseStructure = "tiered"
)

// AllStructures returns every base structure in display order
func AllStructures() []BaseStructure {
	return []BaseStructure{
		StructurePerTransaction,
		StructurePercentage,
		StructureFixedMonthly,
		StructureHybrid,
		StructureTiered,
	}
}

// String returns the string representation
func (s BaseStructure) String() string {
	return string(s)
}

// Valid checks if the structure is a known base structure
func (s BaseStructure) Valid() bool {
	switch s {
	case StructurePerTransaction, StructurePercentage, StructureFixedMonthly, StructureHybrid, StructureTiered:
		return true
	default:
		return false
	}
}

// ParseBaseStructure parses "per_transaction", "Per-Transaction", "perTransaction", ...
func ParseBaseStructure(s string) (BaseStructure, error) {
	bs := BaseStructure(normalizeIdentifier(s))
	if !bs.Valid() {
		return "", errors.Inputf("unknown base structure %q", s)
	}
	return bs, nil
}

// FeeKind names a category of charge carried in a model's parameters
type FeeKind string

const (
	FeeFixed          FeeKind = "fixed_fee"
	FeePercentage     FeeKind = "percentage_fee"
	FeeMinimum        FeeKind = "minimum_fee"
	FeeMaximum        FeeKind = "maximum_fee"
	FeeMonthly        FeeKind = "monthly_fee"
	FeePerTransaction FeeKind = "per_transaction_fee"
	FeeSetup          FeeKind = "setup_fee"
	FeeRetainer       FeeKind = "retainer_fee"
	FeeCorridor       FeeKind = "corridor_fee"
)

// AllFeeKinds returns the recognized fee kinds in editor order
func AllFeeKinds() []FeeKind {
	return []FeeKind{
		FeeFixed,
		FeePercentage,
		FeeMinimum,
		FeeMaximum,
		FeeMonthly,
		FeePerTransaction,
		FeeSetup,
		FeeRetainer,
		FeeCorridor,
	}
}

// String returns the string representation
func (k FeeKind) String() string {
	return string(k)
}

// Valid checks if the fee kind is recognized
func (k FeeKind) Valid() bool {
	for _, known := range AllFeeKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// IsPercentage reports whether values of this kind are percentages (0.15 means 0.15%)
func (k FeeKind) IsPercentage() bool {
	return k == FeePercentage
}

// Label returns a human-readable label, e.g. "Per Transaction Fee"
func (k FeeKind) Label() string {
	words := strings.Split(string(k), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseFeeKind accepts snake_case ("per_transaction_fee") and camelCase ("perTransactionFee")
func ParseFeeKind(s string) (FeeKind, error) {
	k := FeeKind(normalizeIdentifier(s))
	if !k.Valid() {
		return "", errors.Inputf("unknown fee kind %q", s)
	}
	return k, nil
}

// Category groups client types in the catalog
type Category string

const (
	CategoryFinancialInstitution Category = "financial_institution"
	CategoryCrypto               Category = "crypto"
	CategoryB2BPayments          Category = "b2b_payments"
	CategoryPayroll              Category = "payroll"
	CategoryCorporate            Category = "corporate"
	CategorySaaS                 Category = "saas"
	CategoryRealEstate           Category = "real_estate"
	CategoryNeobank              Category = "neobank"
	CategoryRemittance           Category = "remittance"
	CategoryOther                Category = "other"
)

// Valid checks if the category is known
func (c Category) Valid() bool {
	switch c {
	case CategoryFinancialInstitution, CategoryCrypto, CategoryB2BPayments, CategoryPayroll,
		CategoryCorporate, CategorySaaS, CategoryRealEstate, CategoryNeobank,
		CategoryRemittance, CategoryOther:
		return true
	default:
		return false
	}
}

// Label returns "real estate" for "real_estate"
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// RiskLevel is the compliance risk attached to a client type
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid checks if the risk level is known
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// normalizeIdentifier lowers s and converts camelCase, spaces and dashes to snake_case.
func normalizeIdentifier(s string) string {
	var b strings.Builder
	s = strings.TrimSpace(s)
	for i, r := range s {
		switch {
		case r == '-' || r == ' ':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 && s[i-1] != '_' && s[i-1] != '-' && s[i-1] != ' ' && !unicode.IsUpper(rune(s[i-1])) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
