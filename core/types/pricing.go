// Package types - Pricing model types
package types

import (
	"github.com/shopspring/decimal"
)

// Parameters maps a fee kind to its value. A kind is "set" when its key is
// present; absent kinds contribute nothing. Values are not validated here.
type Parameters map[FeeKind]decimal.Decimal

// Get returns the value for kind and whether it is set
func (p Parameters) Get(kind FeeKind) (decimal.Decimal, bool) {
	v, ok := p[kind]
	return v, ok
}

// Value returns the value for kind, or zero when it is not set
func (p Parameters) Value(kind FeeKind) decimal.Decimal {
	return p[kind]
}

// Has reports whether kind is set
func (p Parameters) Has(kind FeeKind) bool {
	_, ok := p[kind]
	return ok
}

// Set sets kind to value
func (p Parameters) Set(kind FeeKind, value decimal.Decimal) {
	p[kind] = value
}

// Unset removes kind
func (p Parameters) Unset(kind FeeKind) {
	delete(p, kind)
}

// Clone returns an independent copy
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Kinds returns the set kinds in editor order, followed by any unrecognized kinds
func (p Parameters) Kinds() []FeeKind {
	kinds := make([]FeeKind, 0, len(p))
	for _, k := range AllFeeKinds() {
		if p.Has(k) {
			kinds = append(kinds, k)
		}
	}
	for k := range p {
		if !k.Valid() {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// VolumeDiscount reduces the per-transaction fee once the monthly
// transaction count reaches Threshold.
type VolumeDiscount struct {
	// Threshold is the transaction count at which the discount applies
	Threshold int64 `json:"threshold"`

	// DiscountPercentage is the reduction in percent (5 means 5%)
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// PricingModel is a declarative fee-structure specification.
//
// VolumeDiscounts are applied in the order they are declared, never sorted
// by threshold. Each discount whose threshold is met compounds onto the fee
// produced by the discounts before it, and the applied-discount trail in the
// results follows the same order.
type PricingModel struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	TransactionType string           `json:"transaction_type,omitempty"`
	Description     string           `json:"description,omitempty"`
	BaseStructure   BaseStructure    `json:"base_structure"`
	Parameters      Parameters       `json:"parameters"`
	VolumeDiscounts []VolumeDiscount `json:"volume_discounts,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

// Clone returns a deep copy so edits never leak into catalog entries
func (m *PricingModel) Clone() *PricingModel {
	if m == nil {
		return nil
	}
	out := *m
	out.Parameters = m.Parameters.Clone()
	if m.Parameters == nil {
		out.Parameters = Parameters{}
	}
	if m.VolumeDiscounts != nil {
		out.VolumeDiscounts = make([]VolumeDiscount, len(m.VolumeDiscounts))
		copy(out.VolumeDiscounts, m.VolumeDiscounts)
	}
	return &out
}

// Param returns the value of kind in this model's parameters
func (m *PricingModel) Param(kind FeeKind) (decimal.Decimal, bool) {
	if m == nil {
		return decimal.Zero, false
	}
	return m.Parameters.Get(kind)
}
