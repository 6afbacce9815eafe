// Package catalog - Catalog validation
// Flags pricing models that would produce nonsensical results. The engine
// never calls these rules; they guard catalog files and edited models.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pricing-calculator/core/types"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*types.ClientType) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateIdentity,
		validateModelPresent,
		func(c *types.ClientType) error { return ValidateModel(c.PricingModel) },
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errs []error

	for _, id := range c.order {
		entry := c.entries[id]
		for _, rule := range rules {
			if err := rule(entry); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", entry.ID, err))
			}
		}
	}

	return errs
}

// ValidateModel checks one pricing model: known structure and fee kinds,
// non-negative parameters, minimum not above maximum, discounts in range.
func ValidateModel(m *types.PricingModel) error {
	if m == nil {
		return nil
	}
	if !m.BaseStructure.Valid() {
		return fmt.Errorf("unknown base structure %q", m.BaseStructure)
	}
	for _, kind := range m.Parameters.Kinds() {
		if !kind.Valid() {
			return fmt.Errorf("unknown fee kind %q", kind)
		}
		if m.Parameters.Value(kind).IsNegative() {
			return fmt.Errorf("%s must not be negative", kind)
		}
	}

	minimum, hasMin := m.Parameters.Get(types.FeeMinimum)
	maximum, hasMax := m.Parameters.Get(types.FeeMaximum)
	if hasMin && hasMax && minimum.GreaterThan(maximum) {
		return fmt.Errorf("minimum_fee %s exceeds maximum_fee %s", minimum, maximum)
	}

	hundred := decimal.NewFromInt(100)
	for i, d := range m.VolumeDiscounts {
		if d.Threshold < 0 {
			return fmt.Errorf("volume discount %d: threshold must not be negative", i)
		}
		if d.DiscountPercentage.IsNegative() || d.DiscountPercentage.GreaterThan(hundred) {
			return fmt.Errorf("volume discount %d: percentage %s outside [0, 100]", i, d.DiscountPercentage)
		}
	}
	return nil
}

// validateIdentity ensures category and risk are known values
func validateIdentity(c *types.ClientType) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !c.Category.Valid() {
		return fmt.Errorf("unknown category %q", c.Category)
	}
	if !c.RiskLevel.Valid() {
		return fmt.Errorf("unknown risk level %q", c.RiskLevel)
	}
	return nil
}

// validateModelPresent ensures every client type carries a model
func validateModelPresent(c *types.ClientType) error {
	if c.PricingModel == nil {
		return fmt.Errorf("pricing model is required")
	}
	if c.PricingModel.ID == "" {
		return fmt.Errorf("pricing model id is required")
	}
	return nil
}

// MustValidate panics if validation fails
func (c *Catalog) MustValidate() {
	errs := c.Validate(DefaultValidationRules())
	if len(errs) > 0 {
		panic(fmt.Sprintf("catalog has %d validation errors, first: %v", len(errs), errs[0]))
	}
}
