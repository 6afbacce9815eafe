// Package session holds the calculator state a presentation layer edits:
// the selected client type, an editable copy of its pricing model and the
// current inputs. Every successful mutation recomputes the results through
// the pricing engine, so Results always reflects the latest state.
//
// A Session is not safe for concurrent use. The engine it calls is, so
// separate sessions may run in parallel.
package session

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pricing-calculator/core/catalog"
	"pricing-calculator/core/guards"
	"pricing-calculator/core/pricing"
	"pricing-calculator/core/types"
	"pricing-calculator/core/usage"
	"pricing-calculator/internal/errors"
	"pricing-calculator/internal/logging"
)

// Session is an interactive calculation in progress
type Session struct {
	catalog *catalog.Catalog
	logger  *zap.Logger

	client  *types.ClientType
	model   *types.PricingModel
	inputs  types.CalculationInputs
	results *types.CalculationResults

	recomputations int
}

// Option configures a Session
type Option func(*Session)

// WithLogger overrides the session logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithInputs sets the initial inputs
func WithInputs(in types.CalculationInputs) Option {
	return func(s *Session) {
		s.inputs = in
	}
}

// New creates a session over a catalog, starting from the default inputs
func New(c *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		catalog: c,
		inputs:  usage.Defaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Named("session")
	}
	return s
}

// Client returns the selected client type, or nil
func (s *Session) Client() *types.ClientType {
	return s.client.Clone()
}

// Model returns a copy of the model being edited, or nil
func (s *Session) Model() *types.PricingModel {
	return s.model.Clone()
}

// Inputs returns the current inputs
func (s *Session) Inputs() types.CalculationInputs {
	return s.inputs
}

// Results returns the latest results, or nil while no model is selected
func (s *Session) Results() *types.CalculationResults {
	return s.results
}

// Recomputations counts how many times the engine has run
func (s *Session) Recomputations() int {
	return s.recomputations
}

// SelectClient selects a client type and starts editing a copy of its model
func (s *Session) SelectClient(id string) error {
	client, err := s.catalog.Lookup(id)
	if err != nil {
		return err
	}
	s.client = client
	s.model = client.PricingModel.Clone()
	s.recompute("select_client")
	return nil
}

// UseModel replaces the edited model with a copy of m, keeping the selected client
func (s *Session) UseModel(m *types.PricingModel) {
	s.model = m.Clone()
	s.recompute("use_model")
}

// Reset restores the selected client's catalog model and the default inputs
func (s *Session) Reset() {
	s.inputs = usage.Defaults()
	if s.client != nil {
		s.model = s.client.PricingModel.Clone()
	}
	s.recompute("reset")
}

// SetInputs replaces all inputs
func (s *Session) SetInputs(in types.CalculationInputs) {
	s.inputs = in
	s.recompute("set_inputs")
}

// SetInput changes a single input field
func (s *Session) SetInput(field usage.Field, value decimal.Decimal) error {
	in, err := usage.Set(s.inputs, field, value)
	if err != nil {
		return err
	}
	s.inputs = in
	s.recompute("set_input", zap.String("field", string(field)), zap.Stringer("value", value))
	return nil
}

// SetStructure switches the edited model's base structure
func (s *Session) SetStructure(structure types.BaseStructure) error {
	if err := s.requireModel(); err != nil {
		return err
	}
	if !structure.Valid() {
		return errors.Inputf("unknown base structure %q", structure)
	}
	s.model.BaseStructure = structure
	s.recompute("set_structure", zap.String("structure", string(structure)))
	return nil
}

// SetParameter sets a fee kind. Zero is a valid, present value.
func (s *Session) SetParameter(kind types.FeeKind, value decimal.Decimal) error {
	if err := s.requireModel(); err != nil {
		return err
	}
	if !kind.Valid() {
		return errors.Inputf("unknown fee kind %q", kind)
	}
	if s.model.Parameters == nil {
		s.model.Parameters = types.Parameters{}
	}
	s.model.Parameters.Set(kind, value)
	s.recompute("set_parameter", zap.String("kind", string(kind)), zap.Stringer("value", value))
	return nil
}

// UnsetParameter removes a fee kind
func (s *Session) UnsetParameter(kind types.FeeKind) error {
	if err := s.requireModel(); err != nil {
		return err
	}
	s.model.Parameters.Unset(kind)
	s.recompute("unset_parameter", zap.String("kind", string(kind)))
	return nil
}

// ToggleParameter enables a fee kind at defaultValue or disables it.
// Enabling a kind that is already set keeps its value.
func (s *Session) ToggleParameter(kind types.FeeKind, enabled bool, defaultValue decimal.Decimal) error {
	if !enabled {
		return s.UnsetParameter(kind)
	}
	if err := s.requireModel(); err != nil {
		return err
	}
	if s.model.Parameters.Has(kind) {
		return nil
	}
	return s.SetParameter(kind, defaultValue)
}

// AddDiscount appends a volume discount; declaration order is kept
func (s *Session) AddDiscount(d types.VolumeDiscount) error {
	if err := s.requireModel(); err != nil {
		return err
	}
	s.model.VolumeDiscounts = append(s.model.VolumeDiscounts, d)
	s.recompute("add_discount", zap.Int64("threshold", d.Threshold))
	return nil
}

// RemoveDiscount removes the volume discount at index
func (s *Session) RemoveDiscount(index int) error {
	if err := s.requireModel(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.model.VolumeDiscounts) {
		return errors.Inputf("volume discount index %d out of range", index)
	}
	s.model.VolumeDiscounts = append(s.model.VolumeDiscounts[:index:index], s.model.VolumeDiscounts[index+1:]...)
	s.recompute("remove_discount", zap.Int("index", index))
	return nil
}

func (s *Session) requireModel() error {
	if s.model == nil {
		return errors.Input("no pricing model selected")
	}
	return nil
}

func (s *Session) recompute(trigger string, fields ...zap.Field) {
	if s.model == nil {
		s.results = nil
		return
	}
	s.results = pricing.Calculate(s.model, s.inputs)
	s.recomputations++

	s.logger.Debug("recomputed",
		append(fields,
			zap.String("trigger", trigger),
			zap.String("model", s.model.ID),
			zap.String("structure", string(s.model.BaseStructure)),
			zap.Stringer("monthly_revenue", s.results.MonthlyRevenue),
		)...)

	for _, v := range guards.CheckResults(s.model, s.inputs, s.results) {
		s.logger.Error("result invariant violated",
			zap.String("trigger", trigger),
			zap.String("invariant", v.Invariant),
			zap.String("detail", v.Detail))
	}
}
