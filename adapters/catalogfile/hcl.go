package catalogfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"pricing-calculator/core/types"
	"pricing-calculator/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "client", LabelNames: []string{"id"}},
	},
}

var clientSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name", Required: true},
		{Name: "category"},
		{Name: "risk_level"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "pricing_model", LabelNames: []string{"id"}},
	},
}

var modelSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name", Required: true},
		{Name: "base_structure", Required: true},
		{Name: "transaction_type"},
		{Name: "description"},
		{Name: "notes"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "parameters"},
		{Type: "volume_discount"},
	},
}

var discountSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "threshold", Required: true},
		{Name: "discount_percentage", Required: true},
	},
}

// HCLDecoder reads client catalogs written in HCL
type HCLDecoder struct {
	parser *hclparse.Parser
}

// NewHCLDecoder creates a new HCL decoder
func NewHCLDecoder() *HCLDecoder {
	return &HCLDecoder{
		parser: hclparse.NewParser(),
	}
}

// Decode parses src and returns the client types in file order
func (d *HCLDecoder) Decode(src []byte, filename string) ([]types.ClientType, error) {
	file, diags := d.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing(filename, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing(filename, diags)
	}

	clients := make([]types.ClientType, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		client, err := decodeClient(block)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, nil
}

func decodeClient(block *hcl.Block) (types.ClientType, error) {
	client := types.ClientType{
		ID:        block.Labels[0],
		Category:  types.CategoryOther,
		RiskLevel: types.RiskMedium,
	}

	content, diags := block.Body.Content(clientSchema)
	if diags.HasErrors() {
		return client, errors.Parsing(block.DefRange.Filename, diags)
	}

	var err error
	if client.Name, err = stringAttr(content.Attributes, "name"); err != nil {
		return client, err
	}
	if attr, ok := content.Attributes["category"]; ok {
		s, err := stringValue(attr)
		if err != nil {
			return client, err
		}
		client.Category = types.Category(s)
		if !client.Category.Valid() {
			return client, rangeError(attr.Expr.Range(), "unknown category %q", s)
		}
	}
	if attr, ok := content.Attributes["risk_level"]; ok {
		s, err := stringValue(attr)
		if err != nil {
			return client, err
		}
		client.RiskLevel = types.RiskLevel(s)
		if !client.RiskLevel.Valid() {
			return client, rangeError(attr.Expr.Range(), "unknown risk level %q", s)
		}
	}

	models := content.Blocks.OfType("pricing_model")
	switch len(models) {
	case 0:
		return client, rangeError(block.DefRange, "client %q has no pricing_model block", client.ID)
	case 1:
	default:
		return client, rangeError(models[1].DefRange, "client %q has more than one pricing_model block", client.ID)
	}

	model, err := decodeModel(models[0])
	if err != nil {
		return client, err
	}
	client.PricingModel = model
	return client, nil
}

func decodeModel(block *hcl.Block) (*types.PricingModel, error) {
	model := &types.PricingModel{
		ID:         block.Labels[0],
		Parameters: types.Parameters{},
	}

	content, diags := block.Body.Content(modelSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing(block.DefRange.Filename, diags)
	}

	var err error
	if model.Name, err = stringAttr(content.Attributes, "name"); err != nil {
		return nil, err
	}
	for name, dst := range map[string]*string{
		"transaction_type": &model.TransactionType,
		"description":      &model.Description,
		"notes":            &model.Notes,
	} {
		if *dst, err = stringAttr(content.Attributes, name); err != nil {
			return nil, err
		}
	}

	structAttr := content.Attributes["base_structure"]
	raw, err := stringValue(structAttr)
	if err != nil {
		return nil, err
	}
	if model.BaseStructure, err = types.ParseBaseStructure(raw); err != nil {
		return nil, rangeError(structAttr.Expr.Range(), "unknown base structure %q", raw)
	}

	for _, params := range content.Blocks.OfType("parameters") {
		attrs, diags := params.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, errors.Parsing(params.DefRange.Filename, diags)
		}
		for name, attr := range attrs {
			kind, err := types.ParseFeeKind(name)
			if err != nil {
				return nil, rangeError(attr.NameRange, "unknown fee kind %q", name)
			}
			value, err := numberValue(attr)
			if err != nil {
				return nil, err
			}
			model.Parameters.Set(kind, value)
		}
	}

	for _, block := range content.Blocks.OfType("volume_discount") {
		discount, err := decodeDiscount(block)
		if err != nil {
			return nil, err
		}
		model.VolumeDiscounts = append(model.VolumeDiscounts, discount)
	}

	return model, nil
}

func decodeDiscount(block *hcl.Block) (types.VolumeDiscount, error) {
	var discount types.VolumeDiscount

	content, diags := block.Body.Content(discountSchema)
	if diags.HasErrors() {
		return discount, errors.Parsing(block.DefRange.Filename, diags)
	}

	thresholdAttr := content.Attributes["threshold"]
	threshold, err := numberValue(thresholdAttr)
	if err != nil {
		return discount, err
	}
	if !threshold.IsInteger() {
		return discount, rangeError(thresholdAttr.Expr.Range(), "threshold must be a whole number, got %s", threshold)
	}
	discount.Threshold = threshold.IntPart()

	if discount.DiscountPercentage, err = numberValue(content.Attributes["discount_percentage"]); err != nil {
		return discount, err
	}
	return discount, nil
}

// stringAttr returns the named string attribute, or "" when it is absent
func stringAttr(attrs hcl.Attributes, name string) (string, error) {
	attr, ok := attrs[name]
	if !ok {
		return "", nil
	}
	return stringValue(attr)
}

func stringValue(attr *hcl.Attribute) (string, error) {
	val, err := literalValue(attr)
	if err != nil {
		return "", err
	}
	if val.Type() != cty.String {
		return "", rangeError(attr.Expr.Range(), "%s must be a string, got %s", attr.Name, val.Type().FriendlyName())
	}
	return val.AsString(), nil
}

// numberValue converts a cty number to a decimal without a float64 round trip
func numberValue(attr *hcl.Attribute) (decimal.Decimal, error) {
	val, err := literalValue(attr)
	if err != nil {
		return decimal.Zero, err
	}
	if val.Type() != cty.Number {
		return decimal.Zero, rangeError(attr.Expr.Range(), "%s must be a number, got %s", attr.Name, val.Type().FriendlyName())
	}
	d, err := decimal.NewFromString(val.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, rangeError(attr.Expr.Range(), "%s: %v", attr.Name, err)
	}
	return d, nil
}

// literalValue evaluates attr without variables or functions. Unknown and
// null values are rejected.
func literalValue(attr *hcl.Attribute) (cty.Value, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, errors.Parsing(attr.Range.Filename, diags)
	}
	if !val.IsKnown() {
		return cty.NilVal, rangeError(attr.Expr.Range(), "%s has an unknown value", attr.Name)
	}
	if val.IsNull() {
		return cty.NilVal, rangeError(attr.Expr.Range(), "%s is null", attr.Name)
	}
	return val, nil
}

func rangeError(rng hcl.Range, format string, args ...interface{}) error {
	msg := fmt.Sprintf("%s:%d: %s", rng.Filename, rng.Start.Line, fmt.Sprintf(format, args...))
	return errors.New(errors.TypeParsing, msg).
		WithContext("file", rng.Filename).
		WithContext("line", rng.Start.Line)
}
