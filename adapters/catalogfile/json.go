package catalogfile

import (
	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"

	"pricing-calculator/core/types"
	"pricing-calculator/internal/errors"
)

// jsonDocument is the on-disk JSON catalog. Parameter keys are fee kinds in
// snake_case or camelCase; amounts may be JSON numbers or strings.
type jsonDocument struct {
	Clients []jsonClient `json:"clients"`
}

type jsonClient struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	RiskLevel    string     `json:"risk_level"`
	PricingModel *jsonModel `json:"pricing_model"`
}

type jsonModel struct {
	ID              string                     `json:"id"`
	Name            string                     `json:"name"`
	TransactionType string                     `json:"transaction_type"`
	Description     string                     `json:"description"`
	BaseStructure   string                     `json:"base_structure"`
	Parameters      map[string]decimal.Decimal `json:"parameters"`
	VolumeDiscounts []types.VolumeDiscount     `json:"volume_discounts"`
	Notes           string                     `json:"notes"`
}

// JSONDecoder reads client catalogs written in JSON
type JSONDecoder struct{}

// NewJSONDecoder creates a new JSON decoder
func NewJSONDecoder() *JSONDecoder {
	return &JSONDecoder{}
}

// Decode parses src and returns the client types in file order
func (d *JSONDecoder) Decode(src []byte, filename string) ([]types.ClientType, error) {
	var doc jsonDocument
	if err := sonic.Unmarshal(src, &doc); err != nil {
		return nil, errors.Parsing(filename, err)
	}

	clients := make([]types.ClientType, 0, len(doc.Clients))
	for i, raw := range doc.Clients {
		client, err := raw.toClientType()
		if err != nil {
			return nil, errors.Wrapf(errors.TypeParsing, err, "%s: client %d", filename, i)
		}
		clients = append(clients, client)
	}
	return clients, nil
}

func (c jsonClient) toClientType() (types.ClientType, error) {
	client := types.ClientType{
		ID:        c.ID,
		Name:      c.Name,
		Category:  types.CategoryOther,
		RiskLevel: types.RiskMedium,
	}
	if c.ID == "" {
		return client, errors.Input("id is required")
	}
	if c.Category != "" {
		client.Category = types.Category(c.Category)
	}
	if c.RiskLevel != "" {
		client.RiskLevel = types.RiskLevel(c.RiskLevel)
	}
	if !client.Category.Valid() {
		return client, errors.Inputf("unknown category %q", c.Category)
	}
	if !client.RiskLevel.Valid() {
		return client, errors.Inputf("unknown risk level %q", c.RiskLevel)
	}
	if c.PricingModel == nil {
		return client, errors.Inputf("client %q has no pricing_model", c.ID)
	}

	model, err := c.PricingModel.toPricingModel()
	if err != nil {
		return client, err
	}
	client.PricingModel = model
	return client, nil
}

func (m jsonModel) toPricingModel() (*types.PricingModel, error) {
	structure, err := types.ParseBaseStructure(m.BaseStructure)
	if err != nil {
		return nil, err
	}

	params := make(types.Parameters, len(m.Parameters))
	for name, value := range m.Parameters {
		kind, err := types.ParseFeeKind(name)
		if err != nil {
			return nil, err
		}
		params.Set(kind, value)
	}

	return &types.PricingModel{
		ID:              m.ID,
		Name:            m.Name,
		TransactionType: m.TransactionType,
		Description:     m.Description,
		BaseStructure:   structure,
		Parameters:      params,
		VolumeDiscounts: m.VolumeDiscounts,
		Notes:           m.Notes,
	}, nil
}
