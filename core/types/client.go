package types

// ClientType is a catalog entry: a client category with its default pricing model
type ClientType struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     Category      `json:"category"`
	RiskLevel    RiskLevel     `json:"risk_level"`
	PricingModel *PricingModel `json:"pricing_model"`
}

// Clone returns a deep copy
func (c *ClientType) Clone() *ClientType {
	if c == nil {
		return nil
	}
	out := *c
	out.PricingModel = c.PricingModel.Clone()
	return &out
}
