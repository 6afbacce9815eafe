// Package catalog - Client catalog
// Maps client-category identifiers to fully populated pricing models.
// Entries seed calculations; the engine never reads the catalog itself.
package catalog

import (
	"pricing-calculator/core/determinism"
	"pricing-calculator/core/types"
	"pricing-calculator/internal/errors"
)

// Catalog is the client type registry
type Catalog struct {
	entries map[string]*types.ClientType
	order   []string
}

// NewCatalog creates a new, empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[string]*types.ClientType),
	}
}

// Register adds a client type. Ids must be unique.
func (c *Catalog) Register(client types.ClientType) error {
	if client.ID == "" {
		return errors.Catalog("client type id is required")
	}
	if _, exists := c.entries[client.ID]; exists {
		return errors.Catalog("duplicate client type id").WithContext("id", client.ID)
	}
	c.entries[client.ID] = client.Clone()
	c.order = append(c.order, client.ID)
	return nil
}

// Put adds or replaces a client type, keeping the original position on replace
func (c *Catalog) Put(client types.ClientType) error {
	if client.ID == "" {
		return errors.Catalog("client type id is required")
	}
	if _, exists := c.entries[client.ID]; !exists {
		c.order = append(c.order, client.ID)
	}
	c.entries[client.ID] = client.Clone()
	return nil
}

// MustRegister panics if registration fails
func (c *Catalog) MustRegister(client types.ClientType) {
	if err := c.Register(client); err != nil {
		panic(err)
	}
}

// Get returns a copy of a client type; edits never reach the catalog
func (c *Catalog) Get(id string) (*types.ClientType, bool) {
	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return entry.Clone(), true
}

// Lookup is Get with a NOT_FOUND error
func (c *Catalog) Lookup(id string) (*types.ClientType, error) {
	entry, ok := c.Get(id)
	if !ok {
		return nil, errors.NotFound("client type", id)
	}
	return entry, nil
}

// Len returns the number of client types
func (c *Catalog) Len() int {
	return len(c.order)
}

// IDs returns client type ids in registration order
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// List returns copies of all client types in registration order
func (c *Catalog) List() []*types.ClientType {
	result := make([]*types.ClientType, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.entries[id].Clone())
	}
	return result
}

// ListByCategory returns all client types in a category
func (c *Catalog) ListByCategory(category types.Category) []*types.ClientType {
	var result []*types.ClientType
	for _, id := range c.order {
		if entry := c.entries[id]; entry.Category == category {
			result = append(result, entry.Clone())
		}
	}
	return result
}

// Merge adds or replaces every entry of other, in other's order
func (c *Catalog) Merge(other *Catalog) {
	for _, id := range other.order {
		_ = c.Put(*other.entries[id])
	}
}

// Stats returns catalog statistics
func (c *Catalog) Stats() CatalogStats {
	stats := CatalogStats{
		ByStructure: make(map[types.BaseStructure]int),
		ByCategory:  make(map[types.Category]int),
		ByRisk:      make(map[types.RiskLevel]int),
	}

	for _, entry := range c.entries {
		stats.Total++
		stats.ByCategory[entry.Category]++
		stats.ByRisk[entry.RiskLevel]++
		if entry.PricingModel != nil {
			stats.ByStructure[entry.PricingModel.BaseStructure]++
			if len(entry.PricingModel.VolumeDiscounts) > 0 {
				stats.WithDiscounts++
			}
		}
	}

	return stats
}

// CatalogStats holds catalog statistics
type CatalogStats struct {
	Total         int
	WithDiscounts int
	ByStructure   map[types.BaseStructure]int
	ByCategory    map[types.Category]int
	ByRisk        map[types.RiskLevel]int
}

// Categories returns the categories present, sorted
func (s CatalogStats) Categories() []types.Category {
	return determinism.SortedKeys(s.ByCategory)
}
