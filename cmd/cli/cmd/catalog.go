package cmd

import (
	"go.uber.org/zap"

	"pricing-calculator/adapters/catalogfile"
	"pricing-calculator/core/catalog"
	"pricing-calculator/internal/config"
	"pricing-calculator/internal/logging"
)

// loadCatalog builds the catalog for a command: the built-in client types
// unless disabled, plus the --catalog flag or the configured catalog path.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	c := catalog.NewCatalog()
	if !cfg.Catalog.SkipBuiltin {
		c = catalog.Default()
	}

	path := catalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}
	if path == "" {
		return c, nil
	}

	if err := catalogfile.LoadInto(c, path); err != nil {
		return nil, err
	}
	logging.Info("catalog loaded", zap.String("path", path), zap.Int("clients", c.Len()))
	return c, nil
}
