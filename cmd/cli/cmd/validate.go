// Package cmd - validate command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pricing-calculator/adapters/catalogfile"
	"pricing-calculator/core/catalog"
	"pricing-calculator/core/ui"
	"pricing-calculator/internal/config"
)

// validateCmd checks a catalog file, or the active catalog
var validateCmd = &cobra.Command{
	Use:   "validate [catalog-file]",
	Short: "Check a catalog for invalid pricing models",
	Long: `Parse a catalog file and check every pricing model: known structure and
fee kinds, non-negative parameters, minimum not above maximum, and volume
discounts between 0 and 100 percent.

Without a file, the active catalog (built-in plus --catalog) is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	var (
		cat *catalog.Catalog
		err error
	)
	if len(args) > 0 {
		cat, err = catalogfile.Load(args[0])
	} else {
		cat, err = loadCatalog(config.Get())
	}
	if err != nil {
		return err
	}

	errs := cat.Validate(catalog.DefaultValidationRules())
	w := ui.NewWriter(cmd.OutOrStdout(), noColor)
	for _, e := range errs {
		w.Error("%v", e)
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog has %d validation errors", len(errs))
	}

	w.Success("%d client types valid", cat.Len())
	return nil
}
