// Package cmd - catalog browsing commands
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pricing-calculator/core/types"
	"pricing-calculator/core/ui"
	"pricing-calculator/internal/config"
	"pricing-calculator/internal/errors"
)

var clientsCategory string

// clientsCmd lists the catalog
var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List client types and their pricing structures",
	Args:  cobra.NoArgs,
	RunE:  runClients,
}

// showCmd prints one client type
var showCmd = &cobra.Command{
	Use:   "show <client-id>",
	Short: "Show a client type's pricing model",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	clientsCmd.Flags().StringVar(&clientsCategory, "category", "", "only list client types in this category")
}

func runClients(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(config.Get())
	if err != nil {
		return err
	}

	clients := cat.List()
	if clientsCategory != "" {
		category := types.Category(clientsCategory)
		if !category.Valid() {
			return errors.Inputf("unknown category %q", clientsCategory)
		}
		clients = cat.ListByCategory(category)
	}

	w := ui.NewWriter(cmd.OutOrStdout(), noColor)
	table := w.NewTable("ID", "NAME", "CATEGORY", "RISK", "STRUCTURE")
	for _, c := range clients {
		structure := "-"
		if c.PricingModel != nil {
			structure = string(c.PricingModel.BaseStructure)
		}
		table.AddRow(c.ID, c.Name, string(c.Category), string(c.RiskLevel), structure)
	}
	table.Render()

	w.Println("")
	w.Muted("%d client types", table.Len())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(config.Get())
	if err != nil {
		return err
	}
	client, err := cat.Lookup(args[0])
	if err != nil {
		return err
	}
	printClient(cmd.OutOrStdout(), client)
	return nil
}

func printClient(out io.Writer, c *types.ClientType) {
	fmt.Fprintf(out, "%s (%s)\n", c.Name, c.ID)
	fmt.Fprintf(out, "  Category:   %s\n", c.Category.Label())
	fmt.Fprintf(out, "  Risk level: %s\n", c.RiskLevel)

	m := c.PricingModel
	if m == nil {
		return
	}
	fmt.Fprintf(out, "\nPricing model: %s (%s)\n", m.Name, m.ID)
	fmt.Fprintf(out, "  Structure:  %s\n", m.BaseStructure)
	if m.TransactionType != "" {
		fmt.Fprintf(out, "  Covers:     %s\n", m.TransactionType)
	}
	if m.Description != "" {
		fmt.Fprintf(out, "  %s\n", m.Description)
	}

	if kinds := m.Parameters.Kinds(); len(kinds) > 0 {
		fmt.Fprintln(out, "\nParameters:")
		for _, kind := range kinds {
			suffix := ""
			if kind.IsPercentage() {
				suffix = "%"
			}
			fmt.Fprintf(out, "  %-22s %s%s\n", kind.Label(), m.Parameters.Value(kind), suffix)
		}
	}

	if len(m.VolumeDiscounts) > 0 {
		fmt.Fprintln(out, "\nVolume discounts:")
		for _, d := range m.VolumeDiscounts {
			fmt.Fprintf(out, "  from %d transactions: %s%% off\n", d.Threshold, d.DiscountPercentage)
		}
	}

	if m.Notes != "" {
		fmt.Fprintf(out, "\nNotes: %s\n", m.Notes)
	}
}
