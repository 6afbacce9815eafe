// Package catalog - Built-in client types
// The default client types offered when no catalog file is supplied.
package catalog

import (
	"github.com/shopspring/decimal"

	"pricing-calculator/core/types"
)

// Default returns a validated catalog holding the built-in client types
func Default() *Catalog {
	c := NewCatalog()
	RegisterBuiltin(c)
	c.MustValidate()
	return c
}

// RegisterBuiltin populates the catalog with the built-in client types
func RegisterBuiltin(c *Catalog) {
	// ============================================
	// FINANCIAL INSTITUTIONS
	// ============================================

	c.MustRegister(types.ClientType{
		ID:        "psp_merchants",
		Name:      "Financial Institution (PSP with Merchants)",
		Category:  types.CategoryFinancialInstitution,
		RiskLevel: types.RiskMedium,
		PricingModel: &types.PricingModel{
			ID:              "psp_per_tx",
			Name:            "Per Transaction Pricing",
			TransactionType: "C2B/B2C Pay-ins and Payouts",
			Description:     "High-frequency transactions with merchant settlement models",
			BaseStructure:   types.StructurePerTransaction,
			Parameters: params(map[types.FeeKind]string{
				types.FeePerTransaction: "0.25",
				types.FeeMinimum:        "0.20",
				types.FeeMaximum:        "0.30",
			}),
			VolumeDiscounts: []types.VolumeDiscount{
				discount(10000, "5"),
				discount(50000, "10"),
				discount(100000, "15"),
			},
			Notes: "High-frequency tx; supports merchant settlement models",
		},
	})

	c.MustRegister(types.ClientType{
		ID:        "b2b_no_minimum",
		Name:      "Financial Institution (B2B Only)",
		Category:  types.CategoryFinancialInstitution,
		RiskLevel: types.RiskLow,
		PricingModel: &types.PricingModel{
			ID:              "b2b_volume",
			Name:            "Volume-Based Fee",
			TransactionType: "B2B Payments (Pooled Accounts, Acquiring Settlements)",
			Description:     "Great for infrequent volume clients with scalable structure",
			BaseStructure:   types.StructurePercentage,
			Parameters: params(map[types.FeeKind]string{
				types.FeePercentage: "0.15",
				types.FeeMinimum:    "0",
			}),
			Notes: "Great for infrequent volume clients; scalable structure",
		},
	})

	// ============================================
	// B2B AND CORPORATE
	// ============================================

	c.MustRegister(types.ClientType{
		ID:        "b2b_low_mid_risk",
		Name:      "B2B Payments Client (Low-Mid Risk)",
		Category:  types.CategoryB2BPayments,
		RiskLevel: types.RiskLow,
		PricingModel: &types.PricingModel{
			ID:              "b2b_fixed",
			Name:            "Fixed Monthly Fee",
			TransactionType: "B2B Payments Only",
			Description:     "Predictable billing for stable volume companies",
			BaseStructure:   types.StructureFixedMonthly,
			Parameters: params(map[types.FeeKind]string{
				types.FeeMonthly: "3500",
				types.FeeMinimum: "2000",
				types.FeeMaximum: "5000",
			}),
			Notes: "Predictable billing; ideal for stable volume companies",
		},
	})

	// ============================================
	// HIGH RISK
	// ============================================

	c.MustRegister(types.ClientType{
		ID:        "crypto_platform",
		Name:      "Crypto Platform (CEX, OTC, Custody)",
		Category:  types.CategoryCrypto,
		RiskLevel: types.RiskHigh,
		PricingModel: &types.PricingModel{
			ID:              "crypto_risk_premium",
			Name:            "Base + Risk Premium",
			TransactionType: "High-Volume Crypto Transactions",
			Description:     "Volatile volume with high compliance costs",
			BaseStructure:   types.StructureHybrid,
			Parameters: params(map[types.FeeKind]string{
				types.FeePercentage: "0.25",
				types.FeeRetainer:   "3000",
				types.FeeMinimum:    "1000",
				types.FeeMaximum:    "5000",
			}),
			Notes: "Volatile volume; compliance costs high; use base + % fee",
		},
	})

	c.MustRegister(types.ClientType{
		ID:        "gambling_affiliate",
		Name:      "Affiliate/Gambling/Forex Network",
		Category:  types.CategoryOther,
		RiskLevel: types.RiskHigh,
		PricingModel: &types.PricingModel{
			ID:              "affiliate_payouts",
			Name:            "Per Payout + Minimum",
			TransactionType: "Small Payouts to Affiliates/Users",
			Description:     "AML/KYC overhead with higher per-transaction pricing",
			BaseStructure:   types.StructureHybrid,
			Parameters: params(map[types.FeeKind]string{
				types.FeePerTransaction: "0.425",
				types.FeeMinimum:        "0.35",
				types.FeeMaximum:        "0.50",
				types.FeeMonthly:        "1000",
			}),
			Notes: "AML/KYC overhead; price higher per tx, with base floor",
		},
	})

	// ============================================
	// PLATFORMS
	// ============================================

	c.MustRegister(types.ClientType{
		ID:        "payroll_provider",
		Name:      "Payroll Provider / Gig Economy Platform",
		Category:  types.CategoryPayroll,
		RiskLevel: types.RiskLow,
		PricingModel: &types.PricingModel{
			ID:              "payroll_bulk",
			Name:            "Base + Per Transaction",
			TransactionType: "High-Frequency Payroll Payouts",
			Description:     "End-of-cycle bulk transactions with optional SLA premiums",
			BaseStructure:   types.StructureHybrid,
			Parameters: params(map[types.FeeKind]string{
				types.FeeMonthly:        "500",
				types.FeePerTransaction: "0.25",
			}),
			Notes: "End-of-cycle bulk tx; SLA pricing for urgent disbursements",
		},
	})

	c.MustRegister(types.ClientType{
		ID:        "corporate_intl",
		Name:      "Corporate Client with Intl Supply Chain",
		Category:  types.CategoryCorporate,
		RiskLevel: types.RiskLow,
		PricingModel: &types.PricingModel{
			ID:              "corridor_volume",
			Name:            "Corridor + Volume Fee",
			TransactionType: "Large-Value Cross-Border B2B",
			Description:     "Multi-currency corridors with optional FX margin",
			BaseStructure:   types.StructureHybrid,
			Parameters: params(map[types.FeeKind]string{
				types.FeeCorridor:   "250",
				types.FeePercentage: "0.1",
			}),
			Notes: "Multi-currency corridors; optional FX margin play",
		},
	})

	c.MustRegister(types.ClientType{
		ID:        "saas_embedded",
		Name:      "SaaS Platform with Embedded Payments",
		Category:  types.CategorySaaS,
		RiskLevel: types.RiskLow,
		PricingModel: &types.PricingModel{
			ID:              "revenue_share",
			Name:            "Revenue Share + API Tier",
			TransactionType: "Embedded Payments (API-based)",
			Description:     "SaaS monetizing payments with revenue share model",
			BaseStructure:   types.StructureHybrid,
			Parameters: params(map[types.FeeKind]string{
				types.FeePercentage: "0.15",
				types.FeeMonthly:    "1250",
				types.FeeMinimum:    "500",
				types.FeeMaximum:    "2000",
			}),
			Notes: "SaaS monetizing payments; revenue share and user KYB fees",
		},
	})

	c.MustRegister(types.ClientType{
		ID:        "real_estate",
		Name:      "Real Estate or Investment Fund Manager",
		Category:  types.CategoryRealEstate,
		RiskLevel: types.RiskLow,
		PricingModel: &types.PricingModel{
			ID:              "large_transfer",
			Name:            "Per Transfer + Tiered Volume",
			TransactionType: "Infrequent Large B2B Transfers",
			Description:     "Suitable for capital calls and investor redemptions",
			BaseStructure:   types.StructureTiered,
			Parameters: params(map[types.FeeKind]string{
				types.FeePerTransaction: "30",
				types.FeeMinimum:        "10",
				types.FeeMaximum:        "50",
				types.FeePercentage:     "0.15",
			}),
			Notes: "Suitable for capital calls, investor redemptions",
		},
	})

	c.MustRegister(types.ClientType{
		ID:        "neobank_emi",
		Name:      "Neobank or E-money Licensee",
		Category:  types.CategoryNeobank,
		RiskLevel: types.RiskMedium,
		PricingModel: &types.PricingModel{
			ID:              "account_tx_model",
			Name:            "Per Account + Per Transaction",
			TransactionType: "Mixed B2B/B2C Transactions",
			Description:     "White-label setup with base fees plus per user/transaction",
			BaseStructure:   types.StructureHybrid,
			Parameters: params(map[types.FeeKind]string{
				types.FeeMonthly:        "5000",
				types.FeePerTransaction: "0.20",
			}),
			Notes: "White-label style setup; base fees + per user or tx",
		},
	})
}

// params builds Parameters from decimal literals
func params(values map[types.FeeKind]string) types.Parameters {
	p := make(types.Parameters, len(values))
	for kind, v := range values {
		p.Set(kind, decimal.RequireFromString(v))
	}
	return p
}

func discount(threshold int64, pct string) types.VolumeDiscount {
	return types.VolumeDiscount{Threshold: threshold, DiscountPercentage: decimal.RequireFromString(pct)}
}
