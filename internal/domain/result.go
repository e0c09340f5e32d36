package domain

import (
	"github.com/shopspring/decimal"
)

// TaxableBases is the taxable-base breakdown of a result. The invariant
// TotalTaxableBase == VehicleBase + FeesBase + ProductsBase holds for
// every calculator.
type TaxableBases struct {
	VehicleBase      decimal.Decimal `yaml:"vehicle_base" json:"vehicle_base"`
	FeesBase         decimal.Decimal `yaml:"fees_base" json:"fees_base"`
	ProductsBase     decimal.Decimal `yaml:"products_base" json:"products_base"`
	TotalTaxableBase decimal.Decimal `yaml:"total_taxable_base" json:"total_taxable_base"`
}

// ComponentTax is the tax contributed by one rate component.
type ComponentTax struct {
	Label  string          `yaml:"label" json:"label"`
	Rate   decimal.Decimal `yaml:"rate" json:"rate"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// TaxAmounts is an ordered component tax list plus its total. TotalTax
// equals the sum of component amounts, including after reciprocity
// rescaling.
type TaxAmounts struct {
	ComponentTaxes []ComponentTax  `yaml:"component_taxes" json:"component_taxes"`
	TotalTax       decimal.Decimal `yaml:"total_tax" json:"total_tax"`
}

// LeaseTaxBreakdown splits lease tax between signing and the payment
// stream. TotalTaxOverTerm == UpfrontTaxes.TotalTax +
// PaymentTaxesPerPeriod.TotalTax * PaymentCount.
type LeaseTaxBreakdown struct {
	UpfrontBase           decimal.Decimal `yaml:"upfront_base" json:"upfront_base"`
	UpfrontTaxes          TaxAmounts      `yaml:"upfront_taxes" json:"upfront_taxes"`
	PaymentBasePerPeriod  decimal.Decimal `yaml:"payment_base_per_period" json:"payment_base_per_period"`
	PaymentTaxesPerPeriod TaxAmounts      `yaml:"payment_taxes_per_period" json:"payment_taxes_per_period"`
	PaymentCount          int             `yaml:"payment_count" json:"payment_count"`
	TotalTaxOverTerm      decimal.Decimal `yaml:"total_tax_over_term" json:"total_tax_over_term"`
}

// TaxDebug carries the audit detail behind a result: every credit,
// itemized taxable fee, and decision note, in the order decisions were
// made. A result is auditable from this block alone.
type TaxDebug struct {
	TradeInCredit     decimal.Decimal `yaml:"trade_in_credit" json:"trade_in_credit"`
	RebatesNonTaxable decimal.Decimal `yaml:"rebates_non_taxable" json:"rebates_non_taxable"`
	RebatesTaxable    decimal.Decimal `yaml:"rebates_taxable" json:"rebates_taxable"`
	TaxableFees       []Fee           `yaml:"taxable_fees,omitempty" json:"taxable_fees,omitempty"`
	SpecialFees       []Fee           `yaml:"special_fees,omitempty" json:"special_fees,omitempty"`
	ReciprocityCredit decimal.Decimal `yaml:"reciprocity_credit" json:"reciprocity_credit"`
	Notes             []string        `yaml:"notes" json:"notes"`
}

// TaxCalculationResult is the structured output of one calculation.
type TaxCalculationResult struct {
	StateCode    string           `yaml:"state_code" json:"state_code"`
	Scheme       VehicleTaxScheme `yaml:"scheme" json:"scheme"`
	RulesVersion int              `yaml:"rules_version" json:"rules_version"`

	Bases TaxableBases       `yaml:"bases" json:"bases"`
	Taxes TaxAmounts         `yaml:"taxes" json:"taxes"`
	Lease *LeaseTaxBreakdown `yaml:"lease,omitempty" json:"lease,omitempty"`
	Debug TaxDebug           `yaml:"debug" json:"debug"`
}
