package calculation

import (
	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// calculateTitleAdValorem is the dedicated calculator for title
// ad-valorem states (Georgia-style TAVT). The tax is a one-time title
// event on the vehicle value only: fees and F&I products never enter the
// base, and a lease is taxed entirely at signing.
func calculateTitleAdValorem(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, log *AuditLog) (*domain.TaxCalculationResult, error) {
	ex := rules.Extras.TAVT
	if ex == nil {
		return nil, missingExtrasError(rules, "tavt")
	}
	result := &domain.TaxCalculationResult{}

	base := input.VehiclePrice
	if input.IsLease() {
		switch ex.LeaseBaseMode {
		case domain.TAVTLeaseBaseAgreedValue:
			base = input.VehiclePrice
			log.Notef("title ad-valorem lease base: agreed value %s", base.StringFixed(2))
		default:
			base = input.Lease.GrossCapCost
			log.Notef("title ad-valorem lease base: gross cap cost %s", base.StringFixed(2))
		}
	} else {
		log.Notef("title ad-valorem base starts at vehicle price %s", base.StringFixed(2))
	}

	if input.TradeInValue.GreaterThan(decimal.Zero) {
		// Vehicle-only and full-transaction scope have the same effect
		// while the base holds only vehicle value.
		log.Notef("trade-in credit %s applied with scope %s", input.TradeInValue.StringFixed(2), ex.TradeInScope)
		result.Debug.TradeInCredit = input.TradeInValue
		base = floorZero(base.Sub(input.TradeInValue))
	}
	if input.NegativeEquity.GreaterThan(decimal.Zero) {
		if ex.TaxNegativeEquity {
			base = base.Add(input.NegativeEquity)
			log.Notef("negative equity %s added to title ad-valorem base", input.NegativeEquity.StringFixed(2))
		} else {
			log.Notef("negative equity %s excluded from title ad-valorem base", input.NegativeEquity.StringFixed(2))
		}
	}

	rebates := input.ManufacturerRebate.Add(input.DealerRebate)
	if rebates.GreaterThan(decimal.Zero) {
		result.Debug.RebatesTaxable = rebates
		log.Notef("rebates of %s do not reduce the title ad-valorem base", rebates.StringFixed(2))
	}
	log.Notef("fees and F&I products excluded: title ad-valorem taxes the vehicle only")

	result.Bases = domain.TaxableBases{
		VehicleBase:      base,
		FeesBase:         decimal.Zero,
		ProductsBase:     decimal.Zero,
		TotalTaxableBase: base,
	}

	tax := base.Mul(ex.Rate)
	taxes := domain.TaxAmounts{
		ComponentTaxes: []domain.ComponentTax{{Label: "TAVT", Rate: ex.Rate, Amount: tax}},
		TotalTax:       tax,
	}
	log.Notef("title ad-valorem tax %s at rate %s", tax.StringFixed(2), ex.Rate.String())

	credit := reciprocityCredit(tax, input.DealType, input.OriginTax, rules.Reciprocity, log)
	if credit.GreaterThan(tax) {
		log.Notef("reciprocity credit capped at computed title ad-valorem tax %s", tax.StringFixed(2))
		credit = tax
	}
	result.Debug.ReciprocityCredit = credit
	result.Taxes = applyCreditProportionally(taxes, credit, log)

	attachUpfrontOnlyLease(result, input, log)
	return result, nil
}

// attachUpfrontOnlyLease shapes a special-scheme lease result: the whole
// tax is due at signing with no per-payment component.
func attachUpfrontOnlyLease(result *domain.TaxCalculationResult, input *domain.TaxCalculationInput, log *AuditLog) {
	if !input.IsLease() {
		return
	}
	log.Notef("lease taxed as one-time upfront event: no per-payment tax")
	result.Lease = &domain.LeaseTaxBreakdown{
		UpfrontBase:           result.Bases.TotalTaxableBase,
		UpfrontTaxes:          result.Taxes,
		PaymentBasePerPeriod:  decimal.Zero,
		PaymentTaxesPerPeriod: domain.TaxAmounts{TotalTax: decimal.Zero},
		PaymentCount:          input.Lease.PaymentCount,
		TotalTaxOverTerm:      result.Taxes.TotalTax,
	}
}
