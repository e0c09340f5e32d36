package calculation

import (
	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// calculateHighwayUse is the dedicated calculator for highway-use-tax
// states (North-Carolina-style HUT): a flat state rate with no local
// stacking, full trade-in credit, and manufacturer rebates reducing the
// base while dealer rebates do not. A reciprocity credit is honored only
// inside a configurable payment-age window.
func calculateHighwayUse(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, log *AuditLog) (*domain.TaxCalculationResult, error) {
	ex := rules.Extras.HUT
	if ex == nil {
		return nil, missingExtrasError(rules, "hut")
	}
	result := &domain.TaxCalculationResult{}

	vehicleBase := input.VehiclePrice
	if input.IsLease() {
		vehicleBase = input.Lease.GrossCapCost
		log.Notef("highway-use lease base starts at gross cap cost %s", vehicleBase.StringFixed(2))
	} else {
		log.Notef("highway-use base starts at vehicle price %s", vehicleBase.StringFixed(2))
	}

	if input.TradeInValue.GreaterThan(decimal.Zero) {
		result.Debug.TradeInCredit = input.TradeInValue
		vehicleBase = floorZero(vehicleBase.Sub(input.TradeInValue))
		log.Notef("full trade-in credit %s", input.TradeInValue.StringFixed(2))
	}
	if input.ManufacturerRebate.GreaterThan(decimal.Zero) {
		result.Debug.RebatesNonTaxable = input.ManufacturerRebate
		vehicleBase = floorZero(vehicleBase.Sub(input.ManufacturerRebate))
		log.Notef("manufacturer rebate %s non-taxable: subtracted from base", input.ManufacturerRebate.StringFixed(2))
	}
	if input.DealerRebate.GreaterThan(decimal.Zero) {
		result.Debug.RebatesTaxable = input.DealerRebate
		log.Notef("dealer rebate %s taxable: base unchanged", input.DealerRebate.StringFixed(2))
	}
	if input.Accessories.GreaterThan(decimal.Zero) && rules.TaxAccessories {
		vehicleBase = vehicleBase.Add(input.Accessories)
		log.Notef("accessories %s added to highway-use base", input.Accessories.StringFixed(2))
	}
	if input.NegativeEquity.GreaterThan(decimal.Zero) && rules.TaxNegativeEquity {
		vehicleBase = vehicleBase.Add(input.NegativeEquity)
		log.Notef("negative equity %s added to highway-use base", input.NegativeEquity.StringFixed(2))
	}

	feesBase, taxableFees := retailFeesBase(input, rules, log)
	result.Debug.TaxableFees = taxableFees
	products := productsBase(input, rules, log)

	result.Bases = domain.TaxableBases{
		VehicleBase:      vehicleBase,
		FeesBase:         feesBase,
		ProductsBase:     products,
		TotalTaxableBase: vehicleBase.Add(feesBase).Add(products),
	}

	tax := result.Bases.TotalTaxableBase.Mul(ex.Rate)
	taxes := domain.TaxAmounts{
		ComponentTaxes: []domain.ComponentTax{{Label: "HUT", Rate: ex.Rate, Amount: tax}},
		TotalTax:       tax,
	}
	log.Notef("highway-use tax %s at flat state rate %s, no local stacking", tax.StringFixed(2), ex.Rate.String())

	credit := highwayUseReciprocity(tax, input, rules, ex, log)
	result.Debug.ReciprocityCredit = credit
	result.Taxes = applyCreditProportionally(taxes, credit, log)

	attachUpfrontOnlyLease(result, input, log)
	return result, nil
}

// highwayUseReciprocity gates the shared reciprocity helper behind the
// configured maximum payment age. A stale origin payment gets no credit
// regardless of amount, and the refusal is always noted.
func highwayUseReciprocity(tax decimal.Decimal, input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, ex *domain.HUTExtras, log *AuditLog) decimal.Decimal {
	origin := input.OriginTax
	if origin == nil || origin.Amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if ex.MaxCreditAgeDays > 0 && !origin.PaidDate.IsZero() && !input.AsOfDate.IsZero() {
		ageDays := int(input.AsOfDate.Sub(origin.PaidDate).Hours() / 24)
		if ageDays > ex.MaxCreditAgeDays {
			log.Notef("origin tax paid to %s %d days ago exceeds %d-day reciprocity window: no credit", origin.StateCode, ageDays, ex.MaxCreditAgeDays)
			return decimal.Zero
		}
		log.Notef("origin tax paid to %s %d days ago within %d-day reciprocity window", origin.StateCode, ageDays, ex.MaxCreditAgeDays)
	}
	credit := reciprocityCredit(tax, input.DealType, origin, rules.Reciprocity, log)
	if credit.GreaterThan(tax) {
		log.Notef("reciprocity credit capped at computed highway-use tax %s", tax.StringFixed(2))
		credit = tax
	}
	return credit
}
