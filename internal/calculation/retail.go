package calculation

import (
	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// calculateGenericRetail is the retail pipeline for sales-tax-shaped
// states. Base construction order matters and is fixed: vehicle price,
// accessories, negative equity, trade-in credit, rebates, then the fee
// and product bases. The vehicle base is floored at zero after every
// subtraction.
func calculateGenericRetail(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, log *AuditLog) *domain.TaxCalculationResult {
	result := &domain.TaxCalculationResult{}

	vehicleBase := input.VehiclePrice
	log.Notef("vehicle base starts at price %s", vehicleBase.StringFixed(2))

	if input.Accessories.GreaterThan(decimal.Zero) {
		if rules.TaxAccessories {
			vehicleBase = vehicleBase.Add(input.Accessories)
			log.Notef("accessories %s taxable: added to vehicle base", input.Accessories.StringFixed(2))
		} else {
			log.Notef("accessories %s non-taxable: excluded", input.Accessories.StringFixed(2))
		}
	}
	if input.NegativeEquity.GreaterThan(decimal.Zero) {
		if rules.TaxNegativeEquity {
			vehicleBase = vehicleBase.Add(input.NegativeEquity)
			log.Notef("negative equity %s taxable: added to vehicle base", input.NegativeEquity.StringFixed(2))
		} else {
			log.Notef("negative equity %s non-taxable: excluded", input.NegativeEquity.StringFixed(2))
		}
	}

	credit := tradeInCredit(rules.TradeInPolicy, input.TradeInValue, log)
	if credit.GreaterThan(vehicleBase) {
		log.Notef("trade-in credit %s exceeds vehicle base %s: base floored at zero", credit.StringFixed(2), vehicleBase.StringFixed(2))
	}
	vehicleBase = floorZero(vehicleBase.Sub(credit))
	result.Debug.TradeInCredit = credit

	vehicleBase = applyRetailRebates(input, rules, vehicleBase, &result.Debug, log)

	feesBase, taxableFees := retailFeesBase(input, rules, log)
	result.Debug.TaxableFees = taxableFees

	productsBase := productsBase(input, rules, log)

	result.Bases = domain.TaxableBases{
		VehicleBase:      vehicleBase,
		FeesBase:         feesBase,
		ProductsBase:     productsBase,
		TotalTaxableBase: vehicleBase.Add(feesBase).Add(productsBase),
	}

	components := effectiveRateComponents(rules.VehicleTaxScheme, input.RateComponents, log)
	rawTaxes := taxOnComponents(result.Bases.TotalTaxableBase, components)
	log.Notef("raw tax %s on total base %s", rawTaxes.TotalTax.StringFixed(2), result.Bases.TotalTaxableBase.StringFixed(2))

	recipCredit := reciprocityCredit(rawTaxes.TotalTax, input.DealType, input.OriginTax, rules.Reciprocity, log)
	result.Debug.ReciprocityCredit = recipCredit
	result.Taxes = applyCreditProportionally(rawTaxes, recipCredit, log)
	return result
}

// applyRetailRebates walks the manufacturer and dealer rebates: taxable
// rebates accumulate in a debug tally without touching the base,
// non-taxable rebates reduce the vehicle base (floored at zero).
func applyRetailRebates(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, vehicleBase decimal.Decimal, debug *domain.TaxDebug, log *AuditLog) decimal.Decimal {
	rebates := []struct {
		source domain.RebateSource
		amount decimal.Decimal
	}{
		{domain.RebateManufacturer, input.ManufacturerRebate},
		{domain.RebateDealer, input.DealerRebate},
	}
	for _, r := range rebates {
		if r.amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if rebateTaxable(rules, r.source, log) {
			debug.RebatesTaxable = debug.RebatesTaxable.Add(r.amount)
			log.Notef("%s rebate %s taxable: base unchanged", r.source, r.amount.StringFixed(2))
		} else {
			vehicleBase = floorZero(vehicleBase.Sub(r.amount))
			debug.RebatesNonTaxable = debug.RebatesNonTaxable.Add(r.amount)
			log.Notef("%s rebate %s non-taxable: subtracted from vehicle base", r.source, r.amount.StringFixed(2))
		}
	}
	return vehicleBase
}

// retailFeesBase computes the taxable fee base: the doc fee via its fee
// code, then each itemized fee whose code the fee table marks taxable.
func retailFeesBase(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, log *AuditLog) (decimal.Decimal, []domain.Fee) {
	base := decimal.Zero
	var taxable []domain.Fee
	if input.DocFee.GreaterThan(decimal.Zero) {
		if retailFeeTaxable(rules, domain.FeeCodeDoc, log) {
			base = base.Add(input.DocFee)
			taxable = append(taxable, domain.Fee{Code: domain.FeeCodeDoc, Amount: input.DocFee})
			log.Notef("doc fee %s taxable", input.DocFee.StringFixed(2))
		} else {
			log.Notef("doc fee %s non-taxable", input.DocFee.StringFixed(2))
		}
	}
	for _, fee := range input.OtherFees {
		if fee.Amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if retailFeeTaxable(rules, fee.Code, log) {
			base = base.Add(fee.Amount)
			taxable = append(taxable, fee)
			log.Notef("fee %s %s taxable", fee.Code, fee.Amount.StringFixed(2))
		}
	}
	return base, taxable
}

// productsBase computes the taxable F&I product base: service contracts
// and GAP, each gated by a state flag.
func productsBase(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, log *AuditLog) decimal.Decimal {
	base := decimal.Zero
	if input.ServiceContracts.GreaterThan(decimal.Zero) {
		if rules.TaxServiceContracts {
			base = base.Add(input.ServiceContracts)
			log.Notef("service contracts %s taxable", input.ServiceContracts.StringFixed(2))
		} else {
			log.Notef("service contracts %s non-taxable", input.ServiceContracts.StringFixed(2))
		}
	}
	if input.GAP.GreaterThan(decimal.Zero) {
		if rules.TaxGAP {
			base = base.Add(input.GAP)
			log.Notef("GAP %s taxable", input.GAP.StringFixed(2))
		} else {
			log.Notef("GAP %s non-taxable", input.GAP.StringFixed(2))
		}
	}
	return base
}
