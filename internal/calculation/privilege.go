package calculation

import (
	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// calculatePrivilege is the dedicated calculator for privilege/title-tax
// states (West-Virginia-style): a vehicle-class rate table with a
// base-rate fallback, full trade-in credit, and rebates that never
// reduce the base.
func calculatePrivilege(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, log *AuditLog) (*domain.TaxCalculationResult, error) {
	ex := rules.Extras.Privilege
	if ex == nil {
		return nil, missingExtrasError(rules, "privilege")
	}
	result := &domain.TaxCalculationResult{}

	rate := ex.BaseRate
	if classRate, ok := ex.ClassRates[input.VehicleClass]; ok {
		rate = classRate
		log.Notef("privilege tax rate %s for vehicle class %s", rate.String(), input.VehicleClass)
	} else if input.VehicleClass != "" {
		log.Notef("vehicle class %s not in rate table: base rate %s applies", input.VehicleClass, rate.String())
	}

	vehicleBase := input.VehiclePrice
	if input.IsLease() {
		vehicleBase = input.Lease.GrossCapCost
		log.Notef("privilege lease base starts at gross cap cost %s", vehicleBase.StringFixed(2))
	} else {
		log.Notef("privilege base starts at vehicle price %s", vehicleBase.StringFixed(2))
	}

	switch ex.AssessedValueMode {
	case domain.AssessedValueAssessed, domain.AssessedValueHigherOf:
		// No valuation source is wired yet; the configured mode is
		// surfaced rather than silently ignored.
		log.Notef("assessed-value mode %s configured but no valuation source integrated: purchase price used", ex.AssessedValueMode)
	}

	if input.TradeInValue.GreaterThan(decimal.Zero) {
		result.Debug.TradeInCredit = input.TradeInValue
		vehicleBase = floorZero(vehicleBase.Sub(input.TradeInValue))
		log.Notef("full trade-in credit %s", input.TradeInValue.StringFixed(2))
	}

	rebates := input.ManufacturerRebate.Add(input.DealerRebate)
	if rebates.GreaterThan(decimal.Zero) {
		result.Debug.RebatesTaxable = rebates
		log.Notef("manufacturer and dealer rebates of %s taxable: base unchanged", rebates.StringFixed(2))
	}
	if input.Accessories.GreaterThan(decimal.Zero) && rules.TaxAccessories {
		vehicleBase = vehicleBase.Add(input.Accessories)
		log.Notef("accessories %s added to privilege base", input.Accessories.StringFixed(2))
	}
	if input.NegativeEquity.GreaterThan(decimal.Zero) && rules.TaxNegativeEquity {
		vehicleBase = vehicleBase.Add(input.NegativeEquity)
		log.Notef("negative equity %s added to privilege base", input.NegativeEquity.StringFixed(2))
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

	tax := result.Bases.TotalTaxableBase.Mul(rate)
	taxes := domain.TaxAmounts{
		ComponentTaxes: []domain.ComponentTax{{Label: "PRIVILEGE", Rate: rate, Amount: tax}},
		TotalTax:       tax,
	}
	log.Notef("privilege tax %s at rate %s", tax.StringFixed(2), rate.String())

	credit := reciprocityCredit(tax, input.DealType, input.OriginTax, rules.Reciprocity, log)
	if credit.GreaterThan(tax) {
		log.Notef("reciprocity credit capped at computed privilege tax %s", tax.StringFixed(2))
		credit = tax
	}
	result.Debug.ReciprocityCredit = credit
	result.Taxes = applyCreditProportionally(taxes, credit, log)

	attachUpfrontOnlyLease(result, input, log)
	return result, nil
}
