package calculation

import (
	"fmt"

	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateTax is the single entry point of the engine. It branches on
// the configured vehicle tax scheme: the generic retail/lease pipelines
// cover the sales-tax-shaped states, and the three special schemes
// dispatch to their dedicated calculators. The call is a pure function of
// its inputs; the only error is a special scheme selected without its
// required extras block, which fails fast rather than guessing a rate.
func CalculateTax(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig) (*domain.TaxCalculationResult, error) {
	log := NewAuditLog()
	log.Notef("calculating %s tax for %s under rules v%d scheme %s", input.DealType, rules.StateCode, rules.Version, rules.VehicleTaxScheme)

	var result *domain.TaxCalculationResult
	var err error
	switch rules.VehicleTaxScheme {
	case domain.SchemeTitleAdValorem:
		result, err = calculateTitleAdValorem(input, rules, log)
	case domain.SchemeHighwayUse:
		result, err = calculateHighwayUse(input, rules, log)
	case domain.SchemePrivilege:
		result, err = calculatePrivilege(input, rules, log)
	default:
		if input.IsLease() {
			result = calculateGenericLease(input, rules, log)
		} else {
			result = calculateGenericRetail(input, rules, log)
		}
	}
	if err != nil {
		return nil, err
	}

	if input.TaxCollected.GreaterThan(decimal.Zero) {
		log.Notef("caller reports %s tax already collected: informational only, liability unchanged", input.TaxCollected.StringFixed(2))
	}

	result.StateCode = rules.StateCode
	result.Scheme = rules.VehicleTaxScheme
	result.RulesVersion = rules.Version
	result.Debug.Notes = log.Notes()
	return result, nil
}

// missingExtrasError builds the fail-fast error for a special scheme
// whose parameter block is absent.
func missingExtrasError(rules *domain.TaxRulesConfig, block string) error {
	return fmt.Errorf("state %s rules v%d: scheme %s requires extras block %q", rules.StateCode, rules.Version, rules.VehicleTaxScheme, block)
}

// taxOnComponents applies each rate component to a base and returns the
// ordered component amounts with their total.
func taxOnComponents(base decimal.Decimal, components []domain.RateComponent) domain.TaxAmounts {
	amounts := domain.TaxAmounts{TotalTax: decimal.Zero}
	for _, c := range components {
		amount := base.Mul(c.Rate)
		amounts.ComponentTaxes = append(amounts.ComponentTaxes, domain.ComponentTax{Label: c.Label, Rate: c.Rate, Amount: amount})
		amounts.TotalTax = amounts.TotalTax.Add(amount)
	}
	return amounts
}

// applyCreditProportionally reduces a component tax breakdown to a final
// total, rescaling each component by finalTax/rawTax so the components
// still sum to the adjusted total. All components are assumed equally
// credit-eligible.
func applyCreditProportionally(taxes domain.TaxAmounts, credit decimal.Decimal, log *AuditLog) domain.TaxAmounts {
	if credit.LessThanOrEqual(decimal.Zero) || taxes.TotalTax.LessThanOrEqual(decimal.Zero) {
		return taxes
	}
	finalTax := taxes.TotalTax.Sub(credit)
	if finalTax.LessThan(decimal.Zero) {
		finalTax = decimal.Zero
	}
	scale := finalTax.Div(taxes.TotalTax)
	adjusted := domain.TaxAmounts{TotalTax: decimal.Zero}
	for _, c := range taxes.ComponentTaxes {
		scaled := c.Amount.Mul(scale)
		adjusted.ComponentTaxes = append(adjusted.ComponentTaxes, domain.ComponentTax{Label: c.Label, Rate: c.Rate, Amount: scaled})
		adjusted.TotalTax = adjusted.TotalTax.Add(scaled)
	}
	log.Notef("tax reduced from %s to %s after reciprocity credit, components rescaled proportionally", taxes.TotalTax.StringFixed(2), adjusted.TotalTax.StringFixed(2))
	return adjusted
}

// floorZero clamps a decimal at zero.
func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}

// sumFees totals a fee list.
func sumFees(fees []domain.Fee) decimal.Decimal {
	total := decimal.Zero
	for _, f := range fees {
		total = total.Add(f.Amount)
	}
	return total
}
