package calculation

import (
	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// BuildRateComponents flattens a jurisdiction rate breakdown into the
// ordered component list the engine consumes. The STATE component is
// always present, even at a zero rate, so scheme filtering has something
// to select; local components with no rate are omitted.
func BuildRateComponents(rates domain.JurisdictionRates) []domain.RateComponent {
	components := []domain.RateComponent{
		{Label: domain.RateLabelState, Rate: rates.StateRate},
	}
	if rates.CountyRate.GreaterThan(decimal.Zero) {
		components = append(components, domain.RateComponent{Label: domain.RateLabelCounty, Rate: rates.CountyRate})
	}
	if rates.CityRate.GreaterThan(decimal.Zero) {
		components = append(components, domain.RateComponent{Label: domain.RateLabelCity, Rate: rates.CityRate})
	}
	if rates.SpecialDistrictRate.GreaterThan(decimal.Zero) {
		components = append(components, domain.RateComponent{Label: domain.RateLabelDistrict, Rate: rates.SpecialDistrictRate})
	}
	return components
}

// totalRate sums the rates of a component list.
func totalRate(components []domain.RateComponent) decimal.Decimal {
	total := decimal.Zero
	for _, c := range components {
		total = total.Add(c.Rate)
	}
	return total
}
