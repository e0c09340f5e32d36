package calculation

import (
	"testing"

	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// genericStateOnlyRules is the baseline configuration used across the
// pipeline tests: a state-only 7% regime with full trade-in credit,
// non-taxable manufacturer rebates, and taxable dealer rebates.
func genericStateOnlyRules() *domain.TaxRulesConfig {
	return &domain.TaxRulesConfig{
		StateCode:        "PA",
		Version:          1,
		VehicleTaxScheme: domain.SchemeStateOnly,
		TradeInPolicy:    domain.TradeInPolicy{Kind: domain.TradeInFull},
		RebateRules: map[domain.RebateSource]bool{
			domain.RebateManufacturer: false,
			domain.RebateDealer:       true,
		},
		FeeTaxability:       map[string]bool{"DOC": true},
		TaxAccessories:      true,
		TaxServiceContracts: true,
		TaxGAP:              true,
	}
}

func statePct7() []domain.RateComponent {
	return []domain.RateComponent{
		{Label: domain.RateLabelState, Rate: decimal.NewFromFloat(0.07)},
	}
}

func TestCalculateTax_GenericRetailScenario(t *testing.T) {
	rules := genericStateOnlyRules()
	input := &domain.TaxCalculationInput{
		StateCode:          "PA",
		DealType:           domain.DealTypeRetail,
		VehiclePrice:       decimal.NewFromInt(35000),
		Accessories:        decimal.NewFromInt(2000),
		TradeInValue:       decimal.NewFromInt(10000),
		ManufacturerRebate: decimal.NewFromInt(2000),
		DealerRebate:       decimal.NewFromInt(500),
		DocFee:             decimal.NewFromInt(200),
		ServiceContracts:   decimal.NewFromInt(2500),
		GAP:                decimal.NewFromInt(800),
		OtherFees: []domain.Fee{
			{Code: "TITLE", Amount: decimal.NewFromInt(31)},
			{Code: "REG", Amount: decimal.NewFromInt(50)},
		},
		RateComponents: statePct7(),
	}

	result, err := CalculateTax(input, rules)
	require.NoError(t, err)

	assert.Equal(t, "25000.00", result.Bases.VehicleBase.StringFixed(2))
	assert.Equal(t, "200.00", result.Bases.FeesBase.StringFixed(2))
	assert.Equal(t, "3300.00", result.Bases.ProductsBase.StringFixed(2))
	assert.Equal(t, "28500.00", result.Bases.TotalTaxableBase.StringFixed(2))
	assert.Equal(t, "1995.00", result.Taxes.TotalTax.StringFixed(2))

	// Dealer rebate is taxable: tallied, never subtracted.
	assert.Equal(t, "500.00", result.Debug.RebatesTaxable.StringFixed(2))
	assert.Equal(t, "2000.00", result.Debug.RebatesNonTaxable.StringFixed(2))
	assert.Equal(t, "10000.00", result.Debug.TradeInCredit.StringFixed(2))
	assert.NotEmpty(t, result.Debug.Notes)
}

func TestCalculateTax_RetailBaseSumInvariant(t *testing.T) {
	rules := genericStateOnlyRules()
	input := &domain.TaxCalculationInput{
		StateCode:        "PA",
		DealType:         domain.DealTypeRetail,
		VehiclePrice:     decimal.NewFromInt(20000),
		DocFee:           decimal.NewFromInt(150),
		ServiceContracts: decimal.NewFromInt(1000),
		RateComponents:   statePct7(),
	}

	result, err := CalculateTax(input, rules)
	require.NoError(t, err)

	sum := result.Bases.VehicleBase.Add(result.Bases.FeesBase).Add(result.Bases.ProductsBase)
	assert.True(t, result.Bases.TotalTaxableBase.Equal(sum))
}

func TestCalculateTax_RetailComponentSumInvariant(t *testing.T) {
	rules := genericStateOnlyRules()
	rules.VehicleTaxScheme = domain.SchemeStatePlusLocal
	input := &domain.TaxCalculationInput{
		StateCode:    "PA",
		DealType:     domain.DealTypeRetail,
		VehiclePrice: decimal.NewFromInt(30000),
		RateComponents: []domain.RateComponent{
			{Label: domain.RateLabelState, Rate: decimal.NewFromFloat(0.06)},
			{Label: domain.RateLabelCounty, Rate: decimal.NewFromFloat(0.01)},
			{Label: domain.RateLabelCity, Rate: decimal.NewFromFloat(0.005)},
		},
	}

	result, err := CalculateTax(input, rules)
	require.NoError(t, err)

	componentSum := decimal.Zero
	for _, c := range result.Taxes.ComponentTaxes {
		componentSum = componentSum.Add(c.Amount)
	}
	assert.True(t, result.Taxes.TotalTax.Equal(componentSum))
	assert.Equal(t, "2250.00", result.Taxes.TotalTax.StringFixed(2), "30000 x 7.5%% stacked")
}

func TestCalculateTax_TradeInNeverDrivesBaseNegative(t *testing.T) {
	rules := genericStateOnlyRules()
	input := &domain.TaxCalculationInput{
		StateCode:      "PA",
		DealType:       domain.DealTypeRetail,
		VehiclePrice:   decimal.NewFromInt(8000),
		TradeInValue:   decimal.NewFromInt(15000),
		RateComponents: statePct7(),
	}

	result, err := CalculateTax(input, rules)
	require.NoError(t, err)

	assert.True(t, result.Bases.VehicleBase.Equal(decimal.Zero))
	assert.True(t, result.Taxes.TotalTax.Equal(decimal.Zero))
}

func TestCalculateTax_NonTaxableRebateFloorsAtZero(t *testing.T) {
	rules := genericStateOnlyRules()
	input := &domain.TaxCalculationInput{
		StateCode:          "PA",
		DealType:           domain.DealTypeRetail,
		VehiclePrice:       decimal.NewFromInt(3000),
		ManufacturerRebate: decimal.NewFromInt(5000),
		RateComponents:     statePct7(),
	}

	result, err := CalculateTax(input, rules)
	require.NoError(t, err)

	assert.True(t, result.Bases.VehicleBase.Equal(decimal.Zero))
}

func TestCalculateTax_RetailReciprocity(t *testing.T) {
	rules := genericStateOnlyRules()
	rules.Reciprocity = domain.ReciprocityPolicy{
		Enabled: true,
		Scope:   domain.ReciprocityScopeBoth,
		Mode:    domain.ReciprocityCreditUpToStateTax,
	}
	input := &domain.TaxCalculationInput{
		StateCode:      "PA",
		DealType:       domain.DealTypeRetail,
		VehiclePrice:   decimal.NewFromInt(30000),
		RateComponents: statePct7(),
		OriginTax: &domain.OriginTaxInfo{
			StateCode: "OH",
			Amount:    decimal.NewFromInt(600),
		},
	}

	result, err := CalculateTax(input, rules)
	require.NoError(t, err)

	// 30000 x 7% = 2100, minus 600 credit.
	assert.Equal(t, "1500.00", result.Taxes.TotalTax.StringFixed(2))
	assert.Equal(t, "600.00", result.Debug.ReciprocityCredit.StringFixed(2))

	componentSum := decimal.Zero
	for _, c := range result.Taxes.ComponentTaxes {
		componentSum = componentSum.Add(c.Amount)
	}
	assert.True(t, result.Taxes.TotalTax.Equal(componentSum), "components must be rescaled to the adjusted total")
}

func TestCalculateTax_ResultMetadata(t *testing.T) {
	rules := genericStateOnlyRules()
	rules.Version = 4
	input := &domain.TaxCalculationInput{
		StateCode:      "PA",
		DealType:       domain.DealTypeRetail,
		VehiclePrice:   decimal.NewFromInt(10000),
		RateComponents: statePct7(),
	}

	result, err := CalculateTax(input, rules)
	require.NoError(t, err)

	assert.Equal(t, "PA", result.StateCode)
	assert.Equal(t, domain.SchemeStateOnly, result.Scheme)
	assert.Equal(t, 4, result.RulesVersion)
}
