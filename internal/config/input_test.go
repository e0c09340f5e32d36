package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRulesFromFile_Valid(t *testing.T) {
	path := writeTempFile(t, "pa.yaml", `
state_code: PA
version: 3
vehicle_tax_scheme: state-only
trade_in_policy:
  kind: full
rebate_rules:
  manufacturer: false
  dealer: true
fee_taxability:
  DOC: true
tax_accessories: true
tax_service_contracts: true
tax_gap: true
lease_rules:
  timing_method: monthly
  rebate_behavior: follow-retail
  doc_fee_taxable: true
  trade_in_credit_mode: full
  special_scheme: none
reciprocity:
  enabled: true
  scope: both
  mode: credit-up-to-state-tax
`)

	rules, err := NewInputParser().LoadRulesFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "PA", rules.StateCode)
	assert.Equal(t, 3, rules.Version)
	assert.Equal(t, domain.SchemeStateOnly, rules.VehicleTaxScheme)
	assert.Equal(t, domain.TradeInFull, rules.TradeInPolicy.Kind)
	assert.False(t, rules.RebateRules[domain.RebateManufacturer])
	assert.True(t, rules.RebateRules[domain.RebateDealer])
	assert.Equal(t, domain.LeaseTimingMonthly, rules.LeaseRules.TimingMethod)
	assert.True(t, rules.Reciprocity.Enabled)
}

func TestLoadRulesFromFile_SpecialSchemeExtras(t *testing.T) {
	path := writeTempFile(t, "nc.yaml", `
state_code: NC
version: 1
vehicle_tax_scheme: highway-use
trade_in_policy:
  kind: full
extras:
  hut:
    rate: 0.03
    max_credit_age_days: 90
`)

	rules, err := NewInputParser().LoadRulesFromFile(path)
	require.NoError(t, err)

	require.NotNil(t, rules.Extras.HUT)
	assert.True(t, rules.Extras.HUT.Rate.Equal(decimal.NewFromFloat(0.03)))
	assert.Equal(t, 90, rules.Extras.HUT.MaxCreditAgeDays)
}

func TestLoadRulesFromFile_SpecialSchemeWithoutExtrasRejected(t *testing.T) {
	path := writeTempFile(t, "ga.yaml", `
state_code: GA
version: 1
vehicle_tax_scheme: title-ad-valorem
trade_in_policy:
  kind: full
`)

	_, err := NewInputParser().LoadRulesFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "extras.tavt")
}

func TestValidateRules_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.TaxRulesConfig)
		wantErr string
	}{
		{"bad state code", func(r *domain.TaxRulesConfig) { r.StateCode = "PENN" }, "two-letter"},
		{"bad version", func(r *domain.TaxRulesConfig) { r.Version = 0 }, "version"},
		{"bad scheme", func(r *domain.TaxRulesConfig) { r.VehicleTaxScheme = "flat" }, "scheme"},
		{"bad trade-in kind", func(r *domain.TaxRulesConfig) { r.TradeInPolicy.Kind = "half" }, "trade-in"},
		{"negative cap", func(r *domain.TaxRulesConfig) {
			r.TradeInPolicy = domain.TradeInPolicy{Kind: domain.TradeInCapped, Cap: decimal.NewFromInt(-5)}
		}, "cap"},
		{"percent out of range", func(r *domain.TaxRulesConfig) {
			r.TradeInPolicy = domain.TradeInPolicy{Kind: domain.TradeInPercent, Percent: decimal.NewFromInt(2)}
		}, "between 0 and 1"},
		{"bad timing method", func(r *domain.TaxRulesConfig) { r.LeaseRules.TimingMethod = "quarterly" }, "timing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := &domain.TaxRulesConfig{
				StateCode:        "PA",
				Version:          1,
				VehicleTaxScheme: domain.SchemeStateOnly,
				TradeInPolicy:    domain.TradeInPolicy{Kind: domain.TradeInFull},
			}
			tt.mutate(rules)

			err := NewInputParser().ValidateRules(rules)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDealFromFile_RetailWithJurisdiction(t *testing.T) {
	path := writeTempFile(t, "deal.yaml", `
deal:
  state_code: PA
  deal_type: retail
  vehicle_price: 35000
  trade_in_value: 10000
  doc_fee: 200
  other_fees:
    - code: TITLE
      amount: 31
jurisdiction:
  state_rate: 0.06
  county_rate: 0.01
`)

	doc, err := NewInputParser().LoadDealFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, domain.DealTypeRetail, doc.Deal.DealType)
	assert.True(t, doc.Deal.VehiclePrice.Equal(decimal.NewFromInt(35000)))
	require.NotNil(t, doc.Jurisdiction)
	assert.True(t, doc.Jurisdiction.CountyRate.Equal(decimal.NewFromFloat(0.01)))
}

func TestValidateDeal_LeaseFieldContract(t *testing.T) {
	parser := NewInputParser()

	lease := &domain.TaxCalculationInput{
		StateCode: "PA",
		DealType:  domain.DealTypeLease,
	}
	err := parser.ValidateDeal(lease)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lease terms")

	retail := &domain.TaxCalculationInput{
		StateCode: "PA",
		DealType:  domain.DealTypeRetail,
		Lease:     &domain.LeaseTerms{PaymentCount: 36},
	}
	err = parser.ValidateDeal(retail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot carry lease terms")

	valid := &domain.TaxCalculationInput{
		StateCode: "PA",
		DealType:  domain.DealTypeLease,
		Lease: &domain.LeaseTerms{
			GrossCapCost: decimal.NewFromInt(40000),
			BasePayment:  decimal.NewFromInt(400),
			PaymentCount: 36,
		},
	}
	assert.NoError(t, parser.ValidateDeal(valid))
}

func TestValidateDeal_NegativeAmountsRejected(t *testing.T) {
	deal := &domain.TaxCalculationInput{
		StateCode:    "PA",
		DealType:     domain.DealTypeRetail,
		VehiclePrice: decimal.NewFromInt(-100),
	}

	err := NewInputParser().ValidateDeal(deal)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestValidateDeal_ZeroPaymentCountRejected(t *testing.T) {
	deal := &domain.TaxCalculationInput{
		StateCode: "PA",
		DealType:  domain.DealTypeLease,
		Lease:     &domain.LeaseTerms{},
	}

	err := NewInputParser().ValidateDeal(deal)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment count")
}

func TestLoadRooftopFromFile(t *testing.T) {
	path := writeTempFile(t, "rooftop.yaml", `
dealer_state: PA
default_perspective: buyer-state
allowed_registration_states: [PA, NJ, NY]
state_overrides:
  NJ:
    force_primary: true
`)

	rooftop, err := NewInputParser().LoadRooftopFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "PA", rooftop.DealerState)
	assert.Equal(t, domain.PerspectiveBuyerState, rooftop.DefaultPerspective)
	assert.True(t, rooftop.Override("NJ").ForcePrimary)
	assert.True(t, rooftop.AllowsRegistrationState("NY"))
	assert.False(t, rooftop.AllowsRegistrationState("CA"))
}

func TestLoadRulesFromFile_MissingFile(t *testing.T) {
	_, err := NewInputParser().LoadRulesFromFile("does-not-exist.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
