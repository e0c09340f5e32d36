package calculation

import (
	"testing"

	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRateComponents_FullStack(t *testing.T) {
	components := BuildRateComponents(domain.JurisdictionRates{
		StateRate:           decimal.NewFromFloat(0.06),
		CountyRate:          decimal.NewFromFloat(0.01),
		CityRate:            decimal.NewFromFloat(0.005),
		SpecialDistrictRate: decimal.NewFromFloat(0.0025),
	})

	require.Len(t, components, 4)
	assert.Equal(t, domain.RateLabelState, components[0].Label)
	assert.Equal(t, domain.RateLabelCounty, components[1].Label)
	assert.Equal(t, domain.RateLabelCity, components[2].Label)
	assert.Equal(t, domain.RateLabelDistrict, components[3].Label)
	assert.Equal(t, "0.0775", totalRate(components).String())
}

func TestBuildRateComponents_OmitsZeroLocals(t *testing.T) {
	components := BuildRateComponents(domain.JurisdictionRates{
		StateRate:  decimal.NewFromFloat(0.07),
		CountyRate: decimal.Zero,
	})

	require.Len(t, components, 1)
	assert.Equal(t, domain.RateLabelState, components[0].Label)
}

func TestBuildRateComponents_StateAlwaysPresent(t *testing.T) {
	components := BuildRateComponents(domain.JurisdictionRates{})

	require.Len(t, components, 1)
	assert.Equal(t, domain.RateLabelState, components[0].Label)
	assert.True(t, components[0].Rate.IsZero())
}
