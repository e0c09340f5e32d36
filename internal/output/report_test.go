package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *domain.TaxCalculationResult {
	return &domain.TaxCalculationResult{
		StateCode:    "PA",
		Scheme:       domain.SchemeStateOnly,
		RulesVersion: 2,
		Bases: domain.TaxableBases{
			VehicleBase:      decimal.NewFromInt(25000),
			FeesBase:         decimal.NewFromInt(200),
			TotalTaxableBase: decimal.NewFromInt(25200),
		},
		Taxes: domain.TaxAmounts{
			ComponentTaxes: []domain.ComponentTax{
				{Label: domain.RateLabelState, Rate: decimal.NewFromFloat(0.07), Amount: decimal.NewFromInt(1764)},
			},
			TotalTax: decimal.NewFromInt(1764),
		},
		Debug: domain.TaxDebug{
			Notes: []string{"state-only scheme: local components ignored"},
		},
	}
}

func TestGenerateReport_Console(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, GenerateReport(&buf, sampleResult(), "console"))

	out := buf.String()
	assert.Contains(t, out, "Taxable Bases")
	assert.Contains(t, out, "Audit Trail")
	assert.Contains(t, out, "1764.00")
	assert.Contains(t, out, "local components ignored")
}

func TestGenerateReport_ConsoleLeaseSection(t *testing.T) {
	result := sampleResult()
	result.Lease = &domain.LeaseTaxBreakdown{
		UpfrontBase:           decimal.NewFromInt(1200),
		UpfrontTaxes:          domain.TaxAmounts{TotalTax: decimal.NewFromInt(84)},
		PaymentBasePerPeriod:  decimal.NewFromInt(400),
		PaymentTaxesPerPeriod: domain.TaxAmounts{TotalTax: decimal.NewFromInt(28)},
		PaymentCount:          36,
		TotalTaxOverTerm:      decimal.NewFromInt(1092),
	}
	var buf bytes.Buffer

	require.NoError(t, GenerateReport(&buf, result, "console"))

	assert.Contains(t, buf.String(), "Lease Breakdown")
	assert.Contains(t, buf.String(), "1092.00")
}

func TestGenerateReport_JSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, GenerateReport(&buf, sampleResult(), "json"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "PA", decoded["state_code"])
}

func TestGenerateReport_YAML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, GenerateReport(&buf, sampleResult(), "yaml"))

	assert.Contains(t, buf.String(), "state_code: PA")
}

func TestGenerateReport_UnsupportedFormat(t *testing.T) {
	err := GenerateReport(&bytes.Buffer{}, sampleResult(), "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
