package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealType distinguishes retail purchases from leases. Lease-only fields
// live behind TaxCalculationInput.Lease so they cannot exist on a retail
// deal.
type DealType string

const (
	DealTypeRetail DealType = "retail"
	DealTypeLease  DealType = "lease"
)

// IsValid checks if the deal type is a known value.
func (d DealType) IsValid() bool {
	return d == DealTypeRetail || d == DealTypeLease
}

// FeeCodeDoc is the fee code under which the documentation fee is looked
// up in the per-fee-code taxability table on retail deals.
const FeeCodeDoc = "DOC"

// Fee is a single itemized fee on a deal.
type Fee struct {
	Code   string          `yaml:"code" json:"code"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// RateComponent is one named percentage contributing to the total rate,
// e.g. {STATE, 0.06} or {COUNTY, 0.01}. Components are ordered and the
// order is preserved through the calculation.
type RateComponent struct {
	Label string          `yaml:"label" json:"label"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// Standard rate component labels produced by the rate component builder.
const (
	RateLabelState    = "STATE"
	RateLabelCounty   = "COUNTY"
	RateLabelCity     = "CITY"
	RateLabelDistrict = "DISTRICT"
)

// JurisdictionRates is a raw rate breakdown for a taxing location, as
// returned by a local rate lookup service.
type JurisdictionRates struct {
	StateRate           decimal.Decimal `yaml:"state_rate" json:"state_rate"`
	CountyRate          decimal.Decimal `yaml:"county_rate" json:"county_rate"`
	CityRate            decimal.Decimal `yaml:"city_rate" json:"city_rate"`
	SpecialDistrictRate decimal.Decimal `yaml:"special_district_rate" json:"special_district_rate"`
}

// OriginTaxInfo describes tax already paid to another state on the same
// transaction, used for reciprocity credit.
type OriginTaxInfo struct {
	StateCode string          `yaml:"state_code" json:"state_code"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	PaidDate  time.Time       `yaml:"paid_date" json:"paid_date"`
}

// LeaseTerms carries the lease-only deal fields.
type LeaseTerms struct {
	GrossCapCost decimal.Decimal `yaml:"gross_cap_cost" json:"gross_cap_cost"`

	// Cap-cost reduction breakdown: upfront amounts that lower the
	// capitalized cost.
	CapReductionCash    decimal.Decimal `yaml:"cap_reduction_cash" json:"cap_reduction_cash"`
	CapReductionTradeIn decimal.Decimal `yaml:"cap_reduction_trade_in" json:"cap_reduction_trade_in"`
	CapReductionRebates decimal.Decimal `yaml:"cap_reduction_rebates" json:"cap_reduction_rebates"`

	BasePayment  decimal.Decimal `yaml:"base_payment" json:"base_payment"`
	PaymentCount int             `yaml:"payment_count" json:"payment_count"`
}

// TaxCalculationInput is the complete deal snapshot handed to the engine.
// Callers validate shape before invoking the engine: Lease must be set if
// and only if DealType is lease.
type TaxCalculationInput struct {
	StateCode string   `yaml:"state_code" json:"state_code"`
	DealType  DealType `yaml:"deal_type" json:"deal_type"`

	VehiclePrice       decimal.Decimal `yaml:"vehicle_price" json:"vehicle_price"`
	Accessories        decimal.Decimal `yaml:"accessories" json:"accessories"`
	TradeInValue       decimal.Decimal `yaml:"trade_in_value" json:"trade_in_value"`
	ManufacturerRebate decimal.Decimal `yaml:"manufacturer_rebate" json:"manufacturer_rebate"`
	DealerRebate       decimal.Decimal `yaml:"dealer_rebate" json:"dealer_rebate"`
	DocFee             decimal.Decimal `yaml:"doc_fee" json:"doc_fee"`
	OtherFees          []Fee           `yaml:"other_fees,omitempty" json:"other_fees,omitempty"`
	ServiceContracts   decimal.Decimal `yaml:"service_contracts" json:"service_contracts"`
	GAP                decimal.Decimal `yaml:"gap" json:"gap"`
	NegativeEquity     decimal.Decimal `yaml:"negative_equity" json:"negative_equity"`

	// Tax the dealer has already collected on this deal. Reported in the
	// audit trail only; the engine computes liability, not remittance.
	TaxCollected decimal.Decimal `yaml:"tax_collected" json:"tax_collected"`

	// VehicleClass keys the privilege-tax class rate table.
	VehicleClass string `yaml:"vehicle_class,omitempty" json:"vehicle_class,omitempty"`

	RateComponents []RateComponent `yaml:"rate_components" json:"rate_components"`
	OriginTax      *OriginTaxInfo  `yaml:"origin_tax,omitempty" json:"origin_tax,omitempty"`

	// AsOfDate anchors date-window rules (highway-use reciprocity age).
	AsOfDate time.Time `yaml:"as_of_date" json:"as_of_date"`

	Lease *LeaseTerms `yaml:"lease,omitempty" json:"lease,omitempty"`
}

// IsLease reports whether the deal is a lease.
func (in *TaxCalculationInput) IsLease() bool {
	return in.DealType == DealTypeLease
}
