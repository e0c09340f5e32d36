package domain

import (
	"github.com/shopspring/decimal"
)

// VehicleTaxScheme identifies how a state taxes vehicle transactions.
// Most states are sales-tax-shaped (state-only or state-plus-local); the
// remaining three tags select a dedicated calculator.
type VehicleTaxScheme string

const (
	SchemeStateOnly      VehicleTaxScheme = "state-only"
	SchemeStatePlusLocal VehicleTaxScheme = "state-plus-local"
	SchemeTitleAdValorem VehicleTaxScheme = "title-ad-valorem"
	SchemeHighwayUse     VehicleTaxScheme = "highway-use"
	SchemePrivilege      VehicleTaxScheme = "privilege"
)

// IsValid checks if the scheme tag is a known value.
func (s VehicleTaxScheme) IsValid() bool {
	switch s {
	case SchemeStateOnly, SchemeStatePlusLocal, SchemeTitleAdValorem, SchemeHighwayUse, SchemePrivilege:
		return true
	}
	return false
}

// IsSpecial reports whether the scheme bypasses the generic pipeline.
func (s VehicleTaxScheme) IsSpecial() bool {
	switch s {
	case SchemeTitleAdValorem, SchemeHighwayUse, SchemePrivilege:
		return true
	}
	return false
}

// String returns the string representation of the scheme.
func (s VehicleTaxScheme) String() string {
	return string(s)
}

// TradeInPolicyKind enumerates how a state credits trade-in value against
// the taxable base.
type TradeInPolicyKind string

const (
	TradeInNone    TradeInPolicyKind = "none"
	TradeInFull    TradeInPolicyKind = "full"
	TradeInCapped  TradeInPolicyKind = "capped"
	TradeInPercent TradeInPolicyKind = "percent"
)

// IsValid checks if the trade-in policy kind is a known value.
func (k TradeInPolicyKind) IsValid() bool {
	switch k {
	case TradeInNone, TradeInFull, TradeInCapped, TradeInPercent:
		return true
	}
	return false
}

// TradeInPolicy is the declarative trade-in credit rule for a state.
// Cap is only meaningful for kind "capped", Percent only for "percent".
type TradeInPolicy struct {
	Kind    TradeInPolicyKind `yaml:"kind" json:"kind"`
	Cap     decimal.Decimal   `yaml:"cap,omitempty" json:"cap,omitempty"`
	Percent decimal.Decimal   `yaml:"percent,omitempty" json:"percent,omitempty"`
}

// RebateSource identifies who funds a rebate.
type RebateSource string

const (
	RebateManufacturer RebateSource = "manufacturer"
	RebateDealer       RebateSource = "dealer"
	RebateAny          RebateSource = "any"
)

// LeaseTimingMethod selects when lease tax is collected over the term.
type LeaseTimingMethod string

const (
	LeaseTimingMonthly     LeaseTimingMethod = "monthly"
	LeaseTimingFullUpfront LeaseTimingMethod = "full-upfront"
	LeaseTimingHybrid      LeaseTimingMethod = "hybrid"
)

// IsValid checks if the timing method is a known value.
func (m LeaseTimingMethod) IsValid() bool {
	switch m {
	case LeaseTimingMonthly, LeaseTimingFullUpfront, LeaseTimingHybrid:
		return true
	}
	return false
}

// LeaseTradeInCreditMode selects how trade-in credit behaves on a lease.
type LeaseTradeInCreditMode string

const (
	LeaseTradeInNone             LeaseTradeInCreditMode = "none"
	LeaseTradeInFull             LeaseTradeInCreditMode = "full"
	LeaseTradeInCapCostOnly      LeaseTradeInCreditMode = "cap-cost-only"
	LeaseTradeInAppliedToPayment LeaseTradeInCreditMode = "applied-to-payment"
	LeaseTradeInFollowRetail     LeaseTradeInCreditMode = "follow-retail"
)

// LeaseRebateBehavior selects how rebates are taxed on a lease.
type LeaseRebateBehavior string

const (
	LeaseRebateFollowRetail     LeaseRebateBehavior = "follow-retail"
	LeaseRebateAlwaysTaxable    LeaseRebateBehavior = "always-taxable"
	LeaseRebateAlwaysNonTaxable LeaseRebateBehavior = "always-non-taxable"
)

// LeaseSpecialScheme tags state-specific lease surcharges. Most tags only
// annotate the audit trail today; luxury-surcharge computes a named fee.
type LeaseSpecialScheme string

const (
	LeaseSpecialNone            LeaseSpecialScheme = "none"
	LeaseSpecialLuxurySurcharge LeaseSpecialScheme = "luxury-surcharge"
	LeaseSpecialNYSurcharge     LeaseSpecialScheme = "ny-surcharge"
	LeaseSpecialILLocalAddOn    LeaseSpecialScheme = "il-local-addon"
	LeaseSpecialCOHomeRule      LeaseSpecialScheme = "co-home-rule"
)

// LeaseRules is the lease-specific policy block nested in TaxRulesConfig.
type LeaseRules struct {
	TimingMethod      LeaseTimingMethod      `yaml:"timing_method" json:"timing_method"`
	RebateBehavior    LeaseRebateBehavior    `yaml:"rebate_behavior" json:"rebate_behavior"`
	DocFeeTaxable     bool                   `yaml:"doc_fee_taxable" json:"doc_fee_taxable"`
	TradeInCreditMode LeaseTradeInCreditMode `yaml:"trade_in_credit_mode" json:"trade_in_credit_mode"`
	TaxNegativeEquity bool                   `yaml:"tax_negative_equity" json:"tax_negative_equity"`

	// Lease-specific fee taxability. A code found here wins over the
	// retail fee table; a code in neither table is non-taxable.
	FeeTaxability      map[string]bool `yaml:"fee_taxability,omitempty" json:"fee_taxability,omitempty"`
	TitleFeeTaxability map[string]bool `yaml:"title_fee_taxability,omitempty" json:"title_fee_taxability,omitempty"`

	SpecialScheme   LeaseSpecialScheme `yaml:"special_scheme" json:"special_scheme"`
	LuxuryThreshold decimal.Decimal    `yaml:"luxury_threshold,omitempty" json:"luxury_threshold,omitempty"`
	LuxuryRate      decimal.Decimal    `yaml:"luxury_rate,omitempty" json:"luxury_rate,omitempty"`
}

// ReciprocityMode enumerates how credit for tax paid to another state is
// computed.
type ReciprocityMode string

const (
	ReciprocityNone               ReciprocityMode = "none"
	ReciprocityCreditUpToStateTax ReciprocityMode = "credit-up-to-state-tax"
	ReciprocityFullCredit         ReciprocityMode = "full-credit"
	ReciprocityHomeStateOnly      ReciprocityMode = "home-state-only"
)

// ReciprocityScope restricts which deal types a reciprocity policy covers.
type ReciprocityScope string

const (
	ReciprocityScopeRetailOnly ReciprocityScope = "retail-only"
	ReciprocityScopeLeaseOnly  ReciprocityScope = "lease-only"
	ReciprocityScopeBoth       ReciprocityScope = "both"
)

// ReciprocityPolicy is a state's cross-state credit policy.
type ReciprocityPolicy struct {
	Enabled       bool             `yaml:"enabled" json:"enabled"`
	Scope         ReciprocityScope `yaml:"scope" json:"scope"`
	Mode          ReciprocityMode  `yaml:"mode" json:"mode"`
	RequireProof  bool             `yaml:"require_proof" json:"require_proof"`
	CapAtLocalTax bool             `yaml:"cap_at_local_tax" json:"cap_at_local_tax"`
}

// TAVTLeaseBaseMode selects the lease base for a title ad-valorem state.
type TAVTLeaseBaseMode string

const (
	TAVTLeaseBaseCapCost     TAVTLeaseBaseMode = "cap-cost"
	TAVTLeaseBaseAgreedValue TAVTLeaseBaseMode = "agreed-value"
)

// TradeInScope selects what the trade-in credit offsets in an ad-valorem
// state.
type TradeInScope string

const (
	TradeInScopeVehicleOnly     TradeInScope = "vehicle-only"
	TradeInScopeFullTransaction TradeInScope = "full-transaction"
)

// AssessedValueMode selects how an assessed vehicle value participates in
// a privilege-tax base.
type AssessedValueMode string

const (
	AssessedValueNone     AssessedValueMode = "none"
	AssessedValueAssessed AssessedValueMode = "assessed"
	AssessedValueHigherOf AssessedValueMode = "higher-of-price-or-assessed"
)

// TAVTExtras holds title-ad-valorem parameters from the extras bag.
type TAVTExtras struct {
	Rate              decimal.Decimal   `yaml:"rate" json:"rate"`
	LeaseBaseMode     TAVTLeaseBaseMode `yaml:"lease_base_mode" json:"lease_base_mode"`
	TradeInScope      TradeInScope      `yaml:"trade_in_scope" json:"trade_in_scope"`
	TaxNegativeEquity bool              `yaml:"tax_negative_equity" json:"tax_negative_equity"`
}

// HUTExtras holds highway-use-tax parameters from the extras bag.
type HUTExtras struct {
	Rate decimal.Decimal `yaml:"rate" json:"rate"`

	// Maximum age in days of an origin-state tax payment for a
	// reciprocity credit. Zero means no age limit.
	MaxCreditAgeDays int `yaml:"max_credit_age_days" json:"max_credit_age_days"`
}

// PrivilegeExtras holds privilege/title-tax parameters from the extras bag.
type PrivilegeExtras struct {
	BaseRate          decimal.Decimal            `yaml:"base_rate" json:"base_rate"`
	ClassRates        map[string]decimal.Decimal `yaml:"class_rates,omitempty" json:"class_rates,omitempty"`
	AssessedValueMode AssessedValueMode          `yaml:"assessed_value_mode" json:"assessed_value_mode"`
}

// SchemeExtras is the open-ended parameter bag for special schemes. The
// block matching the configured scheme must be present; the dispatcher
// fails fast when it is missing.
type SchemeExtras struct {
	TAVT      *TAVTExtras      `yaml:"tavt,omitempty" json:"tavt,omitempty"`
	HUT       *HUTExtras       `yaml:"hut,omitempty" json:"hut,omitempty"`
	Privilege *PrivilegeExtras `yaml:"privilege,omitempty" json:"privilege,omitempty"`
}

// TaxRulesConfig is the declarative, versioned rule set for one state.
// It carries only enumerable choices and numbers, never logic; the
// interpreters in internal/calculation give the values meaning.
type TaxRulesConfig struct {
	StateCode string `yaml:"state_code" json:"state_code"`
	Version   int    `yaml:"version" json:"version"`

	TradeInPolicy TradeInPolicy `yaml:"trade_in_policy" json:"trade_in_policy"`

	// Rebate taxability keyed by source. A true value means the rebate
	// is taxable (kept in the base); false means it reduces the base.
	// RebateAny, when present, applies to sources without their own entry.
	RebateRules map[RebateSource]bool `yaml:"rebate_rules" json:"rebate_rules"`

	// Per-fee-code taxability. Codes absent from the table are
	// non-taxable.
	FeeTaxability map[string]bool `yaml:"fee_taxability,omitempty" json:"fee_taxability,omitempty"`

	TaxAccessories      bool `yaml:"tax_accessories" json:"tax_accessories"`
	TaxNegativeEquity   bool `yaml:"tax_negative_equity" json:"tax_negative_equity"`
	TaxServiceContracts bool `yaml:"tax_service_contracts" json:"tax_service_contracts"`
	TaxGAP              bool `yaml:"tax_gap" json:"tax_gap"`

	VehicleTaxScheme VehicleTaxScheme  `yaml:"vehicle_tax_scheme" json:"vehicle_tax_scheme"`
	LeaseRules       LeaseRules        `yaml:"lease_rules" json:"lease_rules"`
	Reciprocity      ReciprocityPolicy `yaml:"reciprocity" json:"reciprocity"`
	Extras           SchemeExtras      `yaml:"extras,omitempty" json:"extras,omitempty"`
}
