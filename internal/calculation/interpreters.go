package calculation

import (
	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// The interpreters turn declarative policy values into numeric effects
// plus audit notes. State configuration only ever references these by
// tag; adding a state is a data change, not a code change.

// tradeInCredit interprets a trade-in policy against a trade-in value.
// The credit is never negative.
func tradeInCredit(policy domain.TradeInPolicy, value decimal.Decimal, log *AuditLog) decimal.Decimal {
	if value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	switch policy.Kind {
	case domain.TradeInFull:
		log.Notef("trade-in policy full: credit %s", value.StringFixed(2))
		return value
	case domain.TradeInCapped:
		credit := decimal.Min(value, policy.Cap)
		log.Notef("trade-in policy capped at %s: credit %s", policy.Cap.StringFixed(2), credit.StringFixed(2))
		return credit
	case domain.TradeInPercent:
		credit := value.Mul(policy.Percent)
		log.Notef("trade-in policy percent %s: credit %s", policy.Percent.String(), credit.StringFixed(2))
		return credit
	case domain.TradeInNone:
		log.Notef("trade-in policy none: no credit for trade-in value %s", value.StringFixed(2))
		return decimal.Zero
	default:
		log.Notef("unrecognized trade-in policy %q: no credit granted", policy.Kind)
		return decimal.Zero
	}
}

// effectiveRateComponents interprets the vehicle tax scheme against the
// caller-supplied component list. State-only keeps just the STATE
// component; state-plus-local passes everything through. The special
// schemes are annotated only; their numeric effect lives in the
// dedicated calculators.
func effectiveRateComponents(scheme domain.VehicleTaxScheme, components []domain.RateComponent, log *AuditLog) []domain.RateComponent {
	switch scheme {
	case domain.SchemeStateOnly:
		var filtered []domain.RateComponent
		for _, c := range components {
			if c.Label == domain.RateLabelState {
				filtered = append(filtered, c)
			}
		}
		log.Notef("scheme state-only: %d of %d rate components apply", len(filtered), len(components))
		return filtered
	case domain.SchemeStatePlusLocal:
		log.Notef("scheme state-plus-local: all %d rate components apply", len(components))
		return components
	default:
		log.Notef("scheme %s handled by dedicated calculator", scheme)
		return components
	}
}

// rebateTaxable interprets the rebate taxability table for a source.
// Source-specific entries win over the "any" entry. A source covered by
// neither is treated taxable so a configuration gap never reduces the
// base silently.
func rebateTaxable(rules *domain.TaxRulesConfig, source domain.RebateSource, log *AuditLog) bool {
	if taxable, ok := rules.RebateRules[source]; ok {
		return taxable
	}
	if taxable, ok := rules.RebateRules[domain.RebateAny]; ok {
		return taxable
	}
	log.Notef("no rebate rule for source %s: treated taxable", source)
	return true
}

// retailFeeTaxable looks up a fee code in the retail fee table. A missing
// code is non-taxable.
func retailFeeTaxable(rules *domain.TaxRulesConfig, code string, log *AuditLog) bool {
	taxable, ok := rules.FeeTaxability[code]
	if !ok {
		log.Notef("fee code %s not in fee table: treated non-taxable", code)
		return false
	}
	return taxable
}

// leaseFeeTaxable looks up a fee code for a lease deal: the lease fee
// table wins, then the lease title-fee table, then the retail table, then
// the non-taxable default.
func leaseFeeTaxable(rules *domain.TaxRulesConfig, code string, log *AuditLog) bool {
	if taxable, ok := rules.LeaseRules.FeeTaxability[code]; ok {
		return taxable
	}
	if taxable, ok := rules.LeaseRules.TitleFeeTaxability[code]; ok {
		return taxable
	}
	return retailFeeTaxable(rules, code, log)
}

// leaseSchemeAdjustment is the numeric effect of a lease special scheme:
// additive base deltas plus named special fees taxed upfront.
type leaseSchemeAdjustment struct {
	UpfrontBaseDelta decimal.Decimal
	MonthlyBaseDelta decimal.Decimal
	SpecialFees      []domain.Fee
}

// interpretLeaseSpecialScheme interprets the lease special-scheme tag.
// The luxury surcharge is the only scheme with a numeric effect today:
// a percentage of capitalized cost above the configured threshold,
// emitted as a named special fee. The NY/IL/CO tags are recognized but
// intentionally annotate only, pending exact business rules.
func interpretLeaseSpecialScheme(lr domain.LeaseRules, grossCapCost decimal.Decimal, log *AuditLog) leaseSchemeAdjustment {
	adj := leaseSchemeAdjustment{
		UpfrontBaseDelta: decimal.Zero,
		MonthlyBaseDelta: decimal.Zero,
	}
	switch lr.SpecialScheme {
	case domain.LeaseSpecialLuxurySurcharge:
		if grossCapCost.GreaterThan(lr.LuxuryThreshold) && lr.LuxuryRate.GreaterThan(decimal.Zero) {
			surcharge := grossCapCost.Sub(lr.LuxuryThreshold).Mul(lr.LuxuryRate)
			adj.SpecialFees = append(adj.SpecialFees, domain.Fee{Code: "LUXURY_SURCHARGE", Amount: surcharge})
			log.Notef("luxury surcharge: %s on cap cost above %s", surcharge.StringFixed(2), lr.LuxuryThreshold.StringFixed(2))
		} else {
			log.Notef("luxury surcharge configured but cap cost %s below threshold %s", grossCapCost.StringFixed(2), lr.LuxuryThreshold.StringFixed(2))
		}
	case domain.LeaseSpecialNYSurcharge:
		log.Notef("lease special scheme ny-surcharge recognized: no numeric effect modeled yet")
	case domain.LeaseSpecialILLocalAddOn:
		log.Notef("lease special scheme il-local-addon recognized: no numeric effect modeled yet")
	case domain.LeaseSpecialCOHomeRule:
		log.Notef("lease special scheme co-home-rule recognized: no numeric effect modeled yet")
	}
	return adj
}
