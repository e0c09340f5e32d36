package calculation

import (
	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// reciprocityCredit determines the credit for tax already paid to another
// state, per the governing state's reciprocity policy. Scope is honored
// before any credit math. The credit exceeds rawTax only in uncapped
// full-credit mode; callers floor the final tax at zero.
func reciprocityCredit(rawTax decimal.Decimal, dealType domain.DealType, origin *domain.OriginTaxInfo, policy domain.ReciprocityPolicy, log *AuditLog) decimal.Decimal {
	if origin == nil || origin.Amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if !policy.Enabled {
		log.Notef("reciprocity disabled: no credit for %s tax paid to %s", origin.Amount.StringFixed(2), origin.StateCode)
		return decimal.Zero
	}
	switch policy.Scope {
	case domain.ReciprocityScopeRetailOnly:
		if dealType != domain.DealTypeRetail {
			log.Notef("reciprocity scoped retail-only: no credit on %s deal", dealType)
			return decimal.Zero
		}
	case domain.ReciprocityScopeLeaseOnly:
		if dealType != domain.DealTypeLease {
			log.Notef("reciprocity scoped lease-only: no credit on %s deal", dealType)
			return decimal.Zero
		}
	}
	if policy.RequireProof {
		log.Notef("reciprocity requires proof of payment to %s: caller attests documentation on file", origin.StateCode)
	}

	switch policy.Mode {
	case domain.ReciprocityCreditUpToStateTax:
		credit := decimal.Min(origin.Amount, rawTax)
		if credit.LessThan(origin.Amount) {
			log.Notef("reciprocity credit for %s capped at computed tax %s", origin.StateCode, rawTax.StringFixed(2))
		} else {
			log.Notef("reciprocity credit %s for tax paid to %s", credit.StringFixed(2), origin.StateCode)
		}
		return credit
	case domain.ReciprocityFullCredit:
		if policy.CapAtLocalTax {
			credit := decimal.Min(origin.Amount, rawTax)
			log.Notef("full reciprocity credit %s for %s (capped at local tax)", credit.StringFixed(2), origin.StateCode)
			return credit
		}
		if origin.Amount.GreaterThan(rawTax) {
			log.Notef("full reciprocity credit %s for %s exceeds local tax %s: potential carryover", origin.Amount.StringFixed(2), origin.StateCode, rawTax.StringFixed(2))
		} else {
			log.Notef("full reciprocity credit %s for %s", origin.Amount.StringFixed(2), origin.StateCode)
		}
		return origin.Amount
	case domain.ReciprocityHomeStateOnly:
		// Behaves like the capped mode until home-state matching rules
		// are modeled.
		credit := decimal.Min(origin.Amount, rawTax)
		log.Notef("reciprocity mode home-state-only treated as credit-up-to-state-tax: credit %s", credit.StringFixed(2))
		return credit
	default:
		log.Notef("reciprocity mode %s grants no credit", policy.Mode)
		return decimal.Zero
	}
}
