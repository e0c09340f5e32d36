package calculation

import (
	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// calculateGenericLease is the lease pipeline for sales-tax-shaped
// states. It shares the retail rebate/trade-in/fee vocabulary but
// re-interprets it through the state's lease rules, then shapes the
// result with the configured timing method. The top-level bases and
// taxes describe the amounts due at signing; the lease breakdown carries
// the payment stream and the total over the term.
func calculateGenericLease(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, log *AuditLog) *domain.TaxCalculationResult {
	result := &domain.TaxCalculationResult{}
	lease := input.Lease
	lr := rules.LeaseRules

	capCostBase := lease.GrossCapCost
	log.Notef("capitalized-cost base starts at gross cap cost %s", capCostBase.StringFixed(2))

	if input.NegativeEquity.GreaterThan(decimal.Zero) {
		if lr.TaxNegativeEquity {
			capCostBase = capCostBase.Add(input.NegativeEquity)
			log.Notef("negative equity %s taxable on lease: added to cap-cost base", input.NegativeEquity.StringFixed(2))
		} else {
			log.Notef("negative equity %s non-taxable on lease: excluded", input.NegativeEquity.StringFixed(2))
		}
	}

	capCredit, perPaymentCredit := leaseTradeInCreditAmounts(rules, input, log)
	if capCredit.GreaterThan(capCostBase) {
		log.Notef("lease trade-in credit %s exceeds cap-cost base %s: base floored at zero", capCredit.StringFixed(2), capCostBase.StringFixed(2))
	}
	capCostBase = floorZero(capCostBase.Sub(capCredit))
	result.Debug.TradeInCredit = capCredit.Add(perPaymentCredit.Mul(decimal.NewFromInt(int64(lease.PaymentCount))))

	capCostBase, rebatesTaxable := applyLeaseRebates(input, rules, capCostBase, &result.Debug, log)

	feesBase, taxableFees := leaseFeesBase(input, rules, log)
	result.Debug.TaxableFees = taxableFees
	products := productsBase(input, rules, log)

	adj := interpretLeaseSpecialScheme(lr, lease.GrossCapCost, log)
	result.Debug.SpecialFees = adj.SpecialFees
	specialTotal := sumFees(adj.SpecialFees)

	perPaymentBase := floorZero(lease.BasePayment.Sub(perPaymentCredit)).Add(adj.MonthlyBaseDelta)

	// Timing method shapes the result: what is taxed at signing versus
	// per payment.
	upfrontFees := feesBase.Add(specialTotal).Add(adj.UpfrontBaseDelta)
	var upfrontVehicle decimal.Decimal
	switch lr.TimingMethod {
	case domain.LeaseTimingFullUpfront:
		upfrontVehicle = capCostBase
		perPaymentBase = decimal.Zero
		log.Notef("lease timing full-upfront: entire base taxed at signing, no per-payment tax")
	case domain.LeaseTimingHybrid:
		// Hybrid additionally taxes taxable cap-cost reductions at
		// signing: cash down always, rebate reductions only when
		// rebates are taxable.
		upfrontVehicle = lease.CapReductionCash
		if rebatesTaxable && lease.CapReductionRebates.GreaterThan(decimal.Zero) {
			upfrontVehicle = upfrontVehicle.Add(lease.CapReductionRebates)
		}
		log.Notef("lease timing hybrid: cap-cost reductions of %s taxed at signing, base payment taxed monthly", upfrontVehicle.StringFixed(2))
	default:
		log.Notef("lease timing monthly: fees and products taxed at signing, each payment taxed separately")
	}

	result.Bases = domain.TaxableBases{
		VehicleBase:      upfrontVehicle,
		FeesBase:         upfrontFees,
		ProductsBase:     products,
		TotalTaxableBase: upfrontVehicle.Add(upfrontFees).Add(products),
	}

	components := effectiveRateComponents(rules.VehicleTaxScheme, input.RateComponents, log)
	upfrontTaxes := taxOnComponents(result.Bases.TotalTaxableBase, components)
	paymentTaxes := taxOnComponents(perPaymentBase, components)
	log.Notef("upfront tax %s on base %s, per-payment tax %s on base %s over %d payments",
		upfrontTaxes.TotalTax.StringFixed(2), result.Bases.TotalTaxableBase.StringFixed(2),
		paymentTaxes.TotalTax.StringFixed(2), perPaymentBase.StringFixed(2), lease.PaymentCount)

	// Reciprocity applies to the upfront component only; the total over
	// term is recomputed afterwards.
	recipCredit := reciprocityCredit(upfrontTaxes.TotalTax, input.DealType, input.OriginTax, rules.Reciprocity, log)
	result.Debug.ReciprocityCredit = recipCredit
	upfrontTaxes = applyCreditProportionally(upfrontTaxes, recipCredit, log)

	paymentCount := decimal.NewFromInt(int64(lease.PaymentCount))
	result.Taxes = upfrontTaxes
	result.Lease = &domain.LeaseTaxBreakdown{
		UpfrontBase:           result.Bases.TotalTaxableBase,
		UpfrontTaxes:          upfrontTaxes,
		PaymentBasePerPeriod:  perPaymentBase,
		PaymentTaxesPerPeriod: paymentTaxes,
		PaymentCount:          lease.PaymentCount,
		TotalTaxOverTerm:      upfrontTaxes.TotalTax.Add(paymentTaxes.TotalTax.Mul(paymentCount)),
	}
	return result
}

// leaseTradeInCreditAmounts interprets the lease trade-in credit mode,
// returning the cap-cost reduction and the per-payment reduction. At
// most one of the two is non-zero.
func leaseTradeInCreditAmounts(rules *domain.TaxRulesConfig, input *domain.TaxCalculationInput, log *AuditLog) (capCredit, perPaymentCredit decimal.Decimal) {
	capCredit = decimal.Zero
	perPaymentCredit = decimal.Zero
	lease := input.Lease
	if input.TradeInValue.LessThanOrEqual(decimal.Zero) {
		return capCredit, perPaymentCredit
	}
	switch rules.LeaseRules.TradeInCreditMode {
	case domain.LeaseTradeInNone:
		log.Notef("lease trade-in credit mode none: no credit for trade-in %s", input.TradeInValue.StringFixed(2))
	case domain.LeaseTradeInFull:
		capCredit = input.TradeInValue
		log.Notef("lease trade-in credit full: cap-cost base reduced by %s", capCredit.StringFixed(2))
	case domain.LeaseTradeInCapCostOnly:
		capCredit = lease.CapReductionTradeIn
		log.Notef("lease trade-in credit cap-cost-only: credit limited to cap reduction %s", capCredit.StringFixed(2))
	case domain.LeaseTradeInAppliedToPayment:
		if lease.PaymentCount > 0 {
			perPaymentCredit = input.TradeInValue.Div(decimal.NewFromInt(int64(lease.PaymentCount)))
		}
		log.Notef("lease trade-in credit applied-to-payment: %s per payment over %d payments", perPaymentCredit.StringFixed(2), lease.PaymentCount)
	case domain.LeaseTradeInFollowRetail:
		capCredit = tradeInCredit(rules.TradeInPolicy, input.TradeInValue, log)
	}
	return capCredit, perPaymentCredit
}

// applyLeaseRebates applies the lease rebate behavior to both rebates.
// It returns the adjusted cap-cost base and whether rebates were treated
// taxable (the hybrid timing method needs that to decide upfront taxation
// of rebate cap reductions).
func applyLeaseRebates(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, capCostBase decimal.Decimal, debug *domain.TaxDebug, log *AuditLog) (decimal.Decimal, bool) {
	anyTaxable := false
	rebates := []struct {
		source domain.RebateSource
		amount decimal.Decimal
	}{
		{domain.RebateManufacturer, input.ManufacturerRebate},
		{domain.RebateDealer, input.DealerRebate},
	}
	for _, r := range rebates {
		if r.amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		var taxable bool
		switch rules.LeaseRules.RebateBehavior {
		case domain.LeaseRebateAlwaysTaxable:
			taxable = true
		case domain.LeaseRebateAlwaysNonTaxable:
			taxable = false
		default:
			taxable = rebateTaxable(rules, r.source, log)
		}
		if taxable {
			anyTaxable = true
			debug.RebatesTaxable = debug.RebatesTaxable.Add(r.amount)
			log.Notef("lease %s rebate %s taxable: cap-cost base unchanged", r.source, r.amount.StringFixed(2))
		} else {
			capCostBase = floorZero(capCostBase.Sub(r.amount))
			debug.RebatesNonTaxable = debug.RebatesNonTaxable.Add(r.amount)
			log.Notef("lease %s rebate %s non-taxable: subtracted from cap-cost base", r.source, r.amount.StringFixed(2))
		}
	}
	return capCostBase, anyTaxable
}

// leaseFeesBase computes the taxable fee base for a lease: the doc fee
// per the lease doc-fee flag, other fees through the lease fee tables.
func leaseFeesBase(input *domain.TaxCalculationInput, rules *domain.TaxRulesConfig, log *AuditLog) (decimal.Decimal, []domain.Fee) {
	base := decimal.Zero
	var taxable []domain.Fee
	if input.DocFee.GreaterThan(decimal.Zero) {
		if rules.LeaseRules.DocFeeTaxable {
			base = base.Add(input.DocFee)
			taxable = append(taxable, domain.Fee{Code: domain.FeeCodeDoc, Amount: input.DocFee})
			log.Notef("lease doc fee %s taxable", input.DocFee.StringFixed(2))
		} else {
			log.Notef("lease doc fee %s non-taxable", input.DocFee.StringFixed(2))
		}
	}
	for _, fee := range input.OtherFees {
		if fee.Amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if leaseFeeTaxable(rules, fee.Code, log) {
			base = base.Add(fee.Amount)
			taxable = append(taxable, fee)
			log.Notef("lease fee %s %s taxable", fee.Code, fee.Amount.StringFixed(2))
		}
	}
	return base, taxable
}
