package config

import (
	"fmt"
	"os"

	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of rule, deal, and rooftop files. The
// engine itself never reads files; this package is the surrounding
// service layer feeding it. Validation here enforces the caller
// contracts the engine does not re-check, lease field consistency above
// all.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// DealDocument is the on-disk shape of a deal input file. A file may
// supply resolved rate components directly or a raw jurisdiction
// breakdown for the rate component builder.
type DealDocument struct {
	Deal         domain.TaxCalculationInput `yaml:"deal" json:"deal"`
	Jurisdiction *domain.JurisdictionRates  `yaml:"jurisdiction,omitempty" json:"jurisdiction,omitempty"`
}

// LoadRulesFromFile loads and validates a per-state rule configuration
// from a YAML file.
func (ip *InputParser) LoadRulesFromFile(filename string) (*domain.TaxRulesConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.TaxRulesConfig
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}

// LoadDealFromFile loads and validates a deal input from a YAML file.
func (ip *InputParser) LoadDealFromFile(filename string) (*DealDocument, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var doc DealDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateDeal(&doc.Deal); err != nil {
		return nil, fmt.Errorf("deal validation failed: %w", err)
	}
	return &doc, nil
}

// LoadRooftopFromFile loads and validates a rooftop configuration from a
// YAML file.
func (ip *InputParser) LoadRooftopFromFile(filename string) (*domain.RooftopConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rooftop domain.RooftopConfig
	if err := yaml.Unmarshal(data, &rooftop); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRooftop(&rooftop); err != nil {
		return nil, fmt.Errorf("rooftop validation failed: %w", err)
	}
	return &rooftop, nil
}

// ValidateRules validates a state rule configuration.
func (ip *InputParser) ValidateRules(rules *domain.TaxRulesConfig) error {
	if len(rules.StateCode) != 2 {
		return fmt.Errorf("state code must be a two-letter code, got %q", rules.StateCode)
	}
	if rules.Version < 1 {
		return fmt.Errorf("rules version must be at least 1, got %d", rules.Version)
	}
	if !rules.VehicleTaxScheme.IsValid() {
		return fmt.Errorf("unknown vehicle tax scheme %q", rules.VehicleTaxScheme)
	}
	if !rules.TradeInPolicy.Kind.IsValid() {
		return fmt.Errorf("unknown trade-in policy kind %q", rules.TradeInPolicy.Kind)
	}
	switch rules.TradeInPolicy.Kind {
	case domain.TradeInCapped:
		if rules.TradeInPolicy.Cap.LessThan(decimal.Zero) {
			return fmt.Errorf("trade-in cap cannot be negative")
		}
	case domain.TradeInPercent:
		if err := validateRate("trade-in percent", rules.TradeInPolicy.Percent); err != nil {
			return err
		}
	}
	if rules.LeaseRules.TimingMethod != "" && !rules.LeaseRules.TimingMethod.IsValid() {
		return fmt.Errorf("unknown lease timing method %q", rules.LeaseRules.TimingMethod)
	}

	switch rules.VehicleTaxScheme {
	case domain.SchemeTitleAdValorem:
		if rules.Extras.TAVT == nil {
			return fmt.Errorf("scheme %s requires extras.tavt", rules.VehicleTaxScheme)
		}
		if err := validateRate("tavt rate", rules.Extras.TAVT.Rate); err != nil {
			return err
		}
	case domain.SchemeHighwayUse:
		if rules.Extras.HUT == nil {
			return fmt.Errorf("scheme %s requires extras.hut", rules.VehicleTaxScheme)
		}
		if err := validateRate("hut rate", rules.Extras.HUT.Rate); err != nil {
			return err
		}
		if rules.Extras.HUT.MaxCreditAgeDays < 0 {
			return fmt.Errorf("hut max credit age days cannot be negative")
		}
	case domain.SchemePrivilege:
		if rules.Extras.Privilege == nil {
			return fmt.Errorf("scheme %s requires extras.privilege", rules.VehicleTaxScheme)
		}
		if err := validateRate("privilege base rate", rules.Extras.Privilege.BaseRate); err != nil {
			return err
		}
		for class, rate := range rules.Extras.Privilege.ClassRates {
			if err := validateRate(fmt.Sprintf("privilege rate for class %s", class), rate); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateDeal validates a deal input, enforcing the lease-field
// contract the engine relies on.
func (ip *InputParser) ValidateDeal(deal *domain.TaxCalculationInput) error {
	if len(deal.StateCode) != 2 {
		return fmt.Errorf("state code must be a two-letter code, got %q", deal.StateCode)
	}
	if !deal.DealType.IsValid() {
		return fmt.Errorf("unknown deal type %q", deal.DealType)
	}
	if deal.IsLease() && deal.Lease == nil {
		return fmt.Errorf("lease deals require lease terms")
	}
	if !deal.IsLease() && deal.Lease != nil {
		return fmt.Errorf("retail deals cannot carry lease terms")
	}
	if deal.Lease != nil {
		if deal.Lease.PaymentCount <= 0 {
			return fmt.Errorf("lease payment count must be positive, got %d", deal.Lease.PaymentCount)
		}
		if deal.Lease.GrossCapCost.LessThan(decimal.Zero) {
			return fmt.Errorf("gross cap cost cannot be negative")
		}
		if deal.Lease.BasePayment.LessThan(decimal.Zero) {
			return fmt.Errorf("base payment cannot be negative")
		}
	}

	amounts := map[string]decimal.Decimal{
		"vehicle price":       deal.VehiclePrice,
		"accessories":         deal.Accessories,
		"trade-in value":      deal.TradeInValue,
		"manufacturer rebate": deal.ManufacturerRebate,
		"dealer rebate":       deal.DealerRebate,
		"doc fee":             deal.DocFee,
		"service contracts":   deal.ServiceContracts,
		"gap":                 deal.GAP,
		"negative equity":     deal.NegativeEquity,
	}
	for name, amount := range amounts {
		if amount.LessThan(decimal.Zero) {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	for i, fee := range deal.OtherFees {
		if fee.Code == "" {
			return fmt.Errorf("fee %d is missing a code", i)
		}
		if fee.Amount.LessThan(decimal.Zero) {
			return fmt.Errorf("fee %s cannot be negative", fee.Code)
		}
	}
	for _, c := range deal.RateComponents {
		if err := validateRate(fmt.Sprintf("rate component %s", c.Label), c.Rate); err != nil {
			return err
		}
	}
	if deal.OriginTax != nil && deal.OriginTax.Amount.LessThan(decimal.Zero) {
		return fmt.Errorf("origin tax amount cannot be negative")
	}
	return nil
}

// ValidateRooftop validates a rooftop configuration.
func (ip *InputParser) ValidateRooftop(rooftop *domain.RooftopConfig) error {
	if len(rooftop.DealerState) != 2 {
		return fmt.Errorf("dealer state must be a two-letter code, got %q", rooftop.DealerState)
	}
	if rooftop.DefaultPerspective != "" && !rooftop.DefaultPerspective.IsValid() {
		return fmt.Errorf("unknown default perspective %q", rooftop.DefaultPerspective)
	}
	return nil
}

// validateRate checks a percentage sits in [0, 1].
func validateRate(name string, rate decimal.Decimal) error {
	if rate.LessThan(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", name, rate.String())
	}
	return nil
}
