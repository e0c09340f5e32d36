package domain

// TaxPerspective is a rooftop's default rule for choosing the primary
// state on a deal.
type TaxPerspective string

const (
	PerspectiveDealerState       TaxPerspective = "dealer-state"
	PerspectiveRegistrationState TaxPerspective = "registration-state"
	PerspectiveBuyerState        TaxPerspective = "buyer-state"
)

// IsValid checks if the perspective is a known value.
func (p TaxPerspective) IsValid() bool {
	switch p {
	case PerspectiveDealerState, PerspectiveRegistrationState, PerspectiveBuyerState:
		return true
	}
	return false
}

// StateOverride tweaks primary-state selection for one state regardless
// of the rooftop's default perspective.
type StateOverride struct {
	ForcePrimary    bool `yaml:"force_primary" json:"force_primary"`
	DisallowPrimary bool `yaml:"disallow_primary" json:"disallow_primary"`
}

// RooftopConfig is the dealer-side configuration that drives primary
// state resolution.
type RooftopConfig struct {
	DealerState               string                   `yaml:"dealer_state" json:"dealer_state"`
	DefaultPerspective        TaxPerspective           `yaml:"default_perspective" json:"default_perspective"`
	AllowedRegistrationStates []string                 `yaml:"allowed_registration_states,omitempty" json:"allowed_registration_states,omitempty"`
	StateOverrides            map[string]StateOverride `yaml:"state_overrides,omitempty" json:"state_overrides,omitempty"`
}

// AllowsRegistrationState reports whether the state code is in the
// rooftop's allowed registration set.
func (rc *RooftopConfig) AllowsRegistrationState(state string) bool {
	for _, s := range rc.AllowedRegistrationStates {
		if s == state {
			return true
		}
	}
	return false
}

// Override returns the override flags for a state, zero-valued when none
// is configured.
func (rc *RooftopConfig) Override(state string) StateOverride {
	return rc.StateOverrides[state]
}

// DealPartyInfo is the buyer-side state information on a deal. Missing
// fields default upward: registration state to the dealer state, buyer
// state to the registration state.
type DealPartyInfo struct {
	BuyerState        string `yaml:"buyer_state,omitempty" json:"buyer_state,omitempty"`
	RegistrationState string `yaml:"registration_state,omitempty" json:"registration_state,omitempty"`
	DeliveryState     string `yaml:"delivery_state,omitempty" json:"delivery_state,omitempty"`
}

// TaxContext names the state whose rules govern a deal along with the
// party states that drove the decision, for downstream audit.
type TaxContext struct {
	PrimaryState      string `yaml:"primary_state" json:"primary_state"`
	DealerState       string `yaml:"dealer_state" json:"dealer_state"`
	BuyerState        string `yaml:"buyer_state" json:"buyer_state"`
	RegistrationState string `yaml:"registration_state" json:"registration_state"`
}
