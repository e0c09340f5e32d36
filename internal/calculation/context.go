package calculation

import (
	"github.com/dealerdesk/vehtax/internal/domain"
)

// ResolveTaxContext determines the single primary state whose rules
// govern a deal. Missing party states default upward (registration state
// to dealer state, buyer state to registration state), so the returned
// context always carries four concrete state codes.
//
// Selection order: a force-primary override on the registration state
// wins outright; next a force-primary override on an out-of-state buyer;
// otherwise the rooftop's default perspective applies with its documented
// fallbacks. The caller is responsible for supplying a dealer state.
func ResolveTaxContext(rooftop domain.RooftopConfig, parties domain.DealPartyInfo) domain.TaxContext {
	registrationState := parties.RegistrationState
	if registrationState == "" {
		registrationState = rooftop.DealerState
	}
	buyerState := parties.BuyerState
	if buyerState == "" {
		buyerState = registrationState
	}

	ctx := domain.TaxContext{
		DealerState:       rooftop.DealerState,
		BuyerState:        buyerState,
		RegistrationState: registrationState,
	}

	switch {
	case rooftop.Override(registrationState).ForcePrimary:
		ctx.PrimaryState = registrationState
	case rooftop.Override(buyerState).ForcePrimary && buyerState != rooftop.DealerState:
		ctx.PrimaryState = buyerState
	default:
		ctx.PrimaryState = resolveByPerspective(rooftop, buyerState, registrationState)
	}
	return ctx
}

func resolveByPerspective(rooftop domain.RooftopConfig, buyerState, registrationState string) string {
	switch rooftop.DefaultPerspective {
	case domain.PerspectiveBuyerState:
		if buyerState != rooftop.DealerState &&
			rooftop.AllowsRegistrationState(buyerState) &&
			!rooftop.Override(buyerState).DisallowPrimary {
			return buyerState
		}
		return registrationState
	case domain.PerspectiveRegistrationState:
		if rooftop.Override(registrationState).DisallowPrimary {
			return rooftop.DealerState
		}
		return registrationState
	default:
		// Dealer-state perspective is also the fallback for an
		// unconfigured perspective.
		if rooftop.Override(rooftop.DealerState).DisallowPrimary {
			return registrationState
		}
		return rooftop.DealerState
	}
}
