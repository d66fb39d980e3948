package shippingsvc

import (
	"strings"

	"github.com/wareline/shipping-svc/internal/service/models/address"
	"github.com/wareline/shipping-svc/internal/service/models/enums"
)

// EligibilityResolver decides whether an address is domestic and whether
// express shipping is permitted for it. The home country is configuration,
// not business law, but the comparison itself is a single deterministic one.
type EligibilityResolver struct {
	homeCountry string
	validator   *address.Validator
}

// NewEligibilityResolver creates a resolver for the given home country code.
func NewEligibilityResolver(homeCountry string, validator *address.Validator) *EligibilityResolver {
	return &EligibilityResolver{
		homeCountry: homeCountry,
		validator:   validator,
	}
}

// IsDomestic reports whether the address's country matches the home country.
func (r *EligibilityResolver) IsDomestic(p *address.Payload) enums.Flag {
	if p.Country != nil && strings.EqualFold(*p.Country, r.homeCountry) {
		return enums.FlagYes
	}

	return enums.FlagNo
}

// IsExpressShippingAllowed reports whether express shipping may be requested
// for the address. Express is never allowed for international addresses.
func (r *EligibilityResolver) IsExpressShippingAllowed(p *address.Payload) bool {
	return r.IsDomestic(p) == enums.FlagYes
}

// IsValid reports whether the address passes format checks and its express
// request is consistent with the region.
func (r *EligibilityResolver) IsValid(p *address.Payload) bool {
	if !r.validator.IsAddressValid(p) {
		return false
	}

	requested, err := enums.ParseFlag(p.IsExpress)
	if err != nil {
		return false
	}
	if requested == enums.FlagYes && !r.IsExpressShippingAllowed(p) {
		return false
	}

	return true
}
