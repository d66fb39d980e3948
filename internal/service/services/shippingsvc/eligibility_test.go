package shippingsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wareline/shipping-svc/internal/service/models/address"
	"github.com/wareline/shipping-svc/internal/service/models/enums"
)

func strPtr(s string) *string {
	return &s
}

func usPayload(express interface{}) *address.Payload {
	return &address.Payload{
		Name:      strPtr("John"),
		Surname:   strPtr("Doe"),
		Street:    strPtr("Palm street 25-7"),
		Country:   strPtr("US"),
		Phone:     strPtr("+1 123 123 123"),
		IsExpress: express,
	}
}

func TestIsDomestic(t *testing.T) {
	r := NewEligibilityResolver("US", address.NewValidator(nil))

	assert.Equal(t, enums.FlagYes, r.IsDomestic(usPayload(false)))

	p := usPayload(false)
	p.Country = strPtr("us")
	assert.Equal(t, enums.FlagYes, r.IsDomestic(p), "country comparison is case insensitive")

	p.Country = strPtr("DE")
	assert.Equal(t, enums.FlagNo, r.IsDomestic(p))

	p.Country = nil
	assert.Equal(t, enums.FlagNo, r.IsDomestic(p))
}

func TestIsExpressShippingAllowed(t *testing.T) {
	r := NewEligibilityResolver("US", address.NewValidator(nil))

	assert.True(t, r.IsExpressShippingAllowed(usPayload(true)))

	p := usPayload(true)
	p.Country = strPtr("DE")
	assert.False(t, r.IsExpressShippingAllowed(p))
}

func TestIsValid(t *testing.T) {
	r := NewEligibilityResolver("US", address.NewValidator(nil))

	assert.True(t, r.IsValid(usPayload(true)))
	assert.True(t, r.IsValid(usPayload("n")))

	p := usPayload(true)
	p.Country = strPtr("DE")
	assert.False(t, r.IsValid(p), "express is not available internationally")

	p = usPayload("maybe")
	assert.False(t, r.IsValid(p))

	p = usPayload(false)
	p.Country = strPtr("United States")
	assert.False(t, r.IsValid(p))
}
